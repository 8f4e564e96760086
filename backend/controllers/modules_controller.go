package controllers

import (
	"sort"
	"strings"

	"formadapt/backend/config"
	"formadapt/backend/middleware"
	"formadapt/backend/models"
	"formadapt/backend/store"
	"formadapt/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ModulesController serves the read-only module catalogue. Authoring lives
// on a separate surface and never goes through here.
type ModulesController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Ledger *store.ProgressLedger
}

func NewModulesController(db *gorm.DB, cfg *config.Config) *ModulesController {
	return &ModulesController{DB: db, Cfg: cfg, Ledger: store.NewProgressLedger(db)}
}

// ListModules godoc
// @Summary List modules
// @Description Returns the catalogue, optionally filtered by name and sorted
// by name or by the caller's progress
// @Tags modules
// @Produce json
// @Param search query string false "Name filter"
// @Param sort query string false "Sort key (name|progress)"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /modules [get]
func (mc *ModulesController) ListModules(c *fiber.Ctx) error {
	query := mc.DB.Model(&models.Module{})
	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var modules []models.Module
	if err := query.Order("id").Find(&modules).Error; err != nil {
		return utils.InternalServerError(c, "Could not query modules")
	}

	// The catalogue carries each caller's own progress so the list view can
	// render completion bars without a second round trip.
	type moduleListing struct {
		models.Module
		Progress  int  `json:"progress"`
		Completed bool `json:"completed"`
	}

	userID := middleware.UserID(c)
	listings := make([]moduleListing, 0, len(modules))
	for _, module := range modules {
		record, err := mc.Ledger.Get(userID, module.ID)
		if err != nil {
			return utils.InternalServerError(c, "Could not query progress")
		}
		listings = append(listings, moduleListing{
			Module:    module,
			Progress:  record.Progress,
			Completed: record.Completed,
		})
	}

	switch c.Query("sort") {
	case "name":
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].Name < listings[j].Name
		})
	case "progress":
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].Progress > listings[j].Progress
		})
	}

	return utils.Success(c, fiber.StatusOK, listings)
}

// GetModule godoc
// @Summary Get module details
// @Tags modules
// @Produce json
// @Param moduleId path int true "Module ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /modules/{moduleId} [get]
func (mc *ModulesController) GetModule(c *fiber.Ctx) error {
	moduleID, err := moduleIDParam(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid module id")
	}

	var module models.Module
	if err := mc.DB.First(&module, moduleID).Error; err != nil {
		return utils.NotFound(c, "Module not found")
	}

	return utils.Success(c, fiber.StatusOK, module)
}

// GetModuleQuiz godoc
// @Summary Get a module's quiz questions
// @Tags modules
// @Produce json
// @Param moduleId path int true "Module ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /modules/{moduleId}/quiz [get]
func (mc *ModulesController) GetModuleQuiz(c *fiber.Ctx) error {
	moduleID, err := moduleIDParam(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid module id")
	}

	var module models.Module
	if err := mc.DB.First(&module, moduleID).Error; err != nil {
		return utils.NotFound(c, "Module not found")
	}

	var questions []models.QuizQuestion
	if err := mc.DB.Where("module_id = ?", moduleID).Order("sequence_order").Find(&questions).Error; err != nil {
		return utils.InternalServerError(c, "Could not query quiz")
	}
	if len(questions) == 0 {
		return utils.NotFound(c, "Quiz not found")
	}

	return utils.Success(c, fiber.StatusOK, questions)
}
