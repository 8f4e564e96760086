package controllers

import (
	"errors"
	"strconv"

	"formadapt/backend/config"
	"formadapt/backend/middleware"
	"formadapt/backend/store"
	"formadapt/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProgressController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Ledger *store.ProgressLedger
}

func NewProgressController(db *gorm.DB, cfg *config.Config) *ProgressController {
	return &ProgressController{DB: db, Cfg: cfg, Ledger: store.NewProgressLedger(db)}
}

func moduleIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("moduleId"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid module id")
	}
	return uint(id), nil
}

// GetModuleProgress godoc
// @Summary Get progress for a module
// @Description Returns the caller's progress record. A module never visited
// yields a zero record rather than 404.
// @Tags progress
// @Produce json
// @Param moduleId path int true "Module ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /modules/{moduleId}/progress [get]
func (pc *ProgressController) GetModuleProgress(c *fiber.Ctx) error {
	moduleID, err := moduleIDParam(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid module id")
	}

	record, err := pc.Ledger.Get(middleware.UserID(c), moduleID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query progress")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"progress":         record.Progress,
		"score":            record.Score,
		"completed":        record.Completed,
		"last_accessed_at": record.LastAccessedAt,
	})
}

// UpdateModuleProgress godoc
// @Summary Upsert progress for a module
// @Description Creates or merges the caller's progress record
// @Tags progress
// @Accept json
// @Produce json
// @Param moduleId path int true "Module ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /modules/{moduleId}/progress [put]
func (pc *ProgressController) UpdateModuleProgress(c *fiber.Ctx) error {
	moduleID, err := moduleIDParam(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid module id")
	}

	var input struct {
		Progress  *int  `json:"progress"`
		Score     *int  `json:"score"`
		Completed *bool `json:"completed"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Progress == nil {
		return utils.BadRequest(c, "Missing required fields", fiber.Map{"missing": []string{"progress"}})
	}

	record, err := pc.Ledger.Upsert(middleware.UserID(c), moduleID, store.ProgressUpdate{
		Progress:  *input.Progress,
		Score:     input.Score,
		Completed: input.Completed,
	})
	if err != nil {
		if errors.Is(err, store.ErrInvalidInput) {
			return utils.BadRequest(c, "Progress must be an integer between 0 and 100")
		}
		return utils.InternalServerError(c, "Could not update progress")
	}

	return utils.Success(c, fiber.StatusOK, record)
}

// GetAccountProgress godoc
// @Summary List the caller's progress records
// @Description Returns every progress record of the account, enriched with
// the module name
// @Tags progress
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /account/progress [get]
func (pc *ProgressController) GetAccountProgress(c *fiber.Ctx) error {
	records, err := pc.Ledger.ListForUser(middleware.UserID(c))
	if err != nil {
		return utils.InternalServerError(c, "Could not query progress")
	}

	return utils.Success(c, fiber.StatusOK, records)
}
