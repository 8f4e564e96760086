package controllers

import (
	"errors"
	"strconv"

	"formadapt/backend/config"
	"formadapt/backend/models"
	"formadapt/backend/store"
	"formadapt/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AccountsController is the admin-only account surface. Every route behind
// it sits behind both the auth guard and the admin role gate.
type AccountsController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Creds  *store.CredentialStore
	Ledger *store.ProgressLedger
}

func NewAccountsController(db *gorm.DB, cfg *config.Config) *AccountsController {
	return &AccountsController{
		DB:     db,
		Cfg:    cfg,
		Creds:  store.NewCredentialStore(db),
		Ledger: store.NewProgressLedger(db),
	}
}

func accountIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid account id")
	}
	return uint(id), nil
}

// ListAccounts godoc
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /accounts [get]
func (ac *AccountsController) ListAccounts(c *fiber.Ctx) error {
	users, err := ac.Creds.List()
	if err != nil {
		return utils.InternalServerError(c, "Could not query accounts")
	}
	return utils.Success(c, fiber.StatusOK, users)
}

// CreateAccount godoc
// @Summary Create an account
// @Description Admin-create with an explicit role
// @Tags accounts
// @Accept json
// @Produce json
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /accounts [post]
func (ac *AccountsController) CreateAccount(c *fiber.Ctx) error {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var missing []string
	if input.Name == "" {
		missing = append(missing, "name")
	}
	if input.Email == "" {
		missing = append(missing, "email")
	}
	if input.Password == "" {
		missing = append(missing, "password")
	}
	if input.Role == "" {
		missing = append(missing, "role")
	}
	if len(missing) > 0 {
		return utils.BadRequest(c, "Missing required fields", fiber.Map{"missing": missing})
	}
	if input.Role != "user" && input.Role != "admin" {
		return utils.BadRequest(c, "Role must be user or admin")
	}

	user, err := ac.Creds.Create(input.Name, input.Email, input.Password, input.Role)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return utils.Conflict(c, "Email already in use")
		}
		return utils.InternalServerError(c, "Could not create account")
	}

	return utils.Created(c, user)
}

// UpdateAccount godoc
// @Summary Update an account's profile
// @Description Changes name, email and/or role. Passwords go through the
// reset flow, never through here.
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /accounts/{id} [put]
func (ac *AccountsController) UpdateAccount(c *fiber.Ctx) error {
	id, err := accountIDParam(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid account id")
	}

	var input struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
		Role  *string `json:"role"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Role != nil && *input.Role != "user" && *input.Role != "admin" {
		return utils.BadRequest(c, "Role must be user or admin")
	}

	user, err := ac.Creds.UpdateProfile(id, input.Name, input.Email, input.Role)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return utils.NotFound(c, "Account not found")
		case errors.Is(err, store.ErrDuplicateEmail):
			return utils.Conflict(c, "Email already in use")
		default:
			return utils.InternalServerError(c, "Could not update account")
		}
	}

	return utils.Success(c, fiber.StatusOK, user)
}

// DeleteAccount godoc
// @Summary Delete an account
// @Description Removes the account and cascades deletion of its progress
// records. Deleting an absent id is a no-op success.
// @Tags accounts
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /accounts/{id} [delete]
func (ac *AccountsController) DeleteAccount(c *fiber.Ctx) error {
	id, err := accountIDParam(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid account id")
	}

	removed, err := ac.Creds.Delete(id)
	if err != nil {
		return utils.InternalServerError(c, "Could not delete account")
	}
	if removed {
		if err := ac.Ledger.DeleteForUser(id); err != nil {
			return utils.InternalServerError(c, "Could not delete progress records")
		}
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"removed": removed})
}

// GetStatistics godoc
// @Summary Platform statistics
// @Description Aggregate counts only, no per-account data
// @Tags accounts
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /statistics [get]
func (ac *AccountsController) GetStatistics(c *fiber.Ctx) error {
	var totalAccounts int64
	if err := ac.DB.Model(&models.User{}).Count(&totalAccounts).Error; err != nil {
		return utils.InternalServerError(c, "Could not query statistics")
	}

	var totalModules int64
	if err := ac.DB.Model(&models.Module{}).Count(&totalModules).Error; err != nil {
		return utils.InternalServerError(c, "Could not query statistics")
	}

	var completedModules int64
	if err := ac.DB.Model(&models.ModuleProgress{}).Where("completed = ?", true).Count(&completedModules).Error; err != nil {
		return utils.InternalServerError(c, "Could not query statistics")
	}

	var averageProgress float64
	if err := ac.DB.Model(&models.ModuleProgress{}).
		Select("COALESCE(AVG(progress), 0)").
		Scan(&averageProgress).Error; err != nil {
		return utils.InternalServerError(c, "Could not query statistics")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"total_accounts":    totalAccounts,
		"total_modules":     totalModules,
		"completed_modules": completedModules,
		"average_progress":  averageProgress,
	})
}
