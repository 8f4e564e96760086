package controllers

import (
	"errors"
	"log"

	"formadapt/backend/config"
	"formadapt/backend/models"
	"formadapt/backend/store"
	"formadapt/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthController struct {
	DB    *gorm.DB
	Cfg   *config.Config
	Creds *store.CredentialStore
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg, Creds: store.NewCredentialStore(db)}
}

func accountPayload(user *models.User) fiber.Map {
	return fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	}
}

// Signup godoc
// @Summary Register a new account
// @Description Creates an account and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /auth/signup [post]
func (ac *AuthController) Signup(c *fiber.Ctx) error {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
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
	if len(missing) > 0 {
		return utils.BadRequest(c, "Missing required fields", fiber.Map{"missing": missing})
	}

	user, err := ac.Creds.Create(input.Name, input.Email, input.Password, "user")
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return utils.Conflict(c, "Email already in use")
		}
		return utils.InternalServerError(c, "Could not create account")
	}

	token, err := utils.GenerateJWTToken(user.ID, user.Role, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token":   token,
		"account": accountPayload(user),
	})
}

// Login godoc
// @Summary Authenticate an account
// @Description Verifies credentials and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Email == "" || input.Password == "" {
		return utils.BadRequest(c, "Email and password are required")
	}

	// Unknown email and wrong password produce the same response, so the
	// endpoint cannot be used to enumerate accounts.
	user, err := ac.Creds.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.Unauthorized(c, "Invalid credentials")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if !utils.VerifyPassword(input.Password, user.PasswordHash, user.Salt) {
		return utils.Unauthorized(c, "Invalid credentials")
	}

	token, err := utils.GenerateJWTToken(user.ID, user.Role, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return c.JSON(fiber.Map{
		"token":   token,
		"account": accountPayload(user),
	})
}

// Logout godoc
// @Summary Log out
// @Description Acknowledges logout. Tokens are stateless, so the credential
// stays valid until its natural expiry; discarding it is the client's job.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /auth/logout [post]
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// ResetPassword godoc
// @Summary Request a password reset
// @Description Issues a single-use reset ticket if the email exists. The
// response is identical either way.
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Router /auth/reset-password [post]
func (ac *AuthController) ResetPassword(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Email == "" {
		return utils.BadRequest(c, "Email is required")
	}

	user, err := ac.Creds.FindByEmail(input.Email)
	if err == nil {
		token, err := ac.Creds.CreateResetToken(user.ID)
		if err != nil {
			return utils.InternalServerError(c, "Could not create reset ticket")
		}
		// Stand-in for out-of-band delivery (email).
		log.Printf("Password reset requested for %s. Token: %s", input.Email, token)
	} else if !errors.Is(err, store.ErrNotFound) {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(fiber.Map{"message": "Reset email sent"})
}

// UpdatePassword godoc
// @Summary Update a password with a reset ticket
// @Description Consumes the ticket and sets the new password
// @Tags auth
// @Accept json
// @Produce json
// @Param resetToken path string true "Reset ticket"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Router /auth/update-password/{resetToken} [post]
func (ac *AuthController) UpdatePassword(c *fiber.Ctx) error {
	resetToken := c.Params("resetToken")

	var input struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Password == "" {
		return utils.BadRequest(c, "Password is required")
	}

	userID, err := ac.Creds.ConsumeResetToken(resetToken)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.BadRequest(c, "Invalid or expired reset token")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := ac.Creds.UpdatePassword(userID, input.Password); err != nil {
		return utils.InternalServerError(c, "Could not update password")
	}

	return c.JSON(fiber.Map{"message": "Password updated"})
}
