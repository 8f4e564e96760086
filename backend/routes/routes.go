package routes

import (
	"formadapt/backend/config"
	"formadapt/backend/controllers"
	"formadapt/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(cfg)

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	auth := app.Group("/api/auth")
	auth.Post("/signup", authController.Signup)
	auth.Post("/login", authController.Login)
	auth.Post("/logout", authMiddleware, authController.Logout)
	auth.Post("/reset-password", authController.ResetPassword)
	auth.Post("/update-password/:resetToken", authController.UpdatePassword)

	// Module catalogue and progress routes
	modulesController := controllers.NewModulesController(db, cfg)
	progressController := controllers.NewProgressController(db, cfg)
	modules := app.Group("/api/modules", authMiddleware)
	modules.Get("/", modulesController.ListModules)
	modules.Get("/:moduleId", modulesController.GetModule)
	modules.Get("/:moduleId/quiz", modulesController.GetModuleQuiz)
	modules.Get("/:moduleId/progress", progressController.GetModuleProgress)
	modules.Put("/:moduleId/progress", progressController.UpdateModuleProgress)
	modules.Post("/:moduleId/progress", progressController.UpdateModuleProgress)

	app.Get("/api/account/progress", authMiddleware, progressController.GetAccountProgress)

	// Admin routes
	accountsController := controllers.NewAccountsController(db, cfg)
	accounts := app.Group("/api/accounts", authMiddleware, adminMiddleware)
	accounts.Get("/", accountsController.ListAccounts)
	accounts.Post("/", accountsController.CreateAccount)
	accounts.Put("/:id", accountsController.UpdateAccount)
	accounts.Delete("/:id", accountsController.DeleteAccount)

	app.Get("/api/statistics", authMiddleware, adminMiddleware, accountsController.GetStatistics)
}
