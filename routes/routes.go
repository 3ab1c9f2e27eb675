package routes

import (
	"github.com/balojey/abdullateef-api/config"
	"github.com/balojey/abdullateef-api/constants"
	"github.com/balojey/abdullateef-api/controllers/hajj_package"
	"github.com/balojey/abdullateef-api/controllers/server"
	"github.com/balojey/abdullateef-api/logger"
	"github.com/balojey/abdullateef-api/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes registers every route on app. A nil requestLog disables request logging.
func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, requestLog middleware.RequestLogSink) {
	hajjPackageController := hajj_package.NewHajjPackageController(db)
	serverController := server.NewServerController(db)

	if requestLog != nil {
		app.Use(middleware.RequestLog(requestLog))
	}

	app.Get("/health", serverController.Health)

	/*=============================================================================
	| API Routes
	===============================================================================*/
	api := app.Group("/api")
	if cfg.RateLimitRPS > 0 {
		api.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Handler())
	} else {
		logger.Info("Rate limiting disabled")
	}

	if cfg.JWTSecret == "" {
		logger.Warning("JWT_SECRET is not set, hajj package writes are not protected")
	}
	canManage := middleware.RequirePermissions(cfg.JWTSecret, constants.HajjPackageWritePermissions...)

	/*=============================================================================
	| Hajj Package Routes
	===============================================================================*/
	packages := api.Group("/hajj-packages")
	packages.Get("/", hajjPackageController.Index)
	packages.Get("/:id", hajjPackageController.Show)
	packages.Post("/", canManage, hajjPackageController.Store)
	packages.Put("/:id", canManage, hajjPackageController.Update)
	packages.Delete("/:id", canManage, hajjPackageController.Destroy)
}
