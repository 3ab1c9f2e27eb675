package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/balojey/abdullateef-api/config"
	"github.com/balojey/abdullateef-api/database"
	"github.com/balojey/abdullateef-api/logger"
	"github.com/balojey/abdullateef-api/middleware"
	"github.com/balojey/abdullateef-api/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration: " + err.Error())
	}
	if err := logger.Init(cfg.LogDir); err != nil {
		logger.Fatal("Failed to initialize logger: " + err.Error())
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize database: " + err.Error())
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error("Failed to close database", err)
		}
	}()

	app := fiber.New(fiber.Config{
		ReadBufferSize:  32768, // 32KB read buffer
		WriteBufferSize: 32768, // 32KB write buffer
		ReadTimeout:     time.Second * 30,
		WriteTimeout:    time.Second * 30,
		BodyLimit:       1 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: cfg.FrontendURL != "*",
	}))

	var requestLog middleware.RequestLogSink
	if cfg.RequestLog {
		asyncLogger := logger.NewAsyncLogger(db)
		go asyncLogger.ProcessLog()
		defer asyncLogger.Close()
		requestLog = asyncLogger
	}

	routes.SetupRoutes(app, db, cfg, requestLog)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Info("Shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("Failed to shut down server", err)
		}
	}()

	logger.Success("Server is running on ip: " + cfg.AppHost + " port: " + cfg.AppPort)
	if err := app.Listen(cfg.ListenAddr()); err != nil {
		logger.Error("Server stopped", err)
	}
}
