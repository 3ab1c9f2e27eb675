package server

import (
	"context"
	"time"

	"github.com/balojey/abdullateef-api/logger"
	"github.com/balojey/abdullateef-api/types"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ServerController reports whether the service and its database are reachable
type ServerController struct {
	DB *gorm.DB
}

func NewServerController(db *gorm.DB) *ServerController {
	return &ServerController{DB: db}
}

// Health answers 200 when the database responds to a ping, 503 otherwise
func (sc *ServerController) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	sqlDB, err := sc.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		logger.Error("Health check failed", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(types.ApiResponse{
			Message: "Database unavailable",
			Status:  fiber.StatusServiceUnavailable,
		})
	}

	return c.JSON(types.ApiResponse{
		Message: "OK",
		Status:  fiber.StatusOK,
	})
}
