package middleware

import (
	"time"

	"github.com/balojey/abdullateef-api/types"
	"github.com/balojey/abdullateef-api/utils"

	"github.com/gofiber/fiber/v2"
)

// RequestLogSink receives one entry per completed request
type RequestLogSink interface {
	Log(entry types.LogEntry)
}

// RequestLog queues a sanitized copy of every request and response on sink
func RequestLog(sink RequestLogSink) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// let the error handler write the response before it is captured
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		sink.Log(utils.CreateSanitizedLogEntry(c, time.Since(start)))
		return nil
	}
}
