package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request ID in both directions.
const RequestIDHeader = fiber.HeaderXRequestID

const requestIDKey = "requestid"

// RequestID is fiber's requestid middleware: an incoming X-Request-ID is
// reused, otherwise a random UUID is generated. The ID is echoed on the
// response and stored in Locals.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     RequestIDHeader,
		Generator:  uuid.NewString,
		ContextKey: requestIDKey,
	})
}

// GetRequestID returns the ID set by RequestID, or "" outside it.
func GetRequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDKey).(string)
	return id
}

// Logging writes one access-log line per request.
func Logging() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}

		log.Printf("[HTTP] %s %s %d %s id=%s", c.Method(), c.OriginalURL(), status, time.Since(start).Round(time.Microsecond), GetRequestID(c))
		return err
	}
}
