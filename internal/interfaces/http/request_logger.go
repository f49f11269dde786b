package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/benchmark-hub/pkg/logger"
)

// LocalRequestID key del request id (lo carga el middleware requestid de Fiber).
const LocalRequestID = "requestid"

// RequestLogger registra una línea por request: método, ruta, status, latencia y request id.
// Los 5xx van en nivel error y los 4xx en warn.
func RequestLogger(log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	httpLog := log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			// Deja que el ErrorHandler de la app escriba la respuesta antes de leer el status.
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()

		ev := httpLog.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = httpLog.Error()
		case status >= fiber.StatusBadRequest:
			ev = httpLog.Warn()
		}
		ev.Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("request")
		return nil
	}
}

func requestID(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocalRequestID).(string); ok {
		return v
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
