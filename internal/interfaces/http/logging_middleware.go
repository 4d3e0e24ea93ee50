package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// LocalRequestID clave donde requestid.New() deja el identificador de la petición.
const LocalRequestID = "requestid"

// RequestLogger registra cada petición con método, ruta, status, latencia e id de petición.
// Si la petición llegó autenticada agrega también el usuario del token.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		event := log.Info()
		if status >= fiber.StatusInternalServerError {
			event = log.Error()
		}
		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", requestID(c)).
			Str("username", GetUsername(c)).
			Msg("http")
		return err
	}
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalRequestID).(string)
	return id
}
