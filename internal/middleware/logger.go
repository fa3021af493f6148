package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/example/epkadmin/internal/metrics"
)

// RequestLogger logs every request once it has been handled and records its
// latency. Errors from the chain are rendered through the app ErrorHandler
// first so the logged status is the one the client sees.
func RequestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		latency := time.Since(start)

		status := c.Response().StatusCode()
		metrics.ObserveRequest(c.Method(), c.Route().Path, strconv.Itoa(status), latency.Seconds())

		fields := []zap.Field{
			zap.Any("request_id", c.Locals("requestid")),
			zap.Int("status", status),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Duration("latency", latency),
			zap.String("ip", c.IP()),
		}
		if chainErr != nil {
			fields = append(fields, zap.Error(chainErr))
		}
		if ce := log.Check(levelFor(status), "request"); ce != nil {
			ce.Write(fields...)
		}
		return nil
	}
}

func levelFor(status int) zapcore.Level {
	switch {
	case status >= fiber.StatusInternalServerError:
		return zapcore.ErrorLevel
	case status >= fiber.StatusBadRequest:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}
