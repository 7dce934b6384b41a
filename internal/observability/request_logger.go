package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/user-service/pkg/util/errorutil"
)

// RequestIDKey is the fiber.Locals key holding the request id.
const RequestIDKey = "request_id"

// RequestLogger logs one line per request and feeds the request counters.
// An incoming X-Request-ID is reused, otherwise a new one is generated and echoed back.
// Values read from the request are copied since fiber reuses its buffers once the
// handler returns.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := utils.CopyString(c.Get(fiber.HeaderXRequestID))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, requestID)
		c.Locals(RequestIDKey, requestID)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = apperrors.ToDomainError(err).HTTPStatus
		}
		elapsed := time.Since(start)

		metrics.RecordRequest(c.Path(), c.Method(), status, elapsed)
		logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", utils.CopyString(c.Method())),
			zap.String("url", utils.CopyString(c.OriginalURL())),
			zap.Int("status", status),
			zap.Duration("duration", elapsed),
		)
		return err
	}
}
