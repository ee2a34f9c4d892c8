package middleware

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"rewrite_server/pkg/apperr"
	"rewrite_server/pkg/logger"
	"rewrite_server/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ErrorHandler is the centralized error handler for Fiber. Every error is
// rendered as {"error": message}; wrapped causes are logged, never returned.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		requestID, _ := c.Locals("request_id").(string)

		appErr := apperr.AsAppError(err)
		var fiberErr *fiber.Error

		switch {
		case appErr != nil:
			log := appErrorLogger(logger.Default(), requestID, appErr)
			if appErr.Status >= 500 {
				log.Error("Internal error: %s", appErr.Message)
			} else {
				log.Warn("Client error: %s", appErr.Message)
			}
			return response.Error(c, appErr.Status, appErr.Message)

		case errors.As(err, &fiberErr):
			return response.Error(c, fiberErr.Code, fiberErr.Message)

		default:
			logger.WithField("request_id", requestID).
				WithError(err).
				WithField("stack", string(debug.Stack())).
				Error("Unexpected error")
			return response.InternalError(c, apperr.MsgProcessingFailed)
		}
	}
}

// appErrorLogger carries everything the caller does not see: the code, the
// details and the wrapped cause.
func appErrorLogger(base *logger.Logger, requestID string, appErr *apperr.AppError) *logger.Logger {
	return base.WithField("request_id", requestID).
		WithField("error_code", appErr.Code).
		WithFields(appErr.Details).
		WithError(appErr.Err)
}

// RequestID middleware adds a unique request ID to each request and to the
// request's user context.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(fiber.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Locals("request_id", requestID)
		c.SetUserContext(context.WithValue(c.UserContext(), logger.RequestIDKey, requestID))
		c.Set(fiber.HeaderXRequestID, requestID)
		return c.Next()
	}
}

// RequestLogger logs incoming requests and their responses. Bodies are never
// logged; they carry the user's email.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()
		if err != nil {
			// Render now so the logged status is the one the caller sees.
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
			err = nil
		}

		requestID, _ := c.Locals("request_id").(string)
		status := c.Response().StatusCode()

		log := logger.WithFields(map[string]any{
			"request_id": requestID,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"ip":         c.IP(),
			"user_agent": c.Get(fiber.HeaderUserAgent),
		}).WithDuration(time.Since(start))

		switch {
		case status >= 500:
			log.Error("Request failed: %s %s -> %d", c.Method(), c.Path(), status)
		case status >= 400:
			log.Warn("Request error: %s %s -> %d", c.Method(), c.Path(), status)
		default:
			log.Info("Request completed: %s %s -> %d", c.Method(), c.Path(), status)
		}

		return err
	}
}

// Recover middleware recovers from panics
func Recover() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				requestID, _ := c.Locals("request_id").(string)

				logger.WithFields(map[string]any{
					"request_id": requestID,
					"panic":      fmt.Sprintf("%v", r),
					"path":       c.Path(),
					"method":     c.Method(),
					"stack":      string(debug.Stack()),
				}).Error("Panic recovered")

				err = response.InternalError(c, apperr.MsgProcessingFailed)
			}
		}()
		return c.Next()
	}
}
