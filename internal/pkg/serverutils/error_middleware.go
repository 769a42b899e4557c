package serverutils

import (
	"errors"

	"ai-interviewer-be/internal/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps internal error types to HTTP responses so
// controllers can just `return err`. The taxonomy: typed AppErrors carry
// their own status, validation errors are 400, anything unknown is 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return ctx.Status(appErr.HTTPStatus).JSON(ErrorResponse(appErr.Code, appErr.Message))
		}

		var valErr *ValidationError
		if errors.As(err, &valErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse("VALIDATION_FAILED", valErr.Error()))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse("HTTP_ERROR", fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("INTERNAL_ERROR", "internal server error"))
	}
}
