package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"spacenotes-be/internal/apperror"
	"spacenotes-be/internal/service"
)

type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) APIResponse[T] {
	return APIResponse[T]{
		Success: true,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) APIResponse[any] {
	return APIResponse[any]{
		Success: false,
		Code:    code,
		Message: message,
	}
}

// ErrorHandlerMiddleware maps domain errors to HTTP statuses so controllers
// can return service errors unchanged.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var (
			invalidID  *apperror.InvalidIdentifierError
			notFound   *apperror.NotFoundError
			conflict   *apperror.ConflictError
			fieldErr   *apperror.FieldValidationError
			restricted *apperror.RestrictedError
			expired    *apperror.SessionExpiredError
			aborted    *apperror.AbortedError
			fiberErr   *fiber.Error
		)

		switch {
		case errors.As(err, &invalidID):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(400, err.Error()))
		case errors.As(err, &fieldErr):
			resp := ErrorResponse(400, "field validation failed")
			resp.Data = fiber.Map{"fields": fieldErr.Fields}
			return ctx.Status(fiber.StatusBadRequest).JSON(resp)
		case errors.As(err, &notFound):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(404, err.Error()))
		case errors.As(err, &conflict):
			return ctx.Status(fiber.StatusConflict).JSON(ErrorResponse(409, err.Error()))
		case errors.As(err, &restricted):
			return ctx.Status(fiber.StatusConflict).JSON(ErrorResponse(409, err.Error()))
		case errors.As(err, &expired), errors.Is(err, service.ErrInvalidCredentials):
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, err.Error()))
		case errors.As(err, &aborted):
			// Retryable; nothing partial was committed.
			return ctx.Status(fiber.StatusConflict).JSON(ErrorResponse(409, err.Error()))
		case errors.As(err, &fiberErr):
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, "internal server error"))
		}
	}
}
