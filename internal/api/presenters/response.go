package presenters

import (
	"errors"

	"github.com/fxckultimv/foodgram-project-react/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type (
	Response struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Data    any    `json:"data,omitempty"`
		Error   *Error `json:"error,omitempty"`
	}

	Error struct {
		Kind   string `json:"kind,omitempty"`
		Code   string `json:"code,omitempty"`
		Field  string `json:"field,omitempty"`
		Detail string `json:"detail"`
	}
)

func SuccessResponse(c *fiber.Ctx, data any, status int, message string) error {
	return c.Status(status).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	body := &Error{}
	switch {
	case status >= fiber.StatusInternalServerError:
		// driver and connection errors stay in the log
		body.Detail = domain.MessageFailedProcessRequest
		log.Error().Err(err).Str("path", c.Path()).Int("status", status).Msg(message)
	case err != nil:
		body.Detail = err.Error()
	}
	var de *domain.Error
	if errors.As(err, &de) {
		body.Kind = string(de.Kind)
		body.Code = de.Code
		body.Field = de.Field
	}
	return c.Status(status).JSON(Response{
		Status:  false,
		Message: message,
		Error:   body,
	})
}

// DomainErrorResponse picks the status from the error kind.
func DomainErrorResponse(c *fiber.Ctx, message string, err error) error {
	return ErrorResponse(c, StatusFor(err), message, err)
}

func StatusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindInvalidInput,
		domain.KindUnknownReference,
		domain.KindInvalidTarget,
		domain.KindAlreadyExists,
		domain.KindNotFound:
		return fiber.StatusBadRequest
	case domain.KindForbidden:
		return fiber.StatusForbidden
	case domain.KindMissingEntity:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
