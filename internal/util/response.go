package util

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/fadilmartias/mock-interview/internal/apperror"
	"github.com/fadilmartias/mock-interview/internal/config"
	"github.com/fadilmartias/mock-interview/internal/response"
	"github.com/gofiber/fiber/v2"
)

type SuccessResponseFormat struct {
	Code       int
	Message    string
	Data       any
	Pagination *response.Pagination
	Meta       any
}

type OrderedSuccessResponse struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	Meta       any                  `json:"meta,omitempty"`
	Pagination *response.Pagination `json:"pagination,omitempty"`
	Data       any                  `json:"data,omitempty"`
}

type ErrorResponseFormat struct {
	Code       int
	Message    string
	DevMessage string
	Details    any
	Trace      string
}

type OrderedErrorResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Code       string `json:"code,omitempty"`
	Terminal   bool   `json:"terminal,omitempty"`
	DevMessage string `json:"dev_message,omitempty"`
	Details    any    `json:"details,omitempty"`
	Trace      string `json:"trace,omitempty"`
}

type FormError struct {
	Errors  map[string]string
	Message string
}

func (e *FormError) Error() string {
	return fmt.Sprintf("form error: %s", e.Message)
}

func NewFormError(message string, errors map[string]string) *FormError {
	return &FormError{
		Message: message,
		Errors:  errors,
	}
}

// SuccessResponse mengirim response JSON standar untuk sukses
func SuccessResponse(c *fiber.Ctx, params SuccessResponseFormat) error {
	response := OrderedSuccessResponse{
		Success:    true,
		Message:    params.Message,
		Data:       params.Data,
		Pagination: params.Pagination,
		Meta:       params.Meta,
	}
	code := params.Code
	if code == 0 {
		code = fiber.StatusOK
	}
	return c.Status(code).JSON(response)
}

// ErrorResponse mengirim response JSON standar untuk error
func ErrorResponse(c *fiber.Ctx, params ErrorResponseFormat, errs ...error) error {
	response := OrderedErrorResponse{
		Success: false,
		Message: params.Message,
	}
	var err error
	if len(errs) > 0 {
		err = errs[0]
	}
	response.Code, response.Terminal = errorCode(err)
	if params.Details != nil {
		response.Details = params.Details
	}
	if config.LoadAppConfig().Env != "production" {
		if err != nil {
			response.DevMessage = err.Error()
			if params.Details == nil {
				response.Details = err
			}
			response.Trace = string(debug.Stack())
		}

		if params.DevMessage != "" {
			response.DevMessage = params.DevMessage
		}
		if params.Trace != "" {
			response.Trace = params.Trace
		}
	}

	status := params.Code
	if status == 0 {
		status = StatusFor(err)
	}
	return c.Status(status).JSON(response)
}

// DomainError answers with the status that matches err. Validation failures
// carry their field errors as details.
func DomainError(c *fiber.Ctx, message string, err error) error {
	var verr *apperror.ValidationError
	if errors.As(err, &verr) {
		form := NewFormError(verr.Message, verr.Fields)
		return ErrorResponse(c, ErrorResponseFormat{
			Message: message,
			Details: fiber.Map{"message": form.Message, "errors": form.Errors},
		}, err)
	}
	return ErrorResponse(c, ErrorResponseFormat{Message: message}, err)
}

// StatusFor maps the error taxonomy onto HTTP status codes.
func StatusFor(err error) int {
	var fe *fiber.Error
	switch {
	case err == nil:
		return fiber.StatusInternalServerError
	case errors.As(err, &fe):
		return fe.Code
	case apperror.IsValidation(err):
		return fiber.StatusBadRequest
	case errors.Is(err, apperror.ErrNotFound):
		return fiber.StatusNotFound
	case apperror.IsInvalidTransition(err), errors.Is(err, apperror.ErrSessionBusy):
		return fiber.StatusConflict
	case apperror.IsReportUnavailable(err), apperror.IsGeneration(err):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func errorCode(err error) (string, bool) {
	switch {
	case err == nil:
		return "", false
	case apperror.IsValidation(err):
		return "validation_error", false
	case errors.Is(err, apperror.ErrNotFound):
		return "not_found", false
	case apperror.IsInvalidTransition(err):
		return "invalid_transition", false
	case errors.Is(err, apperror.ErrSessionBusy):
		return "session_busy", false
	case apperror.IsReportUnavailable(err):
		return "report_unavailable", true
	case apperror.IsGeneration(err):
		return "generation_error", false
	default:
		return "internal_error", false
	}
}
