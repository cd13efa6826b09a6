package handler

import (
	"context"

	"github.com/fadilmartias/mock-interview/internal/dto"
	"github.com/fadilmartias/mock-interview/internal/util"
	"github.com/gofiber/fiber/v2"
)

type CredentialServiceInterface interface {
	Provider() string
	Status(ctx context.Context) (bool, string, error)
	Configure(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

type CredentialHandler struct {
	svc CredentialServiceInterface
}

func NewCredentialHandler(svc CredentialServiceInterface) *CredentialHandler {
	return &CredentialHandler{svc: svc}
}

func (h *CredentialHandler) RegisterRoutes(app fiber.Router) {
	app.Get("/api/credential", h.Status)
	app.Put("/api/credential", h.Configure)
	app.Delete("/api/credential", h.Clear)
}

func (h *CredentialHandler) Status(c *fiber.Ctx) error {
	status, err := h.status(c.UserContext())
	if err != nil {
		return util.DomainError(c, "failed to read credential", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get credential status",
		Data:    status,
	})
}

func (h *CredentialHandler) Configure(c *fiber.Ctx) error {
	var req dto.CredentialRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if err := h.svc.Configure(c.UserContext(), req.APIKey); err != nil {
		return util.DomainError(c, "failed to save API key", err)
	}
	status, err := h.status(c.UserContext())
	if err != nil {
		return util.DomainError(c, "failed to read credential", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Đã lưu API key.",
		Data:    status,
	})
}

func (h *CredentialHandler) Clear(c *fiber.Ctx) error {
	if err := h.svc.Clear(c.UserContext()); err != nil {
		return util.DomainError(c, "failed to clear API key", err)
	}
	status, err := h.status(c.UserContext())
	if err != nil {
		return util.DomainError(c, "failed to read credential", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Đã xoá API key.",
		Data:    status,
	})
}

func (h *CredentialHandler) status(ctx context.Context) (dto.CredentialStatus, error) {
	configured, source, err := h.svc.Status(ctx)
	if err != nil {
		return dto.CredentialStatus{}, err
	}
	return dto.CredentialStatus{Provider: h.svc.Provider(), Configured: configured, Source: source}, nil
}
