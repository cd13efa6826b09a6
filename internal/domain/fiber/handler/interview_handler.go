package handler

import (
	"github.com/fadilmartias/mock-interview/internal/apperror"
	"github.com/fadilmartias/mock-interview/internal/dto"
	"github.com/fadilmartias/mock-interview/internal/logger"
	"github.com/fadilmartias/mock-interview/internal/model"
	"github.com/fadilmartias/mock-interview/internal/response"
	"github.com/fadilmartias/mock-interview/internal/roster"
	"github.com/fadilmartias/mock-interview/internal/usecase"
	"github.com/fadilmartias/mock-interview/internal/util"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type InterviewHandler struct {
	uc      *usecase.InterviewUsecase
	roster  *roster.Roster
	limiter fiber.Handler
	logger  *zap.Logger
}

// NewInterviewHandler builds the session routes. limiter guards every route
// that calls the generator; nil disables it.
func NewInterviewHandler(uc *usecase.InterviewUsecase, r *roster.Roster, limiter fiber.Handler, log *zap.Logger) *InterviewHandler {
	if limiter == nil {
		limiter = func(c *fiber.Ctx) error { return c.Next() }
	}
	if r == nil {
		r = roster.Default()
	}
	return &InterviewHandler{uc: uc, roster: r, limiter: limiter, logger: logger.OrNop(log)}
}

func (h *InterviewHandler) RegisterRoutes(app fiber.Router) {
	api := app.Group("/api")
	api.Get("/roster", h.Roster)

	sessions := api.Group("/sessions")
	sessions.Post("", h.limiter, h.Start)
	sessions.Get("/:id", h.Get)
	sessions.Delete("/:id", h.Restart)
	sessions.Put("/:id/draft", h.Draft)
	sessions.Post("/:id/answer", h.limiter, h.Answer)
	sessions.Post("/:id/next", h.limiter, h.Next)
	sessions.Post("/:id/round", h.limiter, h.RetryRound)
	sessions.Get("/:id/history", h.History)
	sessions.Get("/:id/report", h.limiter, h.Report)
}

func (h *InterviewHandler) Roster(c *fiber.Ctx) error {
	rounds := make([]dto.RosterRound, 0, len(model.Rounds))
	for _, round := range model.Rounds {
		personas := h.roster.Personas(round)
		views := make([]dto.PersonaView, 0, len(personas))
		for _, p := range personas {
			views = append(views, dto.PersonaView{
				ID:          p.ID,
				Name:        p.Name,
				Role:        p.Role,
				Avatar:      p.Avatar,
				Personality: p.Personality,
				Traits:      p.Traits,
				Status:      string(usecase.StatusReady),
			})
		}
		rounds = append(rounds, dto.RosterRound{
			Round:    string(round),
			Number:   round.Number(),
			Title:    h.roster.Title(round),
			Personas: views,
		})
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get roster",
		Data:    rounds,
	})
}

func (h *InterviewHandler) Start(c *fiber.Ctx) error {
	var req dto.StartSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	session, err := h.uc.Start(c.UserContext(), req.Profile())
	if err != nil {
		if session == nil {
			return util.DomainError(c, "failed to start session", err)
		}
		return h.sessionError(c, "failed to prepare the first round", session, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success start session",
		Data:    h.view(session),
	})
}

func (h *InterviewHandler) Get(c *fiber.Ctx) error {
	session, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return util.DomainError(c, "session not found", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get session",
		Data:    h.view(session),
	})
}

func (h *InterviewHandler) Draft(c *fiber.Ctx) error {
	session, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return util.DomainError(c, "session not found", err)
	}
	var req dto.DraftRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if err := session.TypeAnswer(req.Draft); err != nil {
		return h.sessionError(c, "failed to save draft", session, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success save draft",
		Data:    h.view(session),
	})
}

func (h *InterviewHandler) Answer(c *fiber.Ctx) error {
	session, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return util.DomainError(c, "session not found", err)
	}
	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if _, err := session.SubmitAnswer(c.UserContext(), req.Answer); err != nil {
		return h.sessionError(c, "failed to evaluate answer", session, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success evaluate answer",
		Data:    h.view(session),
	})
}

func (h *InterviewHandler) Next(c *fiber.Ctx) error {
	session, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return util.DomainError(c, "session not found", err)
	}
	if err := session.Next(c.UserContext()); err != nil {
		return h.sessionError(c, "failed to move on", session, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success move on",
		Data:    h.view(session),
	})
}

func (h *InterviewHandler) RetryRound(c *fiber.Ctx) error {
	session, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return util.DomainError(c, "session not found", err)
	}
	if err := session.InitRound(c.UserContext(), session.Round()); err != nil {
		return h.sessionError(c, "failed to prepare round", session, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success prepare round",
		Data:    h.view(session),
	})
}

func (h *InterviewHandler) History(c *fiber.Ctx) error {
	session, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return util.DomainError(c, "session not found", err)
	}
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 10)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	history := session.History()
	items, _, _ := dto.PageHistory(history, page, pageSize)

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get history",
		Data:       items,
		Pagination: response.NewPagination(page, pageSize, len(history)),
	})
}

func (h *InterviewHandler) Report(c *fiber.Ctx) error {
	session, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return util.DomainError(c, "session not found", err)
	}
	report, err := session.Report(c.UserContext())
	if err != nil {
		return h.sessionError(c, "Lỗi tạo báo cáo.", session, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get report",
		Data:    dto.NewReportView(session.ID(), session.Profile(), report),
	})
}

// Restart discards the session. The client goes back to the setup form.
func (h *InterviewHandler) Restart(c *fiber.Ctx) error {
	if err := h.uc.Discard(c.Params("id")); err != nil {
		return util.DomainError(c, "session not found", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success restart",
		Data:    fiber.Map{"view": usecase.ViewSetup},
	})
}

func (h *InterviewHandler) sessionError(c *fiber.Ctx, message string, session *usecase.InterviewSession, err error) error {
	h.logger.Warn(message, zap.String("session_id", session.ID()), zap.Error(err))
	if apperror.IsValidation(err) {
		return util.DomainError(c, message, err)
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Message: message,
		Details: fiber.Map{"session": h.view(session)},
	}, err)
}

func (h *InterviewHandler) view(session *usecase.InterviewSession) dto.SessionView {
	return dto.NewSessionView(session.Snapshot(), h.roster)
}
