package util

import (
	"errors"
	"testing"

	"github.com/fadilmartias/mock-interview/internal/apperror"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperror.NewValidationError("bad", nil), fiber.StatusBadRequest},
		{apperror.ErrNotFound, fiber.StatusNotFound},
		{apperror.NewInvalidTransition("AdvanceQuestion", "QUESTION_ACTIVE"), fiber.StatusConflict},
		{apperror.ErrSessionBusy, fiber.StatusConflict},
		{apperror.NewGenerationError("evaluate_answer", errors.New("boom")), fiber.StatusBadGateway},
		{apperror.NewReportUnavailable(errors.New("boom")), fiber.StatusBadGateway},
		{fiber.ErrTooManyRequests, fiber.StatusTooManyRequests},
		{errors.New("other"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFor(tc.err), tc.err.Error())
	}
}

func TestErrorCode(t *testing.T) {
	code, terminal := errorCode(apperror.NewReportUnavailable(errors.New("boom")))
	assert.Equal(t, "report_unavailable", code)
	assert.True(t, terminal)

	code, terminal = errorCode(apperror.NewGenerationError("generate_questions", errors.New("boom")))
	assert.Equal(t, "generation_error", code)
	assert.False(t, terminal)
}
