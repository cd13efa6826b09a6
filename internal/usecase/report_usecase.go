package usecase

import (
	"context"
	"errors"

	"github.com/fadilmartias/mock-interview/internal/apperror"
	"github.com/fadilmartias/mock-interview/internal/logger"
	"github.com/fadilmartias/mock-interview/internal/model"
	"github.com/fadilmartias/mock-interview/internal/service"
	"go.uber.org/zap"
)

// ReportUsecase asks the generator for the final report over a full history.
type ReportUsecase struct {
	generator service.GeneratorServiceInterface
	logger    *zap.Logger
}

func NewReportUsecase(generator service.GeneratorServiceInterface, log *zap.Logger) *ReportUsecase {
	return &ReportUsecase{generator: generator, logger: logger.OrNop(log)}
}

// GenerateReport makes exactly one generator call. Any failure comes back as
// a ReportUnavailableError.
func (uc *ReportUsecase) GenerateReport(ctx context.Context, history []model.HistoryItem, profile model.Profile) (*model.Report, error) {
	if len(history) == 0 {
		return nil, apperror.NewReportUnavailable(errors.New("history is empty"))
	}

	report, err := uc.generator.GenerateReport(ctx, history, profile)
	if err != nil {
		uc.logger.Error("report generation failed", zap.Int("history_len", len(history)), zap.Error(err))
		return nil, apperror.NewReportUnavailable(err)
	}
	uc.logger.Info("report generated",
		zap.Int("history_len", len(history)),
		zap.Float64("overall_score", report.OverallScore),
	)
	return report, nil
}
