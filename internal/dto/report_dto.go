package dto

import (
	"github.com/fadilmartias/mock-interview/internal/model"
)

// ReadyThreshold is the overall score above which the candidate is considered ready.
const ReadyThreshold = 7.5

const (
	VerdictReady    = "ready"
	VerdictPractice = "needs_practice"
)

type RoundScoreView struct {
	Round model.Round `json:"round"`
	Label string      `json:"label"`
	Score float64     `json:"score"`
}

type SkillScoreView struct {
	Subject  string  `json:"subject"`
	Score    float64 `json:"score"`
	FullMark float64 `json:"full_mark"`
}

type ReportView struct {
	SessionID         string           `json:"session_id"`
	Candidate         model.Profile    `json:"candidate"`
	OverallScore      float64          `json:"overall_score"`
	RoundScores       []RoundScoreView `json:"round_scores"`
	SoftSkillsAverage float64          `json:"soft_skills_average"`
	TechSkillsAverage float64          `json:"tech_skills_average"`
	Skills            []SkillScoreView `json:"skills"`
	Summary           string           `json:"summary"`
	ImprovementPlan   []string         `json:"improvement_plan"`
	Verdict           string           `json:"verdict"`
	VerdictText       string           `json:"verdict_text"`
}

var roundLabels = map[model.Round]string{
	model.RoundHR:        "Nhân sự",
	model.RoundTechnical: "Chuyên môn",
	model.RoundSituation: "Tình huống",
}

func NewReportView(sessionID string, profile model.Profile, report *model.Report) ReportView {
	rounds := make([]RoundScoreView, 0, len(model.Rounds))
	for _, r := range model.Rounds {
		rounds = append(rounds, RoundScoreView{Round: r, Label: roundLabels[r], Score: report.RoundScores[r]})
	}
	verdict, text := Verdict(report.OverallScore)
	return ReportView{
		SessionID:         sessionID,
		Candidate:         profile,
		OverallScore:      report.OverallScore,
		RoundScores:       rounds,
		SoftSkillsAverage: report.SoftSkillsAverage,
		TechSkillsAverage: report.TechSkillsAverage,
		Skills:            SkillRadar(report, profile),
		Summary:           report.Summary,
		ImprovementPlan:   report.ImprovementPlan,
		Verdict:           verdict,
		VerdictText:       text,
	}
}

// Verdict returns the verdict code and its display text for an overall score.
func Verdict(overall float64) (string, string) {
	if overall > ReadyThreshold {
		return VerdictReady, "Bạn đã sẵn sàng cho vị trí thực tế!"
	}
	return VerdictPractice, "Cần ôn tập thêm về chuẩn mực kế toán và sự tự tin."
}

// SkillRadar derives the five radar axes from the report averages and the
// confidence the candidate declared up front.
func SkillRadar(report *model.Report, profile model.Profile) []SkillScoreView {
	return []SkillScoreView{
		{Subject: "Kiến thức", Score: report.TechSkillsAverage, FullMark: 10},
		{Subject: "Thái độ", Score: report.SoftSkillsAverage, FullMark: 10},
		{Subject: "Logic", Score: (report.TechSkillsAverage + report.SoftSkillsAverage) / 2, FullMark: 10},
		{Subject: "Tự tin", Score: float64(profile.Confidence), FullMark: 10},
		{Subject: "Trình bày", Score: report.SoftSkillsAverage, FullMark: 10},
	}
}
