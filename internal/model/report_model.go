package model

type Report struct {
	OverallScore      float64           `json:"overall_score"`
	RoundScores       map[Round]float64 `json:"round_scores"`
	SoftSkillsAverage float64           `json:"soft_skills_average"`
	TechSkillsAverage float64           `json:"tech_skills_average"`
	Summary           string            `json:"summary"`
	ImprovementPlan   []string          `json:"improvement_plan"`
}
