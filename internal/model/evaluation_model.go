package model

import "slices"

// Evaluation is produced once per answered question. Scores are kept exactly as
// the generator returned them.
type Evaluation struct {
	Score           float64  `json:"score"`
	Feedback        string   `json:"feedback"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	BetterAnswer    string   `json:"better_answer"`
	SoftSkillsScore float64  `json:"soft_skills_score"`
	TechSkillsScore float64  `json:"tech_skills_score"`
	NPCEmotion      string   `json:"npc_emotion"`
}

// Clone returns a copy that shares no slices with e.
func (e *Evaluation) Clone() *Evaluation {
	if e == nil {
		return nil
	}
	c := *e
	c.Strengths = slices.Clone(e.Strengths)
	c.Weaknesses = slices.Clone(e.Weaknesses)
	return &c
}

type HistoryItem struct {
	Question   Question    `json:"question"`
	UserAnswer string      `json:"user_answer"`
	Evaluation *Evaluation `json:"evaluation,omitempty"`
	PersonaID  string      `json:"persona_id"`
}
