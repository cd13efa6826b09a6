package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fadilmartias/mock-interview/internal/model"
)

func buildQuestionsPrompt(round model.Round, profile model.Profile, personality string) string {
	return fmt.Sprintf(`
You are an expert Accounting Interviewer in Vietnam.
Role: %s Interviewer.
Personality: %s.
Candidate: %s, Level: %s, Target: %s.

Generate %d distinct interview questions suitable for this round.
Language: Vietnamese.

Context:
- HR: Focus on soft skills, introduction, strengths/weaknesses.
- TECHNICAL: Focus on Vietnamese Accounting Standards (VAS), tax laws, journal entries.
- SITUATION: Focus on ethics, conflict resolution, or complex business errors.
`, round, personality, profile.Name, profile.ExperienceLevel, profile.TargetRole, model.QuestionsPerRound)
}

func buildEvaluationPrompt(question model.Question, answer string, profile model.Profile, persona model.PersonaContext) string {
	name := persona.Name
	if name == "" {
		name = "Interviewer"
	}
	personality := persona.Personality
	if personality == "" {
		personality = "Professional"
	}
	return fmt.Sprintf(`
Evaluate this answer for an accounting interview in Vietnam.
Interviewer: %s
Interviewer Personality: %s
Question: "%s"
Candidate Answer: "%s"
Candidate Level: %s

Provide a score (0-10) and detailed feedback in Vietnamese.
Assess both technical accuracy (accounting logic) and soft skills (clarity, confidence).

Also, determine the Interviewer's emotional reaction (npcEmotion) based on their personality and the quality of the answer.
Examples of emotion: "Impressed", "Satisfied", "Neutral", "Skeptical", "Disappointed", "Confused", "Happy".
`, name, personality, question.Text, answer, profile.ExperienceLevel)
}

// BuildTranscript serialises the history for the report request: question
// text, answer and score of every item, in answer order.
func BuildTranscript(history []model.HistoryItem) string {
	parts := make([]string, 0, len(history))
	for _, h := range history {
		score := "n/a"
		if h.Evaluation != nil {
			score = strconv.FormatFloat(h.Evaluation.Score, 'f', -1, 64)
		}
		parts = append(parts, fmt.Sprintf("Q: %s\nA: %s\nScore: %s", h.Question.Text, h.UserAnswer, score))
	}
	return strings.Join(parts, "\n---\n")
}

func buildReportPrompt(transcript string, profile model.Profile) string {
	return fmt.Sprintf(`
Generate a final interview performance report for %s (%s).
History:
%s

Output must be in Vietnamese.
Calculate average scores.
Provide a summary paragraph and a list of specific improvement actions.
`, profile.Name, profile.TargetRole, transcript)
}
