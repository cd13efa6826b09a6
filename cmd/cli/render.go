package main

import (
	"fmt"
	"strings"

	"github.com/fadilmartias/mock-interview/internal/dto"
	"github.com/fadilmartias/mock-interview/internal/model"
	"github.com/fadilmartias/mock-interview/internal/usecase"
	"github.com/fatih/color"
)

var (
	blue   = color.New(color.FgBlue).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

const separator = "────────────────────────────────────────────────────────"

func landing() string {
	var b strings.Builder
	b.WriteString(bold(blue("Phỏng Vấn Thử AI")) + "\n")
	b.WriteString("Luyện tập 3 vòng: Nhân sự, Chuyên môn và Tình huống.\n")
	b.WriteString(gray("Mỗi vòng do một người phỏng vấn khác nhau phụ trách. Cuối buổi bạn nhận báo cáo chi tiết.") + "\n")
	return b.String()
}

func roundHeader(round model.Round, title string) string {
	return fmt.Sprintf("%s\n%s %s\n%s",
		cyan(separator),
		bold(fmt.Sprintf("Vòng %d/%d", round.Number(), len(model.Rounds))),
		bold(title),
		cyan(separator),
	)
}

func personaCard(p model.Persona) string {
	return fmt.Sprintf("  %s  %s\n  %s\n  %s",
		bold(p.Name),
		gray(p.Role),
		p.Personality,
		gray(strings.Join(p.Traits, " · ")),
	)
}

func questionBlock(snap usecase.SessionSnapshot) string {
	q := snap.CurrentQuestion()
	if q == nil {
		return ""
	}
	status := dto.StatusText(snap.Persona, snap.Status(), snap.Emotion, snap.Evaluation != nil)
	return fmt.Sprintf("\n%s %s\n%s\n%s",
		yellow(fmt.Sprintf("Câu %d/%d", snap.QuestionIndex+1, len(snap.Questions))),
		gray("["+string(q.Difficulty)+"]"),
		bold(q.Text),
		gray(status),
	)
}

func evaluationBlock(persona *model.Persona, eval *model.Evaluation) string {
	var b strings.Builder
	emoji := dto.EmotionEmoji(eval.NPCEmotion)
	fmt.Fprintf(&b, "\n%s %s\n", bold(fmt.Sprintf("Điểm: %s/10", formatScore(eval.Score))), emoji)
	if persona != nil && eval.NPCEmotion != "" {
		fmt.Fprintf(&b, "%s\n", gray(dto.StatusText(persona, usecase.StatusSpeaking, eval.NPCEmotion, true)))
	}
	fmt.Fprintf(&b, "%s\n", eval.Feedback)
	for _, s := range eval.Strengths {
		fmt.Fprintf(&b, "  %s %s\n", green("+"), s)
	}
	for _, w := range eval.Weaknesses {
		fmt.Fprintf(&b, "  %s %s\n", red("-"), w)
	}
	if eval.BetterAnswer != "" {
		fmt.Fprintf(&b, "%s\n%s\n", cyan("Gợi ý trả lời tốt hơn:"), eval.BetterAnswer)
	}
	return b.String()
}

func reportBlock(view dto.ReportView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n%s\n", cyan(separator), bold("Kết Quả Phỏng Vấn"))
	fmt.Fprintf(&b, "Ứng viên: %s | Vị trí: %s\n", view.Candidate.Name, view.Candidate.TargetRole)
	fmt.Fprintf(&b, "%s %s\n\n", bold("Điểm Tổng Quát:"), blue(formatScore(view.OverallScore)+"/10"))

	b.WriteString(bold("Điểm số theo vòng") + "\n")
	for _, r := range view.RoundScores {
		fmt.Fprintf(&b, "  %-12s %s %s\n", r.Label, bar(r.Score), formatScore(r.Score))
	}
	b.WriteString("\n" + bold("Kỹ năng") + "\n")
	for _, s := range view.Skills {
		fmt.Fprintf(&b, "  %-12s %s %s\n", s.Subject, bar(s.Score), formatScore(s.Score))
	}

	fmt.Fprintf(&b, "\n%s\n%s\n", bold("Nhận xét"), view.Summary)
	b.WriteString("\n" + bold("Kế hoạch cải thiện") + "\n")
	for i, step := range view.ImprovementPlan {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
	}

	verdict := yellow(view.VerdictText)
	if view.Verdict == dto.VerdictReady {
		verdict = green(view.VerdictText)
	}
	fmt.Fprintf(&b, "\n%s\n%s\n", verdict, cyan(separator))
	return b.String()
}

// bar draws a 0..10 score as a 20-cell bar.
func bar(score float64) string {
	cells := int(score * 2)
	if cells < 0 {
		cells = 0
	}
	if cells > 20 {
		cells = 20
	}
	return blue(strings.Repeat("█", cells)) + gray(strings.Repeat("░", 20-cells))
}

func formatScore(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.TrimSuffix(s, ".0")
}
