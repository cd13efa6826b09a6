package main

import (
	"strings"
	"testing"

	"github.com/fadilmartias/mock-interview/internal/dto"
	"github.com/fadilmartias/mock-interview/internal/model"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "8", formatScore(8))
	assert.Equal(t, "7.5", formatScore(7.5))
	assert.Equal(t, "6.3", formatScore(6.333))
}

func TestBar(t *testing.T) {
	color.NoColor = true
	assert.Equal(t, 20, len([]rune(bar(7))))
	assert.Equal(t, strings.Repeat("░", 20), bar(-1))
	assert.Equal(t, strings.Repeat("█", 20), bar(12))
}

func TestReportBlock(t *testing.T) {
	color.NoColor = true
	report := &model.Report{
		OverallScore:      6,
		RoundScores:       map[model.Round]float64{model.RoundHR: 6, model.RoundTechnical: 5, model.RoundSituation: 7},
		SoftSkillsAverage: 6,
		TechSkillsAverage: 5,
		Summary:           "Cần cố gắng",
		ImprovementPlan:   []string{"Ôn luật thuế GTGT"},
	}
	out := reportBlock(dto.NewReportView("s1", model.Profile{Name: "An", TargetRole: "Kế toán thuế", Confidence: 6}, report))

	assert.Contains(t, out, "Ứng viên: An | Vị trí: Kế toán thuế")
	assert.Contains(t, out, "1. Ôn luật thuế GTGT")
	assert.Contains(t, out, "Cần ôn tập thêm")
}
