package roster

import (
	"math/rand"
	"testing"

	"github.com/fadilmartias/mock-interview/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSource int

func (f fixedSource) Intn(n int) int {
	return int(f) % n
}

func TestDefault_HasEveryRound(t *testing.T) {
	r := Default()

	assert.Len(t, r.Personas(model.RoundHR), 2)
	assert.Len(t, r.Personas(model.RoundTechnical), 2)
	assert.Len(t, r.Personas(model.RoundSituation), 1)
	assert.Equal(t, "Vòng 1: Nhân sự & Văn hóa", r.Title(model.RoundHR))

	p, ok := r.Persona("sit_1")
	require.True(t, ok)
	assert.Equal(t, "Mr. Kevin Nguyen", p.Name)
	assert.Equal(t, []string{"Strategic", "Visionary", "Pragmatic"}, p.Traits)
}

func TestPick_UsesInjectedSource(t *testing.T) {
	r := Default()

	p, err := r.Pick(model.RoundHR, fixedSource(1))
	require.NoError(t, err)
	assert.Equal(t, "hr_2", p.ID)

	p, err = r.Pick(model.RoundSituation, fixedSource(5))
	require.NoError(t, err)
	assert.Equal(t, "sit_1", p.ID)
}

func TestPick_SeededSourceIsReproducible(t *testing.T) {
	r := Default()
	draw := func() []string {
		src := rand.New(rand.NewSource(42))
		ids := make([]string, 0, 10)
		for i := 0; i < 10; i++ {
			p, err := r.Pick(model.RoundTechnical, src)
			require.NoError(t, err)
			ids = append(ids, p.ID)
		}
		return ids
	}
	assert.Equal(t, draw(), draw())
}

func TestPersonas_ReturnsCopy(t *testing.T) {
	r := Default()
	list := r.Personas(model.RoundHR)
	list[0].Name = "changed"
	assert.Equal(t, "Ms. Lan Chi", r.Personas(model.RoundHR)[0].Name)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing round", `
rounds:
  - round: HR
    title: a
    personas: [{id: a}]
  - round: TECHNICAL
    title: b
    personas: [{id: b}]
`},
		{"empty roster for round", `
rounds:
  - round: HR
    title: a
    personas: []
`},
		{"duplicate persona id", `
rounds:
  - round: HR
    title: a
    personas: [{id: x}]
  - round: TECHNICAL
    title: b
    personas: [{id: x}]
  - round: SITUATION
    title: c
    personas: [{id: y}]
`},
		{"unknown round", `
rounds:
  - round: FINAL
    title: a
    personas: [{id: x}]
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}
