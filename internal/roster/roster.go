// Package roster maps each interview round to its fixed list of interviewer
// personas and display title.
package roster

import (
	_ "embed"
	"fmt"

	"github.com/fadilmartias/mock-interview/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed roster.yaml
var defaultRoster []byte

// Source is the random draw used for persona selection. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

type roundEntry struct {
	Round    model.Round     `yaml:"round"`
	Title    string          `yaml:"title"`
	Personas []model.Persona `yaml:"personas"`
}

type document struct {
	Rounds []roundEntry `yaml:"rounds"`
}

type Roster struct {
	rounds map[model.Round]roundEntry
	byID   map[string]model.Persona
}

// Default returns the roster embedded in the binary.
func Default() *Roster {
	r, err := Parse(defaultRoster)
	if err != nil {
		panic(fmt.Sprintf("embedded roster is invalid: %v", err))
	}
	return r
}

// Parse decodes a YAML roster. Every round needs a title and at least one persona,
// and persona ids must be unique across rounds.
func Parse(data []byte) (*Roster, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}

	r := &Roster{
		rounds: make(map[model.Round]roundEntry, len(doc.Rounds)),
		byID:   make(map[string]model.Persona),
	}
	for _, entry := range doc.Rounds {
		if !entry.Round.Valid() {
			return nil, fmt.Errorf("unknown round %q in roster", entry.Round)
		}
		if _, dup := r.rounds[entry.Round]; dup {
			return nil, fmt.Errorf("round %s listed twice", entry.Round)
		}
		if len(entry.Personas) == 0 {
			return nil, fmt.Errorf("round %s has no personas", entry.Round)
		}
		for _, p := range entry.Personas {
			if p.ID == "" {
				return nil, fmt.Errorf("round %s has a persona without id", entry.Round)
			}
			if _, dup := r.byID[p.ID]; dup {
				return nil, fmt.Errorf("persona id %q is not unique", p.ID)
			}
			r.byID[p.ID] = p
		}
		r.rounds[entry.Round] = entry
	}
	for _, round := range model.Rounds {
		if _, ok := r.rounds[round]; !ok {
			return nil, fmt.Errorf("roster is missing round %s", round)
		}
	}
	return r, nil
}

// Personas returns a copy of the round's roster in declaration order.
func (r *Roster) Personas(round model.Round) []model.Persona {
	entry := r.rounds[round]
	out := make([]model.Persona, len(entry.Personas))
	copy(out, entry.Personas)
	return out
}

func (r *Roster) Title(round model.Round) string {
	return r.rounds[round].Title
}

func (r *Roster) Persona(id string) (model.Persona, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// Pick draws one persona uniformly at random from the round's roster.
func (r *Roster) Pick(round model.Round, src Source) (model.Persona, error) {
	entry, ok := r.rounds[round]
	if !ok {
		return model.Persona{}, fmt.Errorf("no personas for round %s", round)
	}
	return entry.Personas[src.Intn(len(entry.Personas))], nil
}
