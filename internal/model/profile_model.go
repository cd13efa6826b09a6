package model

import (
	"strings"

	"github.com/fadilmartias/mock-interview/internal/apperror"
)

type ExperienceLevel string

const (
	LevelIntern  ExperienceLevel = "Intern"
	LevelFresher ExperienceLevel = "Fresher"
	LevelJunior  ExperienceLevel = "Junior"
)

var ExperienceLevels = []ExperienceLevel{LevelIntern, LevelFresher, LevelJunior}

func (l ExperienceLevel) Valid() bool {
	switch l {
	case LevelIntern, LevelFresher, LevelJunior:
		return true
	}
	return false
}

const (
	MinConfidence = 1
	MaxConfidence = 10
)

// Profile is created once at setup and never mutated afterwards.
type Profile struct {
	Name            string          `json:"name"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	TargetRole      string          `json:"target_role"`
	Confidence      int             `json:"confidence"`
}

// Validate rejects empty fields and out-of-range values before a session is created.
func (p Profile) Validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(p.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(p.TargetRole) == "" {
		fields["target_role"] = "target role is required"
	}
	if !p.ExperienceLevel.Valid() {
		fields["experience_level"] = "must be one of Intern, Fresher, Junior"
	}
	if p.Confidence < MinConfidence || p.Confidence > MaxConfidence {
		fields["confidence"] = "must be between 1 and 10"
	}
	if len(fields) > 0 {
		return apperror.NewValidationError("invalid profile", fields)
	}
	return nil
}
