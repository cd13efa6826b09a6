package model

// Persona is a simulated interviewer selected from the roster for one round.
type Persona struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Role        string   `yaml:"role" json:"role"`
	Avatar      string   `yaml:"avatar" json:"avatar"`
	Personality string   `yaml:"personality" json:"personality"`
	Traits      []string `yaml:"traits" json:"traits"`
}

// PersonaContext is the part of a persona passed to answer evaluation.
type PersonaContext struct {
	Name        string
	Personality string
}

func (p Persona) Context() PersonaContext {
	return PersonaContext{Name: p.Name, Personality: p.Personality}
}
