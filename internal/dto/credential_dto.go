package dto

type CredentialRequest struct {
	APIKey string `json:"api_key"`
}

type CredentialStatus struct {
	Provider   string `json:"provider"`
	Configured bool   `json:"configured"`
	Source     string `json:"source,omitempty"`
}

type RosterRound struct {
	Round    string        `json:"round"`
	Number   int           `json:"number"`
	Title    string        `json:"title"`
	Personas []PersonaView `json:"personas"`
}
