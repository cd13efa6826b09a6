package model

import "time"

// Credential is a stored generator API key, keyed by provider name.
type Credential struct {
	Provider  string    `gorm:"type:varchar(50);primaryKey" json:"provider"`
	Value     string    `gorm:"type:text" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Credential) TableName() string {
	return "credentials"
}
