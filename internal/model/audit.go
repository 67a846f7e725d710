package model

import "time"

// GenerationEvent records the settings and outcome of a generate request.
// It never carries a password or its hash.
type GenerationEvent struct {
	ID               string    `json:"id"`
	Length           int       `json:"length"`
	Uppercase        bool      `json:"uppercase"`
	Lowercase        bool      `json:"lowercase"`
	Numbers          bool      `json:"numbers"`
	Symbols          bool      `json:"symbols"`
	ExcludeSimilar   bool      `json:"exclude_similar"`
	ExcludeAmbiguous bool      `json:"exclude_ambiguous"`
	EntropyLevel     int       `json:"entropy_level"`
	Count            int       `json:"count"`
	Score            int       `json:"score"`
	Strength         string    `json:"strength"`
	Hashed           bool      `json:"hashed"`
	CreatedAt        time.Time `json:"created_at"`
}

// AuditResponse lists recent generation events.
type AuditResponse struct {
	Events  []GenerationEvent `json:"events"`
	Last24h int               `json:"last_24h"`
	Limit   int               `json:"limit"`
}
