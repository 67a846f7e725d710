package model

import "github.com/vaultpass/passgen-go/internal/crypto"

// GenerateRequest represents a password generation request.
// Pointer fields allow distinguishing between missing (nil -> default) and an explicit value.
type GenerateRequest struct {
	Length           *int  `json:"length"`
	Uppercase        *bool `json:"uppercase"`
	Lowercase        *bool `json:"lowercase"`
	Numbers          *bool `json:"numbers"`
	Symbols          *bool `json:"symbols"`
	ExcludeSimilar   *bool `json:"exclude_similar"`
	ExcludeAmbiguous *bool `json:"exclude_ambiguous"`
	EntropyLevel     *int  `json:"entropy_level"`
	Count            *int  `json:"count"`
	Hash             bool  `json:"hash"`
}

// GeneratedPassword is one password with its strength figures.
type GeneratedPassword struct {
	Password    string          `json:"password"`
	Length      int             `json:"length"`
	Score       int             `json:"score"`
	Strength    crypto.Strength `json:"strength"`
	EntropyBits float64         `json:"entropy_bits"`
	Hash        string          `json:"hash,omitempty"`
}

// GenerateResponse represents a password generation response. Password and
// Length mirror the first entry of Passwords.
type GenerateResponse struct {
	Password     string              `json:"password"`
	Length       int                 `json:"length"`
	Passwords    []GeneratedPassword `json:"passwords"`
	EntropyLevel int                 `json:"entropy_level"`
}
