package model

import "github.com/vaultpass/passgen-go/internal/crypto"

// StrengthRequest asks for an analysis of an existing password.
type StrengthRequest struct {
	Password string `json:"password"`
}

// StrengthResponse combines the heuristic score with a zxcvbn estimate and
// the configured entropy policy.
type StrengthResponse struct {
	Score            int             `json:"score"`
	Strength         crypto.Strength `json:"strength"`
	EntropyBits      float64         `json:"entropy_bits"`
	ZxcvbnScore      int             `json:"zxcvbn_score"`
	CrackTimeDisplay string          `json:"crack_time_display"`
	PolicyEntropy    float64         `json:"policy_entropy_bits"`
	MinEntropyBits   float64         `json:"min_entropy_bits"`
	MeetsPolicy      bool            `json:"meets_policy"`
}
