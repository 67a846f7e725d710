package service

import (
	"errors"
	"unicode/utf8"

	"github.com/nbutton23/zxcvbn-go"
	passwordvalidator "github.com/wagslane/go-password-validator"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
)

// MaxAnalyzeLength caps the input to zxcvbn, whose matching cost grows quickly
// with length.
const MaxAnalyzeLength = 256

var (
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordTooLong  = errors.New("password is too long to analyze")
)

// StrengthService analyzes existing passwords.
type StrengthService struct {
	minEntropyBits float64
}

// NewStrengthService creates a StrengthService whose policy requires at least
// minEntropyBits as measured by go-password-validator.
func NewStrengthService(minEntropyBits float64) *StrengthService {
	return &StrengthService{minEntropyBits: minEntropyBits}
}

// Analyze scores req.Password with the heuristic estimator, zxcvbn and the
// entropy policy.
func (s *StrengthService) Analyze(req model.StrengthRequest) (model.StrengthResponse, error) {
	if req.Password == "" {
		return model.StrengthResponse{}, ErrPasswordRequired
	}
	if utf8.RuneCountInString(req.Password) > MaxAnalyzeLength {
		return model.StrengthResponse{}, ErrPasswordTooLong
	}

	score, strength := crypto.Score(req.Password)
	match := zxcvbn.PasswordStrength(req.Password, nil)

	return model.StrengthResponse{
		Score:            score,
		Strength:         strength,
		EntropyBits:      crypto.EntropyBits(req.Password),
		ZxcvbnScore:      match.Score,
		CrackTimeDisplay: match.CrackTimeDisplay,
		PolicyEntropy:    passwordvalidator.GetEntropy(req.Password),
		MinEntropyBits:   s.minEntropyBits,
		MeetsPolicy:      passwordvalidator.Validate(req.Password, s.minEntropyBits) == nil,
	}, nil
}
