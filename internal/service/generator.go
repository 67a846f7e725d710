package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
)

const (
	DefaultLength       = 16
	DefaultCount        = 1
	DefaultEntropyLevel = 50

	// MaxHashCount bounds batches that ask for Argon2id hashes.
	MaxHashCount = 10
)

var (
	ErrLengthTooLong     = errors.New("password length exceeds the maximum")
	ErrCountOutOfRange   = errors.New("count is out of range")
	ErrEntropyLevelRange = errors.New("entropy_level must be between 0 and 100")
	ErrHashBatchTooLarge = errors.New("too many passwords to hash in one request")
)

// Limits bounds a single generate request.
type Limits struct {
	MaxLength int
	MaxCount  int
}

// DefaultLimits allows passwords of up to 128 characters in batches of up
// to 100.
func DefaultLimits() Limits {
	return Limits{MaxLength: 128, MaxCount: 100}
}

// EventRecorder receives one event per successful generate request.
type EventRecorder interface {
	Record(ctx context.Context, event model.GenerationEvent) error
}

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	gen      *crypto.Generator
	hasher   *crypto.Hasher
	limits   Limits
	recorder EventRecorder
}

// NewGeneratorService creates a new GeneratorService. A nil hasher falls back
// to default Argon2id parameters and a nil recorder disables auditing.
func NewGeneratorService(gen *crypto.Generator, hasher *crypto.Hasher, limits Limits, recorder EventRecorder) *GeneratorService {
	if gen == nil {
		gen = crypto.DefaultGenerator()
	}
	if hasher == nil {
		hasher = crypto.NewHasher(crypto.DefaultHashParams(), nil)
	}
	return &GeneratorService{
		gen:      gen,
		hasher:   hasher,
		limits:   limits,
		recorder: recorder,
	}
}

// Generate produces one or more passwords based on the given request.
func (s *GeneratorService) Generate(ctx context.Context, req model.GenerateRequest) (model.GenerateResponse, error) {
	cfg := ConfigFromRequest(req)

	count := intOrDefault(req.Count, DefaultCount)

	if s.limits.MaxLength > 0 && cfg.Length > s.limits.MaxLength {
		return model.GenerateResponse{}, fmt.Errorf("%w (%d)", ErrLengthTooLong, s.limits.MaxLength)
	}
	if count < 1 || (s.limits.MaxCount > 0 && count > s.limits.MaxCount) {
		return model.GenerateResponse{}, fmt.Errorf("%w (1-%d)", ErrCountOutOfRange, s.limits.MaxCount)
	}
	if req.Hash && count > MaxHashCount {
		return model.GenerateResponse{}, fmt.Errorf("%w (max %d)", ErrHashBatchTooLarge, MaxHashCount)
	}
	if cfg.EntropyLevel < 0 || cfg.EntropyLevel > 100 {
		return model.GenerateResponse{}, ErrEntropyLevelRange
	}

	passwords := make([]model.GeneratedPassword, 0, count)
	weakest := 100
	for i := 0; i < count; i++ {
		password, err := s.gen.Generate(cfg)
		if err != nil {
			return model.GenerateResponse{}, err
		}

		score, strength := crypto.Score(password)
		weakest = min(weakest, score)

		gp := model.GeneratedPassword{
			Password:    password,
			Length:      utf8.RuneCountInString(password),
			Score:       score,
			Strength:    strength,
			EntropyBits: crypto.EntropyBits(password),
		}

		if req.Hash {
			gp.Hash, err = s.hasher.Hash(password)
			if err != nil {
				return model.GenerateResponse{}, err
			}
		}

		passwords = append(passwords, gp)
	}

	s.record(ctx, model.GenerationEvent{
		Length:           cfg.Length,
		Uppercase:        cfg.IncludeUppercase,
		Lowercase:        cfg.IncludeLowercase,
		Numbers:          cfg.IncludeNumbers,
		Symbols:          cfg.IncludeSymbols,
		ExcludeSimilar:   cfg.ExcludeSimilar,
		ExcludeAmbiguous: cfg.ExcludeAmbiguous,
		EntropyLevel:     cfg.EntropyLevel,
		Count:            count,
		Score:            weakest,
		Strength:         crypto.StrengthFor(weakest).String(),
		Hashed:           req.Hash,
	})

	return model.GenerateResponse{
		Password:     passwords[0].Password,
		Length:       passwords[0].Length,
		Passwords:    passwords,
		EntropyLevel: cfg.EntropyLevel,
	}, nil
}

func (s *GeneratorService) record(ctx context.Context, event model.GenerationEvent) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(ctx, event); err != nil {
		slog.Warn("recording generation event failed", "error", err)
	}
}

// ConfigFromRequest applies request defaults: every class on, no exclusions,
// length 16 and entropy level 50. Only absent fields are defaulted; an
// explicit zero length is passed through and rejected by the generator.
func ConfigFromRequest(req model.GenerateRequest) crypto.PasswordConfig {
	cfg := crypto.PasswordConfig{
		Length:           intOrDefault(req.Length, DefaultLength),
		IncludeUppercase: boolOrDefault(req.Uppercase, true),
		IncludeLowercase: boolOrDefault(req.Lowercase, true),
		IncludeNumbers:   boolOrDefault(req.Numbers, true),
		IncludeSymbols:   boolOrDefault(req.Symbols, true),
		ExcludeSimilar:   boolOrDefault(req.ExcludeSimilar, false),
		ExcludeAmbiguous: boolOrDefault(req.ExcludeAmbiguous, false),
		EntropyLevel:     DefaultEntropyLevel,
	}

	if req.EntropyLevel != nil {
		cfg.EntropyLevel = *req.EntropyLevel
	}

	return cfg
}

// IsValidationError reports whether err was caused by the request rather
// than by the server.
func IsValidationError(err error) bool {
	return crypto.IsConfigError(err) ||
		errors.Is(err, ErrLengthTooLong) ||
		errors.Is(err, ErrCountOutOfRange) ||
		errors.Is(err, ErrEntropyLevelRange) ||
		errors.Is(err, ErrHashBatchTooLarge) ||
		errors.Is(err, ErrPasswordRequired) ||
		errors.Is(err, ErrPasswordTooLong)
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}

func intOrDefault(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}
