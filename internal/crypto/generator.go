package crypto

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

var (
	ErrInvalidLength   = errors.New("password length must be at least 1")
	ErrNoClassSelected = errors.New("at least one character type must be selected")
	ErrEmptyPool       = errors.New("no characters left to choose from after exclusions")
)

// IsConfigError reports whether err is one of the configuration errors
// returned by Generate.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidLength) ||
		errors.Is(err, ErrNoClassSelected) ||
		errors.Is(err, ErrEmptyPool)
}

// Generator builds passwords from a PasswordConfig. All randomness is read
// from the reader it was constructed with.
type Generator struct {
	rand    io.Reader
	classes ClassSet
}

// NewGenerator returns a Generator over the built-in alphabets. A nil reader
// selects crypto/rand.Reader.
func NewGenerator(r io.Reader) *Generator {
	return NewGeneratorWithClasses(r, DefaultClasses())
}

// NewGeneratorWithClasses returns a Generator over custom alphabets.
func NewGeneratorWithClasses(r io.Reader, classes ClassSet) *Generator {
	if r == nil {
		r = rand.Reader
	}
	return &Generator{rand: r, classes: classes}
}

// DefaultGenerator returns a Generator backed by crypto/rand.
func DefaultGenerator() *Generator {
	return NewGenerator(rand.Reader)
}

// Pool returns the combined filtered pool for cfg and the number of classes
// that will contribute a guaranteed character.
func (g *Generator) Pool(cfg PasswordConfig) (string, int) {
	var pool []rune
	guaranteed := 0
	for _, charset := range g.classes.filtered(cfg) {
		pool = append(pool, charset...)
		if len(charset) > 0 {
			guaranteed++
		}
	}
	return string(pool), guaranteed
}

// Generate creates a random password for cfg.
//
// Every enabled class whose filtered alphabet is non-empty contributes one
// character. A class filtered down to nothing is skipped. When the length is
// smaller than the number of guaranteed characters the result is longer than
// cfg.Length; nothing is truncated.
func (g *Generator) Generate(cfg PasswordConfig) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	var pool []rune
	result := make([]rune, 0, cfg.Length)

	for _, charset := range g.classes.filtered(cfg) {
		pool = append(pool, charset...)
		if len(charset) == 0 {
			continue
		}
		ch, err := g.randRune(charset)
		if err != nil {
			return "", err
		}
		result = append(result, ch)
	}

	if len(pool) == 0 {
		return "", ErrEmptyPool
	}

	// Fill the remaining positions from the full pool.
	for len(result) < cfg.Length {
		ch, err := g.randRune(pool)
		if err != nil {
			return "", err
		}
		result = append(result, ch)
	}

	if err := g.shuffle(result); err != nil {
		return "", err
	}

	return string(result), nil
}

func (g *Generator) randRune(charset []rune) (rune, error) {
	i, err := g.randIndex(len(charset))
	if err != nil {
		return 0, err
	}
	return charset[i], nil
}

// shuffle performs a Fisher-Yates shuffle.
func (g *Generator) shuffle(data []rune) error {
	for i := len(data) - 1; i > 0; i-- {
		j, err := g.randIndex(i + 1)
		if err != nil {
			return err
		}
		data[i], data[j] = data[j], data[i]
	}
	return nil
}

// randIndex returns a uniform integer in [0, n). Draws that would bias the
// modulo are rejected and redrawn.
func (g *Generator) randIndex(n int) (int, error) {
	bound := uint64(n)
	// 2^64 mod bound
	excess := (math.MaxUint64%bound + 1) % bound

	var buf [8]byte
	for {
		if _, err := io.ReadFull(g.rand, buf[:]); err != nil {
			return 0, fmt.Errorf("reading random source: %w", err)
		}
		v := binary.BigEndian.Uint64(buf[:])
		if v <= math.MaxUint64-excess {
			return int(v % bound), nil
		}
	}
}
