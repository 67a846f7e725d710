package crypto

import "strings"

const (
	UppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	LowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	NumberChars    = "0123456789"
	SymbolChars    = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	// SimilarChars are removed when ExcludeSimilar is set.
	SimilarChars = "il1Lo0O"
	// AmbiguousChars are removed when ExcludeAmbiguous is set.
	AmbiguousChars = "{}[]()|`~;:,.<>"
)

// ClassSet holds the alphabet of each character class. Generation always
// visits the classes in field order.
type ClassSet struct {
	Uppercase string
	Lowercase string
	Numbers   string
	Symbols   string
}

// DefaultClasses returns the built-in alphabets.
func DefaultClasses() ClassSet {
	return ClassSet{
		Uppercase: UppercaseChars,
		Lowercase: LowercaseChars,
		Numbers:   NumberChars,
		Symbols:   SymbolChars,
	}
}

// PasswordConfig describes a single generation request.
type PasswordConfig struct {
	Length           int
	IncludeUppercase bool
	IncludeLowercase bool
	IncludeNumbers   bool
	IncludeSymbols   bool
	ExcludeSimilar   bool
	ExcludeAmbiguous bool

	// EntropyLevel is carried for callers (0-100). Generation ignores it.
	EntropyLevel int
}

// DefaultConfig returns 16 characters with every class enabled and no exclusions.
func DefaultConfig() PasswordConfig {
	return PasswordConfig{
		Length:           16,
		IncludeUppercase: true,
		IncludeLowercase: true,
		IncludeNumbers:   true,
		IncludeSymbols:   true,
		EntropyLevel:     50,
	}
}

// Validate checks the length and class selection. It does not check whether
// the filtered pool is empty; that depends on the alphabets in use.
func (c PasswordConfig) Validate() error {
	if c.Length < 1 {
		return ErrInvalidLength
	}
	if !c.IncludeUppercase && !c.IncludeLowercase && !c.IncludeNumbers && !c.IncludeSymbols {
		return ErrNoClassSelected
	}
	return nil
}

// FilterAlphabet removes the characters excluded by cfg from alphabet,
// preserving the order of the rest.
func FilterAlphabet(alphabet string, cfg PasswordConfig) string {
	if !cfg.ExcludeSimilar && !cfg.ExcludeAmbiguous {
		return alphabet
	}

	var b strings.Builder
	b.Grow(len(alphabet))
	for _, ch := range alphabet {
		if cfg.ExcludeSimilar && strings.ContainsRune(SimilarChars, ch) {
			continue
		}
		if cfg.ExcludeAmbiguous && strings.ContainsRune(AmbiguousChars, ch) {
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

// filtered returns the filtered alphabet of every enabled class in
// generation order. Entries may be empty.
func (s ClassSet) filtered(cfg PasswordConfig) [][]rune {
	classes := []struct {
		on       bool
		alphabet string
	}{
		{cfg.IncludeUppercase, s.Uppercase},
		{cfg.IncludeLowercase, s.Lowercase},
		{cfg.IncludeNumbers, s.Numbers},
		{cfg.IncludeSymbols, s.Symbols},
	}

	var out [][]rune
	for _, c := range classes {
		if !c.on {
			continue
		}
		out = append(out, []rune(FilterAlphabet(c.alphabet, cfg)))
	}
	return out
}
