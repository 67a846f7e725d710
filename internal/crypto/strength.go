package crypto

import (
	"fmt"
	"math"
	"unicode"
)

// Strength is a coarse label for a heuristic score.
type Strength int

const (
	Weak Strength = iota
	Fair
	Good
	Strong
)

var strengthNames = map[Strength]string{
	Weak:   "Weak",
	Fair:   "Fair",
	Good:   "Good",
	Strong: "Strong",
}

func (s Strength) String() string {
	if name, ok := strengthNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strength(%d)", int(s))
}

func (s Strength) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Strength) UnmarshalText(text []byte) error {
	parsed, err := ParseStrength(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStrength converts a label produced by String back into a Strength.
func ParseStrength(label string) (Strength, error) {
	for s, name := range strengthNames {
		if name == label {
			return s, nil
		}
	}
	return Weak, fmt.Errorf("unknown strength label %q", label)
}

// StrengthFor maps a score to its label. Each bracket includes its lower bound.
func StrengthFor(score int) Strength {
	switch {
	case score < 25:
		return Weak
	case score < 50:
		return Fair
	case score < 75:
		return Good
	default:
		return Strong
	}
}

// Score rates password on a 0-100 scale: up to 40 points for length, 10 for
// each character class present and up to 20 for the share of unique
// characters.
func Score(password string) (int, Strength) {
	runes := []rune(password)
	length := len(runes)
	if length == 0 {
		return 0, Weak
	}

	score := min(length*2, 40)

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	unique := make(map[rune]struct{}, length)
	for _, r := range runes {
		unique[r] = struct{}{}
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
		if !isASCIIAlnum(r) {
			hasSpecial = true
		}
	}

	for _, present := range []bool{hasLower, hasUpper, hasDigit, hasSpecial} {
		if present {
			score += 10
		}
	}

	score += min(len(unique)*20/length, 20)

	score = max(0, min(score, 100))
	return score, StrengthFor(score)
}

// EntropyBits returns log2(distinct^length), where distinct is the number of
// different characters in password. It is computed as length*log2(distinct)
// so long inputs do not overflow.
func EntropyBits(password string) float64 {
	runes := []rune(password)
	if len(runes) == 0 {
		return 0
	}

	distinct := make(map[rune]struct{}, len(runes))
	for _, r := range runes {
		distinct[r] = struct{}{}
	}

	return float64(len(runes)) * math.Log2(float64(len(distinct)))
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
