package service

import (
	"context"
	"errors"
	mrand "math/rand/v2"
	"strings"
	"testing"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(n int) *int { return &n }

type recorderFunc func(ctx context.Context, event model.GenerationEvent) error

func (f recorderFunc) Record(ctx context.Context, event model.GenerationEvent) error {
	return f(ctx, event)
}

func newTestGeneratorService(recorder EventRecorder) *GeneratorService {
	hasher := crypto.NewHasher(crypto.HashParams{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}, nil)
	return NewGeneratorService(crypto.DefaultGenerator(), hasher, DefaultLimits(), recorder)
}

func TestGenerate_Defaults(t *testing.T) {
	svc := newTestGeneratorService(nil)
	resp, err := svc.Generate(context.Background(), model.GenerateRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Length != 16 {
		t.Errorf("expected length 16, got %d", resp.Length)
	}
	if len(resp.Password) != 16 {
		t.Errorf("expected password length 16, got %d", len(resp.Password))
	}
	if len(resp.Passwords) != 1 || resp.Passwords[0].Password != resp.Password {
		t.Errorf("expected a single entry mirroring the top-level password, got %+v", resp.Passwords)
	}
	if resp.EntropyLevel != DefaultEntropyLevel {
		t.Errorf("expected entropy level %d, got %d", DefaultEntropyLevel, resp.EntropyLevel)
	}
	if resp.Passwords[0].Hash != "" {
		t.Error("expected no hash unless requested")
	}
}

func TestGenerate_StrengthAttached(t *testing.T) {
	svc := newTestGeneratorService(nil)
	resp, err := svc.Generate(context.Background(), model.GenerateRequest{Length: intPtr(24)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := resp.Passwords[0]
	wantScore, wantStrength := crypto.Score(got.Password)
	if got.Score != wantScore || got.Strength != wantStrength {
		t.Errorf("expected score %d/%s, got %d/%s", wantScore, wantStrength, got.Score, got.Strength)
	}
	if got.EntropyBits != crypto.EntropyBits(got.Password) {
		t.Errorf("expected entropy %v, got %v", crypto.EntropyBits(got.Password), got.EntropyBits)
	}
}

func TestGenerate_CustomOptions(t *testing.T) {
	svc := newTestGeneratorService(nil)
	resp, err := svc.Generate(context.Background(), model.GenerateRequest{
		Length:    intPtr(32),
		Uppercase: boolPtr(true),
		Lowercase: boolPtr(true),
		Numbers:   boolPtr(false),
		Symbols:   boolPtr(false),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Length != 32 {
		t.Errorf("expected length 32, got %d", resp.Length)
	}
	for _, c := range resp.Password {
		if !((c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')) {
			t.Errorf("unexpected character %q in password with only uppercase+lowercase", c)
		}
	}
}

func TestGenerate_Exclusions(t *testing.T) {
	svc := newTestGeneratorService(nil)
	resp, err := svc.Generate(context.Background(), model.GenerateRequest{
		Length:           intPtr(64),
		ExcludeSimilar:   boolPtr(true),
		ExcludeAmbiguous: boolPtr(true),
		Count:            intPtr(10),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range resp.Passwords {
		if strings.ContainsAny(p.Password, crypto.SimilarChars+crypto.AmbiguousChars) {
			t.Errorf("password %q contains an excluded character", p.Password)
		}
	}
}

func TestGenerate_Count(t *testing.T) {
	svc := newTestGeneratorService(nil)
	resp, err := svc.Generate(context.Background(), model.GenerateRequest{Count: intPtr(5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Passwords) != 5 {
		t.Fatalf("expected 5 passwords, got %d", len(resp.Passwords))
	}

	seen := make(map[string]bool)
	for _, p := range resp.Passwords {
		if seen[p.Password] {
			t.Errorf("duplicate password in batch: %q", p.Password)
		}
		seen[p.Password] = true
	}
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     model.GenerateRequest
		wantErr error
	}{
		{"length too long", model.GenerateRequest{Length: intPtr(200)}, ErrLengthTooLong},
		{"negative length", model.GenerateRequest{Length: intPtr(-1)}, crypto.ErrInvalidLength},
		{"negative count", model.GenerateRequest{Count: intPtr(-1)}, ErrCountOutOfRange},
		{"count too large", model.GenerateRequest{Count: intPtr(101)}, ErrCountOutOfRange},
		{"entropy level below range", model.GenerateRequest{EntropyLevel: intPtr(-1)}, ErrEntropyLevelRange},
		{"entropy level above range", model.GenerateRequest{EntropyLevel: intPtr(101)}, ErrEntropyLevelRange},
		{
			name: "no character types",
			req: model.GenerateRequest{
				Length:    intPtr(16),
				Uppercase: boolPtr(false),
				Lowercase: boolPtr(false),
				Numbers:   boolPtr(false),
				Symbols:   boolPtr(false),
			},
			wantErr: crypto.ErrNoClassSelected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestGeneratorService(nil).Generate(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if !IsValidationError(err) {
				t.Errorf("expected %v to be a validation error", err)
			}
		})
	}
}

func TestGenerate_ExplicitZeroIsNotDefaulted(t *testing.T) {
	tests := []struct {
		name    string
		req     model.GenerateRequest
		wantErr error
	}{
		{"zero length", model.GenerateRequest{Length: intPtr(0)}, crypto.ErrInvalidLength},
		{"zero count", model.GenerateRequest{Count: intPtr(0)}, ErrCountOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestGeneratorService(nil).Generate(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestGenerate_HashBatchLimit(t *testing.T) {
	svc := newTestGeneratorService(nil)

	_, err := svc.Generate(context.Background(), model.GenerateRequest{Hash: true, Count: intPtr(MaxHashCount + 1)})
	if !errors.Is(err, ErrHashBatchTooLarge) {
		t.Fatalf("expected %v, got %v", ErrHashBatchTooLarge, err)
	}
	if !IsValidationError(err) {
		t.Errorf("expected %v to be a validation error", err)
	}

	resp, err := svc.Generate(context.Background(), model.GenerateRequest{Hash: true, Count: intPtr(MaxHashCount)})
	if err != nil {
		t.Fatalf("unexpected error at the hash batch limit: %v", err)
	}
	if len(resp.Passwords) != MaxHashCount {
		t.Errorf("expected %d passwords, got %d", MaxHashCount, len(resp.Passwords))
	}

	if _, err := svc.Generate(context.Background(), model.GenerateRequest{Count: intPtr(MaxHashCount + 1)}); err != nil {
		t.Errorf("expected unhashed batches above the hash limit to succeed, got %v", err)
	}
}

func TestGenerate_EntropyLevelBounds(t *testing.T) {
	svc := newTestGeneratorService(nil)
	for _, level := range []int{0, 100} {
		resp, err := svc.Generate(context.Background(), model.GenerateRequest{EntropyLevel: intPtr(level)})
		if err != nil {
			t.Fatalf("entropy level %d: unexpected error: %v", level, err)
		}
		if resp.EntropyLevel != level {
			t.Errorf("expected entropy level %d echoed, got %d", level, resp.EntropyLevel)
		}
	}
}

func TestGenerate_Hash(t *testing.T) {
	hasher := crypto.NewHasher(crypto.HashParams{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}, nil)
	svc := NewGeneratorService(nil, hasher, DefaultLimits(), nil)

	resp, err := svc.Generate(context.Background(), model.GenerateRequest{Hash: true, Count: intPtr(2)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range resp.Passwords {
		ok, err := hasher.Verify(p.Password, p.Hash)
		if err != nil {
			t.Fatalf("verify failed: %v", err)
		}
		if !ok {
			t.Errorf("hash %q does not match password %q", p.Hash, p.Password)
		}
	}
}

func TestGenerate_DeterministicWithSeededGenerator(t *testing.T) {
	newSvc := func() *GeneratorService {
		gen := crypto.NewGenerator(mrand.NewChaCha8([32]byte{1, 2, 3}))
		return NewGeneratorService(gen, nil, DefaultLimits(), nil)
	}

	a, err := newSvc().Generate(context.Background(), model.GenerateRequest{Count: intPtr(3)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := newSvc().Generate(context.Background(), model.GenerateRequest{Count: intPtr(3)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range a.Passwords {
		if a.Passwords[i].Password != b.Passwords[i].Password {
			t.Errorf("entry %d differs: %q vs %q", i, a.Passwords[i].Password, b.Passwords[i].Password)
		}
	}
}

func TestGenerate_RecordsEvent(t *testing.T) {
	var got []model.GenerationEvent
	svc := newTestGeneratorService(recorderFunc(func(_ context.Context, e model.GenerationEvent) error {
		got = append(got, e)
		return nil
	}))

	resp, err := svc.Generate(context.Background(), model.GenerateRequest{
		Length:         intPtr(20),
		Symbols:        boolPtr(false),
		ExcludeSimilar: boolPtr(true),
		Count:          intPtr(3),
		Hash:           true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}

	e := got[0]
	if e.Length != 20 || e.Count != 3 || !e.Hashed {
		t.Errorf("unexpected event: %+v", e)
	}
	if e.Symbols || !e.Uppercase || !e.ExcludeSimilar || e.ExcludeAmbiguous {
		t.Errorf("event flags do not match the request: %+v", e)
	}

	weakest := 100
	for _, p := range resp.Passwords {
		weakest = min(weakest, p.Score)
	}
	if e.Score != weakest {
		t.Errorf("expected event score %d (weakest), got %d", weakest, e.Score)
	}
}

func TestGenerate_RecorderFailureIsIgnored(t *testing.T) {
	svc := newTestGeneratorService(recorderFunc(func(context.Context, model.GenerationEvent) error {
		return errors.New("database unavailable")
	}))

	if _, err := svc.Generate(context.Background(), model.GenerateRequest{}); err != nil {
		t.Fatalf("expected recorder failure to be ignored, got %v", err)
	}
}

func TestGenerate_NoEventOnError(t *testing.T) {
	called := false
	svc := newTestGeneratorService(recorderFunc(func(context.Context, model.GenerationEvent) error {
		called = true
		return nil
	}))

	if _, err := svc.Generate(context.Background(), model.GenerateRequest{Length: intPtr(-3)}); err == nil {
		t.Fatal("expected error for negative length")
	}
	if called {
		t.Error("expected no event for a failed request")
	}
}

func TestIsValidationError(t *testing.T) {
	if IsValidationError(errors.New("reading random source: boom")) {
		t.Error("expected arbitrary errors not to be validation errors")
	}
	if !IsValidationError(crypto.ErrEmptyPool) {
		t.Error("expected ErrEmptyPool to be a validation error")
	}
}
