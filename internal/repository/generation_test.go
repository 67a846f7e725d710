package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/vaultpass/passgen-go/internal/model"
)

func TestNewGenerationRepository(t *testing.T) {
	repo := NewGenerationRepository(nil)
	if repo == nil {
		t.Fatal("expected non-nil GenerationRepository")
	}
	if repo.db != nil {
		t.Fatal("expected nil db when constructed with nil")
	}
}

func TestGenerationRepositoryWithoutDatabase(t *testing.T) {
	repo := NewGenerationRepository(nil)
	ctx := context.Background()

	if err := repo.Migrate(ctx); !errors.Is(err, ErrNoDatabase) {
		t.Errorf("Migrate() error = %v, want %v", err, ErrNoDatabase)
	}
	if err := repo.Insert(ctx, &model.GenerationEvent{ID: "x"}); !errors.Is(err, ErrNoDatabase) {
		t.Errorf("Insert() error = %v, want %v", err, ErrNoDatabase)
	}
	if _, err := repo.ListRecent(ctx, 10); !errors.Is(err, ErrNoDatabase) {
		t.Errorf("ListRecent() error = %v, want %v", err, ErrNoDatabase)
	}
	if _, err := repo.CountSince(ctx, time.Now()); !errors.Is(err, ErrNoDatabase) {
		t.Errorf("CountSince() error = %v, want %v", err, ErrNoDatabase)
	}
}

type fakeRow struct {
	values []any
	err    error
}

func (f fakeRow) Scan(dest ...any) error {
	if f.err != nil {
		return f.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = f.values[i].(string)
		case *int:
			*p = f.values[i].(int)
		case *bool:
			*p = f.values[i].(bool)
		case *time.Time:
			*p = f.values[i].(time.Time)
		}
	}
	return nil
}

func TestScanEvent(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	row := fakeRow{values: []any{
		"0b5c7f3e-8a1d-4c61-9f0e-2d8a3b7c4e10", 20, true, true, false, true,
		true, false, 50, 3, 88, "Strong", true, created,
	}}

	e, err := scanEvent(row)
	if err != nil {
		t.Fatalf("scanEvent() unexpected error: %v", err)
	}
	if e.Length != 20 || e.Count != 3 || e.Score != 88 {
		t.Errorf("scanEvent() numeric fields = %d/%d/%d, want 20/3/88", e.Length, e.Count, e.Score)
	}
	if !e.Uppercase || e.Numbers || !e.ExcludeSimilar || e.ExcludeAmbiguous || !e.Hashed {
		t.Errorf("scanEvent() flags scanned into the wrong fields: %+v", e)
	}
	if e.Strength != "Strong" || !e.CreatedAt.Equal(created) {
		t.Errorf("scanEvent() = %+v", e)
	}
}

func TestScanEventError(t *testing.T) {
	boom := errors.New("scan failed")
	if _, err := scanEvent(fakeRow{err: boom}); !errors.Is(err, boom) {
		t.Errorf("scanEvent() error = %v, want %v", err, boom)
	}
}

func TestIsDuplicateEntryError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sentinel", ErrNoDatabase, false},
		{"duplicate entry", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'x' for key 'PRIMARY'"}, true},
		{"wrapped duplicate entry", fmt.Errorf("insert: %w", &mysql.MySQLError{Number: 1062}), true},
		{"other mysql error", &mysql.MySQLError{Number: 1146, Message: "Table doesn't exist"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isDuplicateEntryError(tt.err); got != tt.want {
				t.Errorf("isDuplicateEntryError() = %v, want %v", got, tt.want)
			}
		})
	}
}
