package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/vaultpass/passgen-go/internal/model"
)

var (
	ErrNoDatabase     = errors.New("audit database not configured")
	ErrDuplicateEvent = errors.New("generation event already recorded")
)

const createGenerationEvents = `
	CREATE TABLE IF NOT EXISTS generation_events (
		id                CHAR(36)    NOT NULL PRIMARY KEY,
		length            INT         NOT NULL,
		uppercase         BOOLEAN     NOT NULL,
		lowercase         BOOLEAN     NOT NULL,
		numbers           BOOLEAN     NOT NULL,
		symbols           BOOLEAN     NOT NULL,
		exclude_similar   BOOLEAN     NOT NULL,
		exclude_ambiguous BOOLEAN     NOT NULL,
		entropy_level     INT         NOT NULL,
		count             INT         NOT NULL,
		score             INT         NOT NULL,
		strength          VARCHAR(16) NOT NULL,
		hashed            BOOLEAN     NOT NULL DEFAULT FALSE,
		created_at        DATETIME(6) NOT NULL,
		INDEX idx_generation_events_created_at (created_at)
	)`

const eventColumns = `id, length, uppercase, lowercase, numbers, symbols,
	exclude_similar, exclude_ambiguous, entropy_level, count, score, strength, hashed, created_at`

// GenerationRepository persists generation audit events.
type GenerationRepository struct {
	db *sql.DB
}

// NewGenerationRepository creates a new GenerationRepository.
func NewGenerationRepository(db *sql.DB) *GenerationRepository {
	return &GenerationRepository{db: db}
}

// Migrate creates the generation_events table if it does not exist.
func (r *GenerationRepository) Migrate(ctx context.Context) error {
	if r.db == nil {
		return ErrNoDatabase
	}
	if _, err := r.db.ExecContext(ctx, createGenerationEvents); err != nil {
		return fmt.Errorf("creating generation_events: %w", err)
	}
	return nil
}

// Insert stores a generation event.
func (r *GenerationRepository) Insert(ctx context.Context, e *model.GenerationEvent) error {
	if r.db == nil {
		return ErrNoDatabase
	}

	query := `INSERT INTO generation_events (` + eventColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.Length, e.Uppercase, e.Lowercase, e.Numbers, e.Symbols,
		e.ExcludeSimilar, e.ExcludeAmbiguous, e.EntropyLevel, e.Count,
		e.Score, e.Strength, e.Hashed, e.CreatedAt,
	)
	if isDuplicateEntryError(err) {
		return ErrDuplicateEvent
	}
	return err
}

// ListRecent returns up to limit events, newest first.
func (r *GenerationRepository) ListRecent(ctx context.Context, limit int) ([]model.GenerationEvent, error) {
	if r.db == nil {
		return nil, ErrNoDatabase
	}

	query := `SELECT ` + eventColumns + ` FROM generation_events ORDER BY created_at DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []model.GenerationEvent{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

// CountSince returns the number of events created after since.
func (r *GenerationRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	if r.db == nil {
		return 0, ErrNoDatabase
	}

	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM generation_events WHERE created_at > ?`, since).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (model.GenerationEvent, error) {
	var e model.GenerationEvent
	err := row.Scan(
		&e.ID, &e.Length, &e.Uppercase, &e.Lowercase, &e.Numbers, &e.Symbols,
		&e.ExcludeSimilar, &e.ExcludeAmbiguous, &e.EntropyLevel, &e.Count,
		&e.Score, &e.Strength, &e.Hashed, &e.CreatedAt,
	)
	return e, err
}

// isDuplicateEntryError reports whether err is MySQL error 1062 (ER_DUP_ENTRY).
func isDuplicateEntryError(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
