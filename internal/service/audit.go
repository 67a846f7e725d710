package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vaultpass/passgen-go/internal/model"
)

const (
	DefaultAuditLimit = 50
	MaxAuditLimit     = 500
)

// AuditStore persists generation events.
type AuditStore interface {
	Insert(ctx context.Context, e *model.GenerationEvent) error
	ListRecent(ctx context.Context, limit int) ([]model.GenerationEvent, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}

// AuditService records and lists generation events.
type AuditService struct {
	store AuditStore
	now   func() time.Time
}

// NewAuditService creates a new AuditService.
func NewAuditService(store AuditStore) *AuditService {
	return &AuditService{store: store, now: time.Now}
}

// Record assigns an ID and timestamp to event and stores it.
func (s *AuditService) Record(ctx context.Context, event model.GenerationEvent) error {
	event.ID = uuid.NewString()
	event.CreatedAt = s.now().UTC()
	return s.store.Insert(ctx, &event)
}

// List returns the most recent events and the number recorded in the last 24 hours.
func (s *AuditService) List(ctx context.Context, limit int) (model.AuditResponse, error) {
	switch {
	case limit <= 0:
		limit = DefaultAuditLimit
	case limit > MaxAuditLimit:
		limit = MaxAuditLimit
	}

	events, err := s.store.ListRecent(ctx, limit)
	if err != nil {
		return model.AuditResponse{}, err
	}
	if events == nil {
		events = []model.GenerationEvent{}
	}

	recent, err := s.store.CountSince(ctx, s.now().UTC().Add(-24*time.Hour))
	if err != nil {
		return model.AuditResponse{}, err
	}

	return model.AuditResponse{
		Events:  events,
		Last24h: recent,
		Limit:   limit,
	}, nil
}
