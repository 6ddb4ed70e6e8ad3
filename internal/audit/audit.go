// Package audit records who changed what. Every mutation emits one event;
// admins can read the trail back through the API. The file store appends
// one JSON object per line so the log can be tailed and shipped as-is.
package audit

import (
	"context"
	"log/slog"
	"time"
)

// Event is a single audit record.
type Event struct {
	Timestamp    time.Time      `json:"timestamp"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type"`
	ResourceID   string         `json:"resource_id,omitempty"`
	UserID       string         `json:"user_id,omitempty"`
	Email        string         `json:"email,omitempty"`
	RequestID    string         `json:"request_id,omitempty"`
	Details      map[string]any `json:"details,omitempty"`
}

// Actions recorded by the API.
const (
	ActionCreate     = "create"
	ActionUpdate     = "update"
	ActionDelete     = "delete"
	ActionBulkCreate = "bulk_create"
	ActionBulkUpdate = "bulk_update"
	ActionBulkDelete = "bulk_delete"
	ActionRegister   = "register"
	ActionLogin      = "login"
)

// Filter narrows a trail read. Zero values mean no constraint; Limit 0
// falls back to DefaultLimit.
type Filter struct {
	Limit        int
	Action       string
	ResourceType string
}

const DefaultLimit = 100

// Store persists events. List returns newest first.
type Store interface {
	Append(ctx context.Context, e Event) error
	List(ctx context.Context, f Filter) ([]Event, error)
}

// Service stamps and records events. Failures to write the trail are
// logged, never propagated: an audit outage must not fail the mutation
// that already happened.
type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

func (s *Service) Emit(ctx context.Context, e Event) {
	if s == nil {
		return
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	if err := s.store.Append(ctx, e); err != nil {
		s.logger.Error("audit append failed",
			"action", e.Action,
			"resource_type", e.ResourceType,
			"error", err)
	}
}

func (s *Service) List(ctx context.Context, f Filter) ([]Event, error) {
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	return s.store.List(ctx, f)
}
