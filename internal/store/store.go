// Package store persists planning sessions. Two backends exist: SQLite for
// single-binary local use and Postgres for shared deployments.
package store

import (
	"context"
	"encoding/json"

	"github.com/wayfarer-labs/planner-cli/internal/model"
)

// SessionFilter specifies criteria for listing sessions.
type SessionFilter struct {
	Status model.Status `json:"status,omitempty"`
	Limit  int          `json:"limit,omitempty"`
	Offset int          `json:"offset,omitempty"`
}

// Store defines the persistence interface for planning sessions.
type Store interface {
	CreateSession(ctx context.Context, req model.PlanningRequest) (*model.Session, error)
	UpdateSessionStatus(ctx context.Context, id string, status model.Status) error

	// SetSessionResult records the terminal outcome of a run: its final
	// status and the serialized pipeline state.
	SetSessionResult(ctx context.Context, id string, status model.Status, result json.RawMessage) error

	GetSession(ctx context.Context, id string) (*model.Session, error)
	ListSessions(ctx context.Context, filter SessionFilter) ([]model.Session, error)

	Migrate(ctx context.Context) error
	Close() error
}
