package ports

import (
	"context"

	"github.com/servicedesk/atendimentos/internal/core/domain"
)

// EventRepository handles the append-only service event log.
type EventRepository interface {
	// Insert stores event and fills in its generated ID.
	Insert(ctx context.Context, event *domain.ServiceEvent) error

	// List returns every event ordered by id ascending.
	List(ctx context.Context) ([]domain.ServiceEvent, error)

	// FindByID is used to replay idempotent creations.
	FindByID(ctx context.Context, id int64) (*domain.ServiceEvent, error)
}
