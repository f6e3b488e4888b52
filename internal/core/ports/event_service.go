package ports

import (
	"context"

	"github.com/servicedesk/atendimentos/internal/core/domain"
)

// ServiceEventInput is the DTO passed from the transport layer to EventService.
// It deliberately has no timestamp: CreatedAt is always stamped server-side.
type ServiceEventInput struct {
	Description    string
	Category       string
	Duration       string
	Author         string
	IdempotencyKey string // optional
}

// EventService records and lists service events.
type EventService interface {
	Create(ctx context.Context, in ServiceEventInput) (event *domain.ServiceEvent, replayed bool, err error)
	List(ctx context.Context) ([]domain.ServiceEvent, error)
}
