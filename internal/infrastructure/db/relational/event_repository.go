package relational

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/servicedesk/atendimentos/internal/core/domain"
	"github.com/servicedesk/atendimentos/internal/core/ports"
)

// EventRepository implements ports.EventRepository on the atendimentos table.
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *gorm.DB) ports.EventRepository {
	return &EventRepository{db: db}
}

// Insert appends event and copies the generated id back.
func (r *EventRepository) Insert(ctx context.Context, event *domain.ServiceEvent) error {
	rec := serviceEventRecord{
		Description: event.Description,
		Category:    event.Category,
		Duration:    event.Duration,
		Author:      event.Author,
		CreatedAt:   event.CreatedAt.UTC(),
	}

	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("insert service event: %w", err)
	}
	event.ID = rec.ID
	return nil
}

func (r *EventRepository) List(ctx context.Context) ([]domain.ServiceEvent, error) {
	var recs []serviceEventRecord
	if err := r.db.WithContext(ctx).Order("id asc").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list service events: %w", err)
	}

	events := make([]domain.ServiceEvent, 0, len(recs))
	for _, rec := range recs {
		events = append(events, rec.toDomain())
	}
	return events, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id int64) (*domain.ServiceEvent, error) {
	var rec serviceEventRecord
	if err := r.db.WithContext(ctx).Take(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find service event: %w", err)
	}

	event := rec.toDomain()
	return &event, nil
}
