package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/servicedesk/atendimentos/internal/api/metrics"
	"github.com/servicedesk/atendimentos/internal/core/domain"
	"github.com/servicedesk/atendimentos/internal/core/ports"
)

// IdempotencyStore abstracts the replay cache (Redis). A nil store disables
// idempotent creation.
//
// Claim must be atomic: for a given key exactly one caller gets claimed=true
// until that caller completes or releases it. Non-owners get the stored event
// id, or 0 while the owner is still inserting.
type IdempotencyStore interface {
	Claim(ctx context.Context, key string) (eventID int64, claimed bool, err error)
	Complete(ctx context.Context, key string, eventID int64) error
	Release(ctx context.Context, key string) error
}

const (
	defaultClaimWait     = 50 * time.Millisecond
	defaultClaimAttempts = 20
)

type eventService struct {
	repo          ports.EventRepository
	idem          IdempotencyStore
	now           func() time.Time
	log           zerolog.Logger
	claimWait     time.Duration
	claimAttempts int
}

// EventOption customises the event service.
type EventOption func(*eventService)

// WithClock overrides the clock used to stamp CreatedAt.
func WithClock(now func() time.Time) EventOption {
	return func(s *eventService) { s.now = now }
}

// WithClaimWait sets how often and how many times a request polls a key that
// another request is still inserting before giving up with ErrEventInFlight.
func WithClaimWait(interval time.Duration, attempts int) EventOption {
	return func(s *eventService) {
		s.claimWait = interval
		s.claimAttempts = attempts
	}
}

// NewEventService returns an EventService implementation.
func NewEventService(
	repo ports.EventRepository,
	idem IdempotencyStore,
	log zerolog.Logger,
	opts ...EventOption,
) ports.EventService {
	s := &eventService{
		repo:          repo,
		idem:          idem,
		now:           time.Now,
		log:           log,
		claimWait:     defaultClaimWait,
		claimAttempts: defaultClaimAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *eventService) List(ctx context.Context) ([]domain.ServiceEvent, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// Create appends a service event stamped with the server clock. When the
// input carries an idempotency key already used, the stored event is
// returned and replayed is true.
func (s *eventService) Create(ctx context.Context, in ports.ServiceEventInput) (*domain.ServiceEvent, bool, error) {
	// 1. Claim the key or replay. Cache failures only cost us the dedup.
	prev, owned, err := s.claim(ctx, in.IdempotencyKey)
	if err != nil {
		return nil, false, err
	}
	if prev != nil {
		return prev, true, nil
	}

	// 2. Persist.
	event := &domain.ServiceEvent{
		Description: in.Description,
		Category:    in.Category,
		Duration:    in.Duration,
		Author:      in.Author,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Insert(ctx, event); err != nil {
		if owned {
			s.release(ctx, in.IdempotencyKey)
		}
		return nil, false, fmt.Errorf("create event: %w", err)
	}
	metrics.ServiceEventsCreatedTotal.Inc()

	// 3. Point the key at the new event for later replays.
	if owned {
		if err := s.idem.Complete(ctx, in.IdempotencyKey, event.ID); err != nil {
			s.log.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("failed to store idempotency key")
		}
	}

	s.log.Info().
		Int64("id", event.ID).
		Str("author", event.Author).
		Str("category", event.Category).
		Msg("service event stored")

	return event, false, nil
}

// claim returns the event to replay, or owned=true when this request must
// insert and then complete the key. With no key, no store or a store fault
// it returns neither and the caller inserts without dedup.
func (s *eventService) claim(ctx context.Context, key string) (*domain.ServiceEvent, bool, error) {
	if key == "" || s.idem == nil {
		return nil, false, nil
	}

	for attempt := 0; ; attempt++ {
		id, claimed, err := s.idem.Claim(ctx, key)
		if err != nil {
			metrics.IdempotencyLookupsTotal.WithLabelValues("error").Inc()
			s.log.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency claim failed, inserting anyway")
			return nil, false, nil
		}
		if claimed {
			metrics.IdempotencyLookupsTotal.WithLabelValues("miss").Inc()
			return nil, true, nil
		}

		if id > 0 {
			prev, err := s.repo.FindByID(ctx, id)
			if err == nil {
				metrics.IdempotencyLookupsTotal.WithLabelValues("hit").Inc()
				s.log.Info().Str("idempotency_key", key).Int64("id", id).Msg("idempotent replay")
				return prev, false, nil
			}
			if !errors.Is(err, domain.ErrEventNotFound) {
				s.log.Warn().Err(err).Int64("id", id).Msg("idempotent replay lookup failed")
				return nil, false, fmt.Errorf("replay event: %w", err)
			}
			// Key points at a row that no longer exists: free it and claim again.
			if err := s.idem.Release(ctx, key); err != nil {
				s.log.Warn().Err(err).Str("idempotency_key", key).Msg("failed to drop stale idempotency key")
				return nil, false, nil
			}
			continue
		}

		// Another request owns the key and is still inserting.
		if attempt >= s.claimAttempts {
			metrics.IdempotencyLookupsTotal.WithLabelValues("in_flight").Inc()
			return nil, false, domain.ErrEventInFlight
		}
		select {
		case <-ctx.Done():
			return nil, false, ctx.Err()
		case <-time.After(s.claimWait):
		}
	}
}

func (s *eventService) release(ctx context.Context, key string) {
	if err := s.idem.Release(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("idempotency_key", key).Msg("failed to release idempotency key")
	}
}
