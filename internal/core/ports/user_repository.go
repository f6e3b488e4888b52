package ports

import (
	"context"

	"github.com/servicedesk/atendimentos/internal/core/domain"
)

// UserRepository persists the user directory. Name uniqueness is the store's
// job: Create reports a violation as domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// CreateIfAbsent inserts user unless the name is taken; created is false
	// when an existing row won.
	CreateIfAbsent(ctx context.Context, user *domain.User) (created bool, err error)
	FindByName(ctx context.Context, name string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id int64) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Ping(ctx context.Context) error
}
