package ports

import (
	"context"

	"github.com/servicedesk/atendimentos/internal/core/domain"
)

type UserService interface {
	BootstrapAdmin(ctx context.Context) (created bool, err error)
	Authenticate(ctx context.Context, name, password string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, name, password, role string) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	ChangePassword(ctx context.Context, name, currentPassword, newPassword string) error
}
