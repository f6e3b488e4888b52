package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/servicedesk/atendimentos/internal/api/metrics"
	"github.com/servicedesk/atendimentos/internal/core/domain"
	"github.com/servicedesk/atendimentos/internal/core/ports"
)

// Seed account created by BootstrapAdmin.
const (
	AdminName     = "admin"
	AdminPassword = "123"
)

// bcrypt ignores everything past this many bytes.
const maxPasswordBytes = 72

// UserService implements the user directory: bootstrap, login and roster
// management. Credentials are kept as bcrypt hashes; comparison stays exact
// and case-sensitive.
type UserService struct {
	repo     ports.UserRepository
	hashCost int
	log      zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hashCost int, log zerolog.Logger) *UserService {
	if hashCost < bcrypt.MinCost || hashCost > bcrypt.MaxCost {
		hashCost = bcrypt.DefaultCost
	}
	return &UserService{repo: repo, hashCost: hashCost, log: log}
}

// BootstrapAdmin creates the seed manager account unless a user named admin
// already exists. Safe to call any number of times.
func (s *UserService) BootstrapAdmin(ctx context.Context) (bool, error) {
	hash, err := s.hash(AdminPassword)
	if err != nil {
		return false, err
	}

	created, err := s.repo.CreateIfAbsent(ctx, &domain.User{
		Name:         AdminName,
		PasswordHash: hash,
		Role:         string(domain.RoleManager),
	})
	if err != nil {
		return false, fmt.Errorf("bootstrap admin: %w", err)
	}

	if created {
		metrics.UsersCreatedTotal.WithLabelValues("bootstrap").Inc()
		s.log.Info().Str("user", AdminName).Msg("seed admin created")
	}
	return created, nil
}

func (s *UserService) Authenticate(ctx context.Context, name, password string) (*domain.User, error) {
	user, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("unknown_user").Inc()
		}
		return nil, err
	}

	if !passwordMatches(user.PasswordHash, password) {
		metrics.LoginAttemptsTotal.WithLabelValues("wrong_password").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	metrics.LoginAttemptsTotal.WithLabelValues("ok").Inc()
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// Create registers a new user. The role is stored verbatim.
func (s *UserService) Create(ctx context.Context, name, password, role string) (*domain.User, error) {
	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Name:         name,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return nil, err
	}

	if created.Kind() == domain.RoleUnknown {
		s.log.Warn().Str("user", name).Str("role", role).Msg("user created with unrecognised role")
	}
	metrics.UsersCreatedTotal.WithLabelValues("register").Inc()
	s.log.Info().Int64("id", created.ID).Str("user", name).Msg("user created")
	return created, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	metrics.UsersDeletedTotal.Inc()
	s.log.Info().Int64("id", id).Msg("user deleted")
	return nil
}

// ChangePassword rotates the credential of name after checking the current
// one. A mismatch leaves the stored credential untouched.
func (s *UserService) ChangePassword(ctx context.Context, name, currentPassword, newPassword string) error {
	user, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return err
	}

	if !passwordMatches(user.PasswordHash, currentPassword) {
		return domain.ErrCurrentPasswordMismatch
	}

	hash, err := s.hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	metrics.PasswordChangesTotal.Inc()
	s.log.Info().Str("user", name).Msg("password changed")
	return nil
}

func (s *UserService) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domain.ErrInvalidPassword
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// passwordMatches compares exactly: input longer than bcrypt can store never
// matches, even if its first 72 bytes do.
func passwordMatches(hash, password string) bool {
	if len(password) > maxPasswordBytes {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
