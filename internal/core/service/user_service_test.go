package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/servicedesk/atendimentos/internal/core/domain"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int64
	err    error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	if _, exists := r.users[user.Name]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = r.nextID
	r.users[copy.Name] = copy
	return cloneUser(copy), nil
}

func (r *stubUserRepo) CreateIfAbsent(ctx context.Context, user *domain.User) (bool, error) {
	if _, err := r.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *stubUserRepo) FindByName(_ context.Context, name string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[name]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	for name, u := range r.users {
		if u.ID == id {
			delete(r.users, name)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	for _, u := range r.users {
		if u.ID == id {
			u.PasswordHash = hash
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *stubUserRepo) Ping(context.Context) error { return nil }

func newUserSvc(repo *stubUserRepo) *UserService {
	return NewUserService(repo, bcrypt.MinCost, zerolog.Nop())
}

func TestUserService_Create_HashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserSvc(repo)

	user, err := svc.Create(context.Background(), "joao", "abc", "attendant")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected generated id")
	}
	if user.PasswordHash == "abc" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("abc")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != "attendant" {
		t.Fatalf("role should be stored verbatim, got %q", user.Role)
	}
}

func TestUserService_Create_Duplicate(t *testing.T) {
	svc := newUserSvc(newStubUserRepo())

	if _, err := svc.Create(context.Background(), "maria", "x", "gestor"); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), "maria", "y", "atendente"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Create_PasswordTooLong(t *testing.T) {
	svc := newUserSvc(newStubUserRepo())

	_, err := svc.Create(context.Background(), "long", strings.Repeat("a", 80), "atendente")
	if !errors.Is(err, domain.ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestUserService_BootstrapAdmin_Idempotent(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserSvc(repo)

	created, err := svc.BootstrapAdmin(context.Background())
	if err != nil || !created {
		t.Fatalf("first bootstrap: created=%v err=%v", created, err)
	}
	created, err = svc.BootstrapAdmin(context.Background())
	if err != nil || created {
		t.Fatalf("second bootstrap: created=%v err=%v", created, err)
	}

	if len(repo.users) != 1 {
		t.Fatalf("expected exactly one user, got %d", len(repo.users))
	}
	admin, err := svc.Authenticate(context.Background(), AdminName, AdminPassword)
	if err != nil {
		t.Fatalf("admin login failed: %v", err)
	}
	if !admin.IsManager() {
		t.Fatalf("admin should be a manager, got %q", admin.Role)
	}
}

func TestUserService_BootstrapAdmin_KeepsExistingAdmin(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserSvc(repo)

	if _, err := svc.Create(context.Background(), AdminName, "custom", "gestor"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created, err := svc.BootstrapAdmin(context.Background()); err != nil || created {
		t.Fatalf("bootstrap should be a no-op: created=%v err=%v", created, err)
	}
	if _, err := svc.Authenticate(context.Background(), AdminName, "custom"); err != nil {
		t.Fatalf("existing admin password should be kept: %v", err)
	}
}

func TestUserService_Authenticate(t *testing.T) {
	svc := newUserSvc(newStubUserRepo())
	_, _ = svc.Create(context.Background(), "Ana", "Segredo", "atendente")

	if u, err := svc.Authenticate(context.Background(), "Ana", "Segredo"); err != nil || u.Name != "Ana" {
		t.Fatalf("expected success, got user=%+v err=%v", u, err)
	}
	if _, err := svc.Authenticate(context.Background(), "Ana", "segredo"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("password must be case-sensitive, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "ana", "Segredo"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("name must be case-sensitive, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserSvc(repo)
	user, _ := svc.Create(context.Background(), "pedro", "1", "atendente")

	if err := svc.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), user.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
	users, _ := svc.List(context.Background())
	if len(users) != 0 {
		t.Fatalf("expected empty roster, got %+v", users)
	}
}

func TestUserService_ChangePassword(t *testing.T) {
	svc := newUserSvc(newStubUserRepo())
	_, _ = svc.Create(context.Background(), "lucas", "old", "atendente")

	if err := svc.ChangePassword(context.Background(), "lucas", "old", "new"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "lucas", "new"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "lucas", "old"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password should no longer work, got %v", err)
	}
}

func TestUserService_ChangePassword_WrongCurrent(t *testing.T) {
	svc := newUserSvc(newStubUserRepo())
	_, _ = svc.Create(context.Background(), "bia", "keep", "atendente")

	if err := svc.ChangePassword(context.Background(), "bia", "guess", "new"); !errors.Is(err, domain.ErrCurrentPasswordMismatch) {
		t.Fatalf("expected ErrCurrentPasswordMismatch, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "bia", "keep"); err != nil {
		t.Fatalf("stored password must be unchanged: %v", err)
	}
}

func TestUserService_ChangePassword_UnknownUser(t *testing.T) {
	svc := newUserSvc(newStubUserRepo())

	if err := svc.ChangePassword(context.Background(), "ghost", "a", "b"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_StoreFailure(t *testing.T) {
	repo := newStubUserRepo()
	repo.err = errors.New("disk full")
	svc := newUserSvc(repo)

	if _, err := svc.BootstrapAdmin(context.Background()); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestUserService_LongPasswordMustMatchExactly(t *testing.T) {
	svc := newUserSvc(newStubUserRepo())
	pw := strings.Repeat("a", 72)
	if _, err := svc.Create(context.Background(), "joao", pw, "atendente"); err != nil {
		t.Fatalf("create with 72-byte password: %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), "joao", pw); err != nil {
		t.Fatalf("exact password rejected: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "joao", pw+"EXTRA"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("password with extra suffix must not authenticate, got %v", err)
	}

	if err := svc.ChangePassword(context.Background(), "joao", pw+"EXTRA", "new"); !errors.Is(err, domain.ErrCurrentPasswordMismatch) {
		t.Fatalf("expected ErrCurrentPasswordMismatch, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "joao", pw); err != nil {
		t.Fatalf("stored password must be unchanged: %v", err)
	}
}
