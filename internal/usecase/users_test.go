package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	domainErrors "github.com/polkiloo/loandesk/internal/domain/errors"
	"github.com/polkiloo/loandesk/internal/domain/model"
	pkgAuth "github.com/polkiloo/loandesk/internal/pkg/auth"
	testhelpers "github.com/polkiloo/loandesk/internal/test"
)

func newUserUseCase() (*UserUseCase, *testhelpers.UserRepositoryStub) {
	repo := testhelpers.NewUserRepositoryStub()
	return NewUserUseCase(repo, testhelpers.HasherStub{}, nil), repo
}

func TestUserUseCaseCreate(t *testing.T) {
	uc, repo := newUserUseCase()

	user, err := uc.Create(context.Background(), model.NewUser{Username: "  frank ", Password: "secret1", FullName: " Frank "})
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if user.Username != "frank" || user.Role != model.RoleUser || !user.Active || user.FullName != "Frank" {
		t.Fatalf("unexpected user %+v", user)
	}
	if repo.Users["frank"].PasswordHash != "hash:secret1" {
		t.Fatalf("password must be stored hashed, got %q", repo.Users["frank"].PasswordHash)
	}

	if _, err := uc.Create(context.Background(), model.NewUser{Username: "frank", Password: "secret1"}); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestUserUseCaseCreateValidation(t *testing.T) {
	uc, repo := newUserUseCase()

	cases := map[string]model.NewUser{
		"empty username": {Username: " ", Password: "secret1"},
		"empty password": {Username: "gina", Password: ""},
		"short password": {Username: "gina", Password: "12345"},
		"unknown role":   {Username: "gina", Password: "secret1", Role: "root"},
	}
	for name, in := range cases {
		_, err := uc.Create(context.Background(), in)
		if !errors.Is(err, domainErrors.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
		var vErr *ValidationError
		if !errors.As(err, &vErr) || vErr.Field == "" {
			t.Fatalf("%s: expected ValidationError with field, got %v", name, err)
		}
	}
	if len(repo.Users) != 0 {
		t.Fatalf("no user should be stored, got %d", len(repo.Users))
	}
}

func TestUserUseCaseCreateHashFailure(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewUserUseCase(repo, testhelpers.HasherStub{HashFn: func(string) (string, error) {
		return "", errors.New("hash failed")
	}}, nil)

	if _, err := uc.Create(context.Background(), model.NewUser{Username: "hank", Password: "secret1"}); err == nil {
		t.Fatal("expected hash error")
	}
}

func TestUserUseCaseChangePassword(t *testing.T) {
	uc, repo := newUserUseCase()
	ctx := context.Background()
	user, _ := uc.Create(ctx, model.NewUser{Username: "ivan", Password: "secret1"})

	self := model.Claims{UserID: user.ID, Role: model.RoleUser}
	if err := uc.ChangePassword(ctx, self, user.ID, "newpass"); err != nil {
		t.Fatalf("self change failed: %v", err)
	}
	if repo.ByID[user.ID].PasswordHash != "hash:newpass" {
		t.Fatalf("expected rehash, got %q", repo.ByID[user.ID].PasswordHash)
	}

	other := model.Claims{UserID: 99, Role: model.RoleManager}
	if err := uc.ChangePassword(ctx, other, user.ID, "another"); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	admin := model.Claims{UserID: 99, Role: model.RoleAdmin}
	if err := uc.ChangePassword(ctx, admin, user.ID, "short"); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := uc.ChangePassword(ctx, admin, 404, "longenough"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUserUseCaseChangeRoleKeepsHash(t *testing.T) {
	uc, repo := newUserUseCase()
	ctx := context.Background()
	user, _ := uc.Create(ctx, model.NewUser{Username: "judy", Password: "secret1"})

	if err := uc.ChangeRole(ctx, user.ID, "Manager"); err != nil {
		t.Fatalf("change role failed: %v", err)
	}
	stored := repo.ByID[user.ID]
	if stored.Role != model.RoleManager || stored.PasswordHash != "hash:secret1" {
		t.Fatalf("unexpected stored user %+v", stored)
	}

	if err := uc.ChangeRole(ctx, user.ID, ""); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for empty role, got %v", err)
	}
	if err := uc.ChangeRole(ctx, user.ID, "owner"); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for unknown role, got %v", err)
	}
}

func TestUserUseCaseDeactivate(t *testing.T) {
	uc, repo := newUserUseCase()
	ctx := context.Background()
	user, _ := uc.Create(ctx, model.NewUser{Username: "kate", Password: "secret1"})

	if err := uc.Deactivate(ctx, model.Claims{UserID: user.ID, Role: model.RoleAdmin}, user.ID); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected self deactivation to be rejected, got %v", err)
	}
	if err := uc.Deactivate(ctx, model.Claims{UserID: 42, Role: model.RoleAdmin}, user.ID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if repo.ByID[user.ID].Active {
		t.Fatal("expected user to be inactive")
	}

	users, err := uc.List(ctx)
	if err != nil || len(users) != 1 {
		t.Fatalf("deactivated users are kept, got %v %v", users, err)
	}
}

func TestLoadSeedFileAndSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	content := `users:
  - username: admin
    password: changeme
    role: admin
    fullName: Desk Admin
  - username: clerk
    password: short
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write seed file: %v", err)
	}

	seeds, err := LoadSeedFile(path)
	if err != nil {
		t.Fatalf("load seed file: %v", err)
	}
	if len(seeds) != 2 || seeds[0].Role != model.RoleAdmin || seeds[0].FullName != "Desk Admin" {
		t.Fatalf("unexpected seeds %+v", seeds)
	}

	uc, repo := newUserUseCase()
	created, err := uc.Seed(context.Background(), seeds)
	if err != nil {
		t.Fatalf("seed returned error: %v", err)
	}
	if created != 1 || repo.Users["admin"] == nil {
		t.Fatalf("expected only the valid account to be created, got %d", created)
	}

	created, err = uc.Seed(context.Background(), seeds)
	if err != nil || created != 0 {
		t.Fatalf("second seed must be a no-op, got %d %v", created, err)
	}
}

func TestSeedStopsWhenStoreUnavailable(t *testing.T) {
	uc, repo := newUserUseCase()
	repo.Err = domainErrors.ErrStoreUnavailable

	_, err := uc.Seed(context.Background(), []model.NewUser{{Username: "a", Password: "secret1"}})
	if !errors.Is(err, domainErrors.ErrStoreUnavailable) {
		t.Fatalf("expected store unavailable, got %v", err)
	}
}

func TestLoadSeedFileErrors(t *testing.T) {
	if _, err := LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	_ = os.WriteFile(path, []byte("users: [unterminated"), 0o600)
	if _, err := LoadSeedFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestUserUseCaseRejectsPasswordsBcryptCannotHash(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewUserUseCase(repo, pkgAuth.NewBcryptHasher(bcrypt.MinCost), nil)
	ctx := context.Background()
	tooLong := strings.Repeat("a", MaxPasswordLength+8)

	if _, err := uc.Create(ctx, model.NewUser{Username: "long", Password: tooLong}); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	user, err := uc.Create(ctx, model.NewUser{Username: "edge", Password: strings.Repeat("b", MaxPasswordLength)})
	if err != nil {
		t.Fatalf("expected %d byte password to be accepted, got %v", MaxPasswordLength, err)
	}

	admin := model.Claims{UserID: 99, Role: model.RoleAdmin}
	if err := uc.ChangePassword(ctx, admin, user.ID, tooLong); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error on change, got %v", err)
	}
}
