package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"recipebox/internal/app"
	"recipebox/internal/domain"
	"recipebox/internal/token"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	createFn     func(ctx context.Context, email, passwordHash, name string) (*domain.User, error)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, email, passwordHash, name string) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, email, passwordHash, name)
	}
	return &domain.User{ID: uuid.New(), Email: email, Name: name, PasswordHash: passwordHash}, nil
}

func testCodec() *token.Codec {
	return token.New([]byte("test-secret"), time.Hour)
}

func TestRegister_Validation(t *testing.T) {
	svc := app.NewAuthService(&mockUserRepo{}, testCodec())

	tests := []struct {
		name     string
		email    string
		password string
		display  string
	}{
		{"missing email", "", "secret1", "A"},
		{"missing password", "a@x.com", "", "A"},
		{"missing name", "a@x.com", "secret1", ""},
		{"malformed email", "not-an-email", "secret1", "A"},
		{"no tld", "a@x", "secret1", "A"},
		{"short password", "a@x.com", "12345", "A"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Register(context.Background(), tc.email, tc.password, tc.display)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{
		getByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: uuid.New(), Email: email}, nil
		},
	}
	svc := app.NewAuthService(repo, testCodec())

	_, _, err := svc.Register(context.Background(), "a@x.com", "secret1", "A")
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegister_HashesPassword(t *testing.T) {
	var storedHash string
	repo := &mockUserRepo{
		createFn: func(_ context.Context, email, passwordHash, name string) (*domain.User, error) {
			storedHash = passwordHash
			return &domain.User{ID: uuid.New(), Email: email, Name: name, PasswordHash: passwordHash}, nil
		},
	}
	codec := testCodec()
	svc := app.NewAuthService(repo, codec)

	user, tok, err := svc.Register(context.Background(), "a@x.com", "secret1", "A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if storedHash == "secret1" {
		t.Fatal("stored hash equals the plaintext password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}

	gotID, err := codec.Verify(tok)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if gotID != user.ID {
		t.Fatalf("token bound to %v, want %v", gotID, user.ID)
	}
}

func TestRegister_NoTokenOnFailedWrite(t *testing.T) {
	repo := &mockUserRepo{
		createFn: func(_ context.Context, _, _, _ string) (*domain.User, error) {
			return nil, errors.New("write failed")
		},
	}
	svc := app.NewAuthService(repo, testCodec())

	_, tok, err := svc.Register(context.Background(), "a@x.com", "secret1", "A")
	if err == nil {
		t.Fatal("expected error from failed write")
	}
	if tok != "" {
		t.Fatal("no session token may be issued for an unpersisted user")
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := app.NewAuthService(&mockUserRepo{}, testCodec())

	_, _, err := svc.Login(context.Background(), "nobody@x.com", "secret1")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct1"), bcrypt.DefaultCost)
	repo := &mockUserRepo{
		getByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: uuid.New(), Email: email, PasswordHash: string(hash)}, nil
		},
	}
	svc := app.NewAuthService(repo, testCodec())

	_, _, err := svc.Login(context.Background(), "a@x.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	userID := uuid.New()
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	repo := &mockUserRepo{
		getByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: userID, Email: email, Name: "A", PasswordHash: string(hash)}, nil
		},
	}
	codec := testCodec()
	svc := app.NewAuthService(repo, codec)

	user, tok, err := svc.Login(context.Background(), "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Name != "A" {
		t.Fatalf("expected name A, got %q", user.Name)
	}
	if gotID, err := codec.Verify(tok); err != nil || gotID != userID {
		t.Fatalf("token verify: id=%v err=%v", gotID, err)
	}
}

func TestCurrentUser_Missing(t *testing.T) {
	svc := app.NewAuthService(&mockUserRepo{}, testCodec())

	_, err := svc.CurrentUser(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestLoginSSO_AutoProvisions(t *testing.T) {
	var created bool
	repo := &mockUserRepo{
		createFn: func(_ context.Context, email, passwordHash, name string) (*domain.User, error) {
			created = true
			if passwordHash != "" {
				t.Fatalf("sso account must not get a password hash, got %q", passwordHash)
			}
			return &domain.User{ID: uuid.New(), Email: email, Name: name}, nil
		},
	}
	svc := app.NewAuthService(repo, testCodec())

	user, tok, err := svc.LoginSSO(context.Background(), "sso@x.com", "S")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatal("expected auto-provisioning")
	}
	if user == nil || tok == "" {
		t.Fatal("expected user and session token")
	}
}
