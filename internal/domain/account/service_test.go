package account_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/veecerts/asset-api/internal/domain/account"
	"github.com/veecerts/asset-api/internal/utils/platformerrors"
)

type mockUsers struct {
	FindByEmailFunc func(ctx context.Context, email string) (*account.User, error)

	created *account.User
}

func (m *mockUsers) FindByEmail(ctx context.Context, email string) (*account.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUsers) FindByUUID(ctx context.Context, id uuid.UUID) (*account.User, error) {
	return nil, nil
}

func (m *mockUsers) Create(ctx context.Context, user *account.User) error {
	user.ID = 1
	m.created = user
	return nil
}

type mockTokens struct {
	FindByUUIDFunc func(ctx context.Context, id uuid.UUID) (*account.AuthToken, error)
	FindUserFunc   func(ctx context.Context, userID int64) (*account.User, error)

	created          []*account.AuthToken
	deletedIDs       []int64
	deletedByUserIDs []int64
}

func (m *mockTokens) Create(ctx context.Context, token *account.AuthToken) error {
	token.ID = int64(len(m.created) + 1)
	m.created = append(m.created, token)
	return nil
}

func (m *mockTokens) FindByUUID(ctx context.Context, id uuid.UUID) (*account.AuthToken, error) {
	if m.FindByUUIDFunc != nil {
		return m.FindByUUIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTokens) FindUser(ctx context.Context, userID int64) (*account.User, error) {
	if m.FindUserFunc != nil {
		return m.FindUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockTokens) Delete(ctx context.Context, id int64) error {
	m.deletedIDs = append(m.deletedIDs, id)
	return nil
}

func (m *mockTokens) DeleteByUserID(ctx context.Context, userID int64) error {
	m.deletedByUserIDs = append(m.deletedByUserIDs, userID)
	return nil
}

type mockIssuer struct{}

func (mockIssuer) Issue(user *account.User, expiresAt time.Time) (string, error) {
	return "signed-jwt-for-" + user.Email, nil
}

func newService(users *mockUsers, tokens *mockTokens) *account.Service {
	return account.NewService(users, tokens, mockIssuer{}, time.Hour, zerolog.Nop())
}

func hashedUser(t *testing.T, password string) *account.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	passwordHash := string(hash)
	return &account.User{ID: 1, UUID: uuid.New(), Email: "user@example.com", PasswordHash: &passwordHash}
}

func assertErrorType(t *testing.T, err error, want platformerrors.ErrorType, wantMessage string) {
	t.Helper()
	var platformErr *platformerrors.PlatformError
	if !errors.As(err, &platformErr) {
		t.Fatalf("expected platform error, got %T: %v", err, err)
	}
	if platformErr.Type != want {
		t.Fatalf("expected %s, got %s (%s)", want, platformErr.Type, platformErr.Message)
	}
	if wantMessage != "" && platformErr.Message != wantMessage {
		t.Fatalf("expected message %q, got %q", wantMessage, platformErr.Message)
	}
}

func TestSignupPasswordMismatch(t *testing.T) {
	service := newService(&mockUsers{}, &mockTokens{})

	_, err := service.Signup(context.Background(), "user@example.com", "password-one", "password-two")

	assertErrorType(t, err, platformerrors.ErrorTypeValidation, "Passwords do not match")
}

func TestSignupHashesPassword(t *testing.T) {
	users := &mockUsers{}
	service := newService(users, &mockTokens{})

	created, err := service.Signup(context.Background(), "user@example.com", "sekrit-pass", "sekrit-pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.PasswordHash == nil || *created.PasswordHash == "sekrit-pass" {
		t.Fatal("password must be stored hashed")
	}
	if bcrypt.CompareHashAndPassword([]byte(*created.PasswordHash), []byte("sekrit-pass")) != nil {
		t.Fatal("stored hash does not verify the password")
	}
	if users.created == nil || users.created.Email != "user@example.com" {
		t.Fatalf("user was not persisted: %+v", users.created)
	}
}

func TestSigninUnknownEmail(t *testing.T) {
	service := newService(&mockUsers{}, &mockTokens{})

	_, err := service.Signin(context.Background(), "nobody@example.com", "whatever")

	assertErrorType(t, err, platformerrors.ErrorTypeNotFound, "User with that email not found")
}

func TestSigninWalletOnlyUser(t *testing.T) {
	users := &mockUsers{
		FindByEmailFunc: func(ctx context.Context, email string) (*account.User, error) {
			return &account.User{ID: 1, Email: email}, nil
		},
	}
	service := newService(users, &mockTokens{})

	_, err := service.Signin(context.Background(), "user@example.com", "whatever")

	assertErrorType(t, err, platformerrors.ErrorTypeValidation, "Password login not found")
}

func TestSigninWrongPassword(t *testing.T) {
	user := hashedUser(t, "right-password")
	users := &mockUsers{
		FindByEmailFunc: func(ctx context.Context, email string) (*account.User, error) {
			return user, nil
		},
	}
	tokens := &mockTokens{}
	service := newService(users, tokens)

	_, err := service.Signin(context.Background(), "user@example.com", "wrong-password")

	assertErrorType(t, err, platformerrors.ErrorTypeUnauthenticated, "Incorrect email or password")
	if len(tokens.created) != 0 || len(tokens.deletedByUserIDs) != 0 {
		t.Fatal("failed signin must not touch sessions")
	}
}

func TestSigninInvalidatesExistingSessions(t *testing.T) {
	user := hashedUser(t, "right-password")
	users := &mockUsers{
		FindByEmailFunc: func(ctx context.Context, email string) (*account.User, error) {
			return user, nil
		},
	}
	tokens := &mockTokens{}
	service := newService(users, tokens)

	token, err := service.Signin(context.Background(), "user@example.com", "right-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tokens.deletedByUserIDs) != 1 || tokens.deletedByUserIDs[0] != user.ID {
		t.Fatalf("expected existing sessions deleted for user %d, got %v", user.ID, tokens.deletedByUserIDs)
	}
	if token.Token != "signed-jwt-for-user@example.com" {
		t.Fatalf("unexpected signed token %q", token.Token)
	}
	if !token.ExpiresAt.After(time.Now()) {
		t.Fatal("issued token must expire in the future")
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	user := hashedUser(t, "irrelevant")
	old := &account.AuthToken{ID: 7, UUID: uuid.New(), UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)}
	tokens := &mockTokens{
		FindByUUIDFunc: func(ctx context.Context, id uuid.UUID) (*account.AuthToken, error) {
			if id == old.UUID {
				return old, nil
			}
			return nil, nil
		},
		FindUserFunc: func(ctx context.Context, userID int64) (*account.User, error) {
			return user, nil
		},
	}
	service := newService(&mockUsers{}, tokens)

	fresh, err := service.Refresh(context.Background(), old.UUID.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tokens.deletedIDs) != 1 || tokens.deletedIDs[0] != old.ID {
		t.Fatalf("expected old token deleted, got %v", tokens.deletedIDs)
	}
	if fresh.UUID == old.UUID {
		t.Fatal("refresh must issue a new refresh token")
	}
	if len(tokens.created) != 1 {
		t.Fatalf("expected one new session, got %d", len(tokens.created))
	}
}

func TestRefreshExpiredTokenDeleted(t *testing.T) {
	old := &account.AuthToken{ID: 7, UUID: uuid.New(), UserID: 1, ExpiresAt: time.Now().Add(-time.Minute)}
	tokens := &mockTokens{
		FindByUUIDFunc: func(ctx context.Context, id uuid.UUID) (*account.AuthToken, error) {
			return old, nil
		},
	}
	service := newService(&mockUsers{}, tokens)

	_, err := service.Refresh(context.Background(), old.UUID.String())

	assertErrorType(t, err, platformerrors.ErrorTypeUnauthenticated, "Token expired")
	if len(tokens.deletedIDs) != 1 || tokens.deletedIDs[0] != old.ID {
		t.Fatalf("expected expired token deleted, got %v", tokens.deletedIDs)
	}
	if len(tokens.created) != 0 {
		t.Fatal("expired refresh must not issue a session")
	}
}

func TestRefreshMalformedToken(t *testing.T) {
	service := newService(&mockUsers{}, &mockTokens{})

	_, err := service.Refresh(context.Background(), "not-a-uuid")

	assertErrorType(t, err, platformerrors.ErrorTypeValidation, "Invalid refresh_token")
}

func TestRefreshUnknownToken(t *testing.T) {
	service := newService(&mockUsers{}, &mockTokens{})

	_, err := service.Refresh(context.Background(), uuid.NewString())

	assertErrorType(t, err, platformerrors.ErrorTypeUnauthenticated, "Invalid refresh_token")
}
