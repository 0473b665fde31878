package account

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/veecerts/asset-api/internal/utils/platformerrors"
)

// UserRepository defines user persistence operations needed by the service.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByUUID(ctx context.Context, id uuid.UUID) (*User, error)
	Create(ctx context.Context, user *User) error
}

// TokenRepository persists session tokens.
type TokenRepository interface {
	Create(ctx context.Context, token *AuthToken) error
	FindByUUID(ctx context.Context, id uuid.UUID) (*AuthToken, error)
	FindUser(ctx context.Context, userID int64) (*User, error)
	Delete(ctx context.Context, id int64) error
	DeleteByUserID(ctx context.Context, userID int64) error
}

// TokenIssuer signs session JWTs.
type TokenIssuer interface {
	Issue(user *User, expiresAt time.Time) (string, error)
}

// Service implements signup, signin and refresh-token rotation.
type Service struct {
	users    UserRepository
	tokens   TokenRepository
	issuer   TokenIssuer
	tokenTTL time.Duration
	log      zerolog.Logger
}

func NewService(users UserRepository, tokens TokenRepository, issuer TokenIssuer, tokenTTL time.Duration, log zerolog.Logger) *Service {
	return &Service{
		users:    users,
		tokens:   tokens,
		issuer:   issuer,
		tokenTTL: tokenTTL,
		log:      log.With().Str("component", "account-service").Logger(),
	}
}

// Signup registers a new email/password user.
func (s *Service) Signup(ctx context.Context, email, password1, password2 string) (*User, error) {
	if password1 != password2 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "Passwords do not match", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password1), bcrypt.DefaultCost)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeInternal, "failed to hash password", err)
	}

	passwordHash := string(hash)
	user := &User{
		UUID:         uuid.New(),
		Email:        email,
		PasswordHash: &passwordHash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Signin verifies the password, invalidates all existing sessions for the
// user and issues a fresh token.
func (s *Service) Signin(ctx context.Context, email, password string) (*AuthToken, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound, "User with that email not found", nil)
	}
	if user.PasswordHash == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "Password login not found", nil)
	}
	if bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)) != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnauthenticated, "Incorrect email or password", nil)
	}

	if err := s.tokens.DeleteByUserID(ctx, user.ID); err != nil {
		return nil, err
	}
	return s.issueToken(ctx, user)
}

// Refresh rotates a session: the presented refresh token is deleted and a new
// token pair is issued. Expired tokens are deleted and rejected.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthToken, error) {
	id, err := uuid.Parse(refreshToken)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "Invalid refresh_token", err)
	}

	token, err := s.tokens.FindByUUID(ctx, id)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnauthenticated, "Invalid refresh_token", nil)
	}

	if !token.ExpiresAt.After(time.Now()) {
		if err := s.tokens.Delete(ctx, token.ID); err != nil {
			s.log.Warn().Err(err).Msg("delete expired token")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnauthenticated, "Token expired", nil)
	}

	user, err := s.tokens.FindUser(ctx, token.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnauthenticated, "Invalid refresh_token", nil)
	}

	if err := s.tokens.Delete(ctx, token.ID); err != nil {
		return nil, err
	}
	return s.issueToken(ctx, user)
}

// UserByEmail resolves a user for the request authentication middleware.
// A nil user with nil error means the email is unknown.
func (s *Service) UserByEmail(ctx context.Context, email string) (*User, error) {
	return s.users.FindByEmail(ctx, email)
}

func (s *Service) issueToken(ctx context.Context, user *User) (*AuthToken, error) {
	expiresAt := time.Now().Add(s.tokenTTL)
	signed, err := s.issuer.Issue(user, expiresAt)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeInternal, "failed to sign token", err)
	}

	token := &AuthToken{
		UUID:      uuid.New(),
		UserID:    user.ID,
		Token:     signed,
		ExpiresAt: expiresAt,
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}
