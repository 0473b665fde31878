package account

import (
	"time"

	"github.com/google/uuid"
)

// User is an authenticated account holder.
type User struct {
	ID            int64     `json:"-"`
	UUID          uuid.UUID `json:"uuid"`
	Email         string    `json:"email"`
	PasswordHash  *string   `json:"-"`
	WalletAddress *string   `json:"wallet_address,omitempty"`
	DateAdded     time.Time `json:"date_added"`
	LastUpdated   time.Time `json:"last_updated"`
}

// Client is the billing identity a user acquires on first subscription.
type Client struct {
	ID                   int64     `json:"-"`
	UUID                 uuid.UUID `json:"uuid"`
	UserID               int64     `json:"-"`
	ActiveSubscriptionID *int64    `json:"-"`
	APISecretHash        string    `json:"-"`
	DateAdded            time.Time `json:"date_added"`
	LastUpdated          time.Time `json:"last_updated"`
}

// AuthToken is a persisted session token. The UUID is handed to the caller as
// the refresh token; Token is the signed JWT.
type AuthToken struct {
	ID        int64     `json:"-"`
	UUID      uuid.UUID `json:"refresh_token"`
	UserID    int64     `json:"-"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	DateAdded time.Time `json:"date_added"`
}
