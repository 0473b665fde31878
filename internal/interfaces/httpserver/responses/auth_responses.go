package responses

import (
	"time"

	"github.com/veecerts/asset-api/internal/domain/account"
	"github.com/veecerts/asset-api/internal/domain/subscription"
)

// UserResponse is the public user representation.
type UserResponse struct {
	UUID          string  `json:"uuid"`
	Email         string  `json:"email"`
	WalletAddress *string `json:"wallet_address,omitempty"`
}

func NewUserResponse(user *account.User) UserResponse {
	return UserResponse{
		UUID:          user.UUID.String(),
		Email:         user.Email,
		WalletAddress: user.WalletAddress,
	}
}

// TokenResponse carries a session token pair. The refresh token is the
// persisted token row's UUID.
type TokenResponse struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func NewTokenResponse(token *account.AuthToken) TokenResponse {
	return TokenResponse{
		Token:        token.Token,
		RefreshToken: token.UUID.String(),
		ExpiresAt:    token.ExpiresAt,
	}
}

// SubscribeResponse carries the purchase result. APISecret is only set on the
// first subscription, when the client row is created.
type SubscribeResponse struct {
	Subscription *subscription.Subscription `json:"subscription"`
	APISecret    string                     `json:"api_secret,omitempty"`
}
