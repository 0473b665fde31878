package entities

import (
	"time"

	"github.com/google/uuid"
)

// User is an account holder. PasswordHash is empty for wallet-only accounts.
type User struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	UUID          uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash  *string   `gorm:"type:varchar(255)"`
	WalletAddress *string   `gorm:"type:varchar(128)"`
	DateAdded     time.Time `gorm:"autoCreateTime"`
	LastUpdated   time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// Profile holds optional display information for a user.
type Profile struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	UUID        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	UserID      int64     `gorm:"uniqueIndex;not null"`
	User        *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	FirstName   string    `gorm:"type:varchar(100)"`
	LastName    string    `gorm:"type:varchar(100)"`
	ImageHash   string    `gorm:"type:varchar(100)"`
	DateAdded   time.Time `gorm:"autoCreateTime"`
	LastUpdated time.Time `gorm:"autoUpdateTime"`
}

func (Profile) TableName() string {
	return "profiles"
}

// AuthToken is a persisted user session token; its UUID doubles as the
// refresh token handed to the client.
type AuthToken struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UUID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	UserID    int64     `gorm:"index;not null"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Token     string    `gorm:"type:text;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	DateAdded time.Time `gorm:"autoCreateTime"`
}

func (AuthToken) TableName() string {
	return "auth_tokens"
}

// ClientAuthToken is the API-credential counterpart of AuthToken.
type ClientAuthToken struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UUID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	ClientID  int64     `gorm:"index;not null"`
	Client    *Client   `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Token     string    `gorm:"type:text;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	DateAdded time.Time `gorm:"autoCreateTime"`
}

func (ClientAuthToken) TableName() string {
	return "client_auth_tokens"
}
