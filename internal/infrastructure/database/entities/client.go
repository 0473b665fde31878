package entities

import (
	"time"

	"github.com/google/uuid"
)

// Client is the billing identity of a user; one client per user. The active
// subscription pointer is nil until the first package purchase.
type Client struct {
	ID                   int64                      `gorm:"primaryKey;autoIncrement"`
	UUID                 uuid.UUID                  `gorm:"type:uuid;uniqueIndex;not null"`
	UserID               int64                      `gorm:"uniqueIndex;not null"`
	User                 *User                      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	ActiveSubscriptionID *int64                     `gorm:"index"`
	ActiveSubscription   *ClientPackageSubscription `gorm:"foreignKey:ActiveSubscriptionID"`
	APISecretHash        string                     `gorm:"type:varchar(255);uniqueIndex;not null"`
	DateAdded            time.Time                  `gorm:"autoCreateTime"`
	LastUpdated          time.Time                  `gorm:"autoUpdateTime"`
}

func (Client) TableName() string {
	return "clients"
}

// SubscriptionPackage is a purchasable storage plan.
type SubscriptionPackage struct {
	ID                 int64     `gorm:"primaryKey;autoIncrement"`
	UUID               uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Name               string    `gorm:"type:varchar(255);not null"`
	Price              float32   `gorm:"not null"`
	StorageCapacityMb  int64     `gorm:"not null"`
	MonthlyRequests    int64     `gorm:"not null"`
	MaxAllowedSessions int32     `gorm:"not null"`
	DateAdded          time.Time `gorm:"autoCreateTime"`
	LastUpdated        time.Time `gorm:"autoUpdateTime"`
}

func (SubscriptionPackage) TableName() string {
	return "subscription_packages"
}

// ClientPackageSubscription records one purchase of a package by a client.
type ClientPackageSubscription struct {
	ID                    int64                `gorm:"primaryKey;autoIncrement"`
	UUID                  uuid.UUID            `gorm:"type:uuid;uniqueIndex;not null"`
	ClientID              int64                `gorm:"index;not null"`
	Client                *Client              `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	SubscriptionPackageID int64                `gorm:"index;not null"`
	SubscriptionPackage   *SubscriptionPackage `gorm:"foreignKey:SubscriptionPackageID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Amount                float32              `gorm:"not null"`
	ExpiresAt             time.Time            `gorm:"not null"`
	DateAdded             time.Time            `gorm:"autoCreateTime"`
}

func (ClientPackageSubscription) TableName() string {
	return "client_package_subscriptions"
}

// ClientUsage tracks cumulative storage for a client. Created lazily on the
// first asset upload; UsedStorageMb is maintained incrementally by the asset
// workflow, never recomputed from the asset rows.
type ClientUsage struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	UUID           uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	ClientID       int64     `gorm:"uniqueIndex;not null"`
	Client         *Client   `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	UsedStorageMb  float64   `gorm:"not null;default:0"`
	ActiveSessions int32     `gorm:"not null;default:0"`
	DateAdded      time.Time `gorm:"autoCreateTime"`
	LastUpdated    time.Time `gorm:"autoUpdateTime"`
}

func (ClientUsage) TableName() string {
	return "client_usages"
}

// ClientMonthlyRequests counts API requests per client per calendar month.
type ClientMonthlyRequests struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	UUID         uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	ClientID     int64     `gorm:"index:idx_client_month,unique;not null"`
	Client       *Client   `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Month        time.Time `gorm:"index:idx_client_month,unique;not null"`
	RequestCount int64     `gorm:"not null;default:0"`
	DateAdded    time.Time `gorm:"autoCreateTime"`
	LastUpdated  time.Time `gorm:"autoUpdateTime"`
}

func (ClientMonthlyRequests) TableName() string {
	return "client_monthly_requests"
}
