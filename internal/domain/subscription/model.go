package subscription

import (
	"time"

	"github.com/google/uuid"
)

// Package is a purchasable storage plan.
type Package struct {
	ID                 int64     `json:"-"`
	UUID               uuid.UUID `json:"uuid"`
	Name               string    `json:"name"`
	Price              float32   `json:"price"`
	StorageCapacityMb  int64     `json:"storage_capacity_mb"`
	MonthlyRequests    int64     `json:"monthly_requests"`
	MaxAllowedSessions int32     `json:"max_allowed_sessions"`
	DateAdded          time.Time `json:"date_added"`
	LastUpdated        time.Time `json:"last_updated"`
}

// Subscription records one purchase of a package by a client.
type Subscription struct {
	ID        int64     `json:"-"`
	UUID      uuid.UUID `json:"uuid"`
	ClientID  int64     `json:"-"`
	PackageID int64     `json:"-"`
	Amount    float32   `json:"amount"`
	ExpiresAt time.Time `json:"expires_at"`
	DateAdded time.Time `json:"date_added"`
}

// UpsertPackageParams carries the admin package mutation input. A nil UUID
// creates a new package.
type UpsertPackageParams struct {
	UUID               *uuid.UUID
	Name               string
	Price              float32
	StorageCapacityMb  int64
	MonthlyRequests    int64
	MaxAllowedSessions int32
}

// PackagePatch describes the fields an update overwrites.
type PackagePatch struct {
	Name               string
	Price              float32
	StorageCapacityMb  int64
	MonthlyRequests    int64
	MaxAllowedSessions int32
}
