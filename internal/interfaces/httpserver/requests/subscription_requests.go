package requests

// UpsertPackageRequest creates or updates a subscription package. A UUID
// selects the package to update.
type UpsertPackageRequest struct {
	UUID               *string `json:"uuid"`
	Name               string  `json:"name" binding:"required"`
	Price              float32 `json:"price" binding:"gte=0"`
	StorageCapacityMb  int64   `json:"storage_capacity_mb" binding:"required,gt=0"`
	MonthlyRequests    int64   `json:"monthly_requests" binding:"required,gt=0"`
	MaxAllowedSessions int32   `json:"max_allowed_sessions" binding:"required,gt=0"`
}

// SubscribeRequest purchases a package for the authenticated user.
type SubscribeRequest struct {
	PackageUUID string `json:"package_uuid" binding:"required"`
}
