package asset

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// Asset represents a minted token backed by pinned content.
type Asset struct {
	ID          int64     `json:"-"`
	UUID        uuid.UUID `json:"uuid"`
	ClientID    int64     `json:"-"`
	FolderID    int64     `json:"folder_id"`
	NftID       int64     `json:"nft_id"`
	IpfsHash    string    `json:"ipfs_hash"`
	SizeMb      float64   `json:"size_mb"`
	ContentType string    `json:"content_type"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DateAdded   time.Time `json:"date_added"`
	LastUpdated time.Time `json:"last_updated"`
}

// Usage is a client's cumulative storage row.
type Usage struct {
	ID             int64     `json:"-"`
	UUID           uuid.UUID `json:"uuid"`
	ClientID       int64     `json:"-"`
	UsedStorageMb  float64   `json:"used_storage_mb"`
	ActiveSessions int32     `json:"active_sessions"`
	DateAdded      time.Time `json:"date_added"`
	LastUpdated    time.Time `json:"last_updated"`
}

// UpsertParams carries one upload request. A nil AssetUUID creates a new
// asset; otherwise the named asset is replaced (old token burned, new one
// minted into the same row).
type UpsertParams struct {
	FolderUUID  uuid.UUID
	AssetUUID   *uuid.UUID
	Name        string
	Description string
	Content     io.Reader
	Filename    string
	ContentType string
	SizeMb      float64
}

// UpdatePatch describes the fields an asset replacement overwrites.
type UpdatePatch struct {
	NftID       int64
	FolderID    int64
	IpfsHash    string
	SizeMb      float64
	ContentType string
	Name        string
	Description string
}
