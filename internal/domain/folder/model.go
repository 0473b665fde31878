package folder

import (
	"time"

	"github.com/google/uuid"
)

// Folder groups a client's assets and mirrors a ledger collection. Its ID is
// the remote collection id, assigned at creation time rather than by the
// database.
type Folder struct {
	ID          int64     `json:"collection_id"`
	UUID        uuid.UUID `json:"uuid"`
	ClientID    int64     `json:"-"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	LogoHash    string    `json:"logo_hash"`
	DateAdded   time.Time `json:"date_added"`
	LastUpdated time.Time `json:"last_updated"`
}

// UpsertParams carries one folder mutation. A nil FolderUUID creates a new
// folder (logo required); otherwise only name and description are updated.
type UpsertParams struct {
	FolderUUID      *uuid.UUID
	Name            string
	Description     string
	Logo            []byte
	LogoFilename    string
	LogoContentType string
}
