package entities

import (
	"time"

	"github.com/google/uuid"
)

// Folder represents a ledger collection. Its primary key is assigned from the
// collection id returned by the ledger on creation, so the insert path never
// relies on autoincrement.
type Folder struct {
	ID          int64     `gorm:"primaryKey"`
	UUID        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	ClientID    int64     `gorm:"index;not null"`
	Client      *Client   `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text;not null"`
	LogoHash    string    `gorm:"type:varchar(100);not null"`
	DateAdded   time.Time `gorm:"autoCreateTime"`
	LastUpdated time.Time `gorm:"autoUpdateTime"`
}

func (Folder) TableName() string {
	return "folders"
}

// Asset represents a ledger token backed by pinned content. NftID changes on
// replacement: the old token is burned and a new one minted into the same row.
type Asset struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	UUID        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	ClientID    int64     `gorm:"index;not null"`
	Client      *Client   `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	FolderID    int64     `gorm:"index;not null"`
	Folder      *Folder   `gorm:"foreignKey:FolderID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	NftID       int64     `gorm:"uniqueIndex;not null"`
	IpfsHash    string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	SizeMb      float64   `gorm:"not null"`
	ContentType string    `gorm:"type:varchar(128);not null"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text;not null"`
	DateAdded   time.Time `gorm:"autoCreateTime"`
	LastUpdated time.Time `gorm:"autoUpdateTime"`
}

func (Asset) TableName() string {
	return "assets"
}
