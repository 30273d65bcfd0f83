package works

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Artwork struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	// no FK constraints: deleting a profile or collection must never cascade
	ArtistID     string  `gorm:"type:uuid;not null;index" json:"artist_id"`
	CollectionID *string `gorm:"type:uuid;index" json:"collection_id"`

	Title       string   `gorm:"not null" json:"title"`
	Description string   `json:"description,omitempty"`
	Category    Category `gorm:"type:varchar(20);not null;default:'painting';index" json:"category"`
	Medium      string   `json:"medium,omitempty"`
	Size        string   `json:"size,omitempty"`
	Year        int      `json:"year,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	Status      Status   `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`

	ViewsCount int `gorm:"not null;default:0" json:"views_count"`
	LikesCount int `gorm:"not null;default:0" json:"likes_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Artwork) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// ArtworkTag is the artwork<->tag join row.
type ArtworkTag struct {
	ArtworkID string    `gorm:"type:uuid;primaryKey" json:"artwork_id"`
	TagID     string    `gorm:"type:uuid;primaryKey;index" json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}
