package works

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Collection struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	ArtistID string `gorm:"type:uuid;not null;index" json:"artist_id"`

	Title       string `gorm:"not null" json:"title"`
	TitleEN     string `gorm:"column:title_en" json:"title_en,omitempty"`
	Description string `json:"description,omitempty"`
	CoverImage  string `json:"cover_image,omitempty"`
	Status      Status `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`

	ArtworksCount int `gorm:"not null;default:0" json:"artworks_count"`
	ViewsCount    int `gorm:"not null;default:0" json:"views_count"`
	LikesCount    int `gorm:"not null;default:0" json:"likes_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Collection) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
