package exhibitions

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Type only applies to platform exhibitions.
type Type string

const (
	TypeRegular Type = "regular"
	TypeDaily   Type = "daily"
)

func (t Type) Valid() bool {
	return t == TypeRegular || t == TypeDaily
}

type Status string

const (
	StatusDraft    Status = "draft"
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusArchived:
		return true
	}
	return false
}

// Exhibition is run by the platform itself.
type Exhibition struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	TitleEN     string     `gorm:"column:title_en" json:"title_en,omitempty"`
	Description string     `json:"description,omitempty"`
	CoverImage  string     `json:"cover_image,omitempty"`
	Type        Type       `gorm:"type:varchar(20);not null;default:'regular';index" json:"type"`
	StartDate   *time.Time `gorm:"type:date" json:"start_date,omitempty"`
	EndDate     *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	Location    string     `json:"location,omitempty"`
	Status      Status     `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *Exhibition) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// ExhibitionArtwork links an artwork into a platform exhibition. OrderNum is
// 1-based and contiguous within one exhibition.
type ExhibitionArtwork struct {
	ExhibitionID string `gorm:"type:uuid;primaryKey" json:"exhibition_id"`
	ArtworkID    string `gorm:"type:uuid;primaryKey;index" json:"artwork_id"`
	OrderNum     int    `gorm:"not null" json:"order_num"`
}

// PartnerExhibition is run by a partner. It lives in its own table and has
// no artwork relation.
type PartnerExhibition struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	PartnerID   string     `gorm:"type:uuid;not null;index" json:"partner_id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description,omitempty"`
	CoverImage  string     `json:"cover_image,omitempty"`
	StartDate   *time.Time `gorm:"type:date" json:"start_date,omitempty"`
	EndDate     *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	Location    string     `json:"location,omitempty"`
	Status      Status     `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *PartnerExhibition) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
