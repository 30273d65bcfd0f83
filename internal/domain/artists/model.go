package artists

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is the public artist record. One account owns at most one profile;
// the unique index on account_id holds that convention.
type Profile struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID uint   `gorm:"not null;uniqueIndex:idx_artist_profiles_account" json:"account_id"`

	DisplayName    string `gorm:"not null;index" json:"display_name"`
	Specialty      string `json:"specialty,omitempty"`
	Intro          string `json:"intro,omitempty"`
	Philosophy     string `json:"philosophy,omitempty"`
	AvatarURL      string `json:"avatar_url,omitempty"`
	IsVerified     bool   `gorm:"not null;default:false" json:"is_verified"`
	FollowersCount int    `gorm:"not null;default:0" json:"followers_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "artist_profiles"
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
