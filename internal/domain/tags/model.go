package tags

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category string

const (
	CategoryStyle     Category = "style"
	CategoryColor     Category = "color"
	CategoryMood      Category = "mood"
	CategoryTheme     Category = "theme"
	CategoryTechnique Category = "technique"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryStyle, CategoryColor, CategoryMood, CategoryTheme, CategoryTechnique:
		return true
	}
	return false
}

// Tag is shared by every artist; nobody owns it.
type Tag struct {
	ID         string   `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string   `gorm:"not null" json:"name"`
	NameEN     string   `gorm:"column:name_en" json:"name_en,omitempty"`
	Category   Category `gorm:"type:varchar(20);not null;index" json:"category"`
	UsageCount int      `gorm:"not null;default:0" json:"usage_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
