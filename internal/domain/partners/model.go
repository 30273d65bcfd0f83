package partners

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Type string

const (
	TypeGallery Type = "gallery"
	TypeMuseum  Type = "museum"
	TypeStudio  Type = "studio"
	TypeAcademy Type = "academy"
)

func (t Type) Valid() bool {
	switch t {
	case TypeGallery, TypeMuseum, TypeStudio, TypeAcademy:
		return true
	}
	return false
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

type Partner struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	Name   string `gorm:"not null" json:"name"`
	NameEN string `gorm:"column:name_en" json:"name_en,omitempty"`
	Type   Type   `gorm:"type:varchar(20);not null;default:'gallery'" json:"type"`

	Description  string `json:"description,omitempty"`
	City         string `json:"city,omitempty"`
	Address      string `json:"address,omitempty"`
	Website      string `json:"website,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
	LogoURL      string `json:"logo_url,omitempty"`

	Status Status `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Partner) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
