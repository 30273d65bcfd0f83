package accounts

import (
	"time"

	"cradle-api/internal/domain/access"
)

const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// Account is a login identity. Its role is fixed at creation; the admin
// panel has no role change operation.
type Account struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Email        string      `gorm:"not null;uniqueIndex:idx_accounts_email" json:"email"`
	Username     string      `json:"username"`
	PasswordHash *string     `json:"-"`
	AuthProvider string      `gorm:"type:varchar(20);not null;default:'local'" json:"auth_provider"`
	GoogleSub    *string     `gorm:"uniqueIndex:idx_accounts_google_sub" json:"-"`
	Role         access.Role `gorm:"type:varchar(20);not null;index" json:"role"`
	AvatarURL    string      `json:"avatar_url,omitempty"`
	IsVerified   bool        `gorm:"not null;default:false" json:"is_verified"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
