package users

import (
	"time"

	"cradle-api/internal/domain/access"
)

type MeResponse struct {
	User   UserDTO    `json:"user"`
	Artist *ArtistDTO `json:"artist"`
	Access AccessDTO  `json:"access"`
}

/* ---------- USER ---------- */

type UserDTO struct {
	ID           uint        `json:"id"`
	Email        string      `json:"email"`
	Username     string      `json:"username"`
	Role         access.Role `json:"role"`
	AuthProvider string      `json:"auth_provider"`
	AvatarURL    *string     `json:"avatar_url"`
	IsVerified   bool        `json:"is_verified"`
	HasPassword  bool        `json:"has_password"`
	CreatedAt    time.Time   `json:"created_at"`
}

/* ---------- ARTIST ---------- */

type ArtistDTO struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	IsVerified  bool   `json:"is_verified"`
}

/* ---------- ACCESS ---------- */

type AccessDTO struct {
	Navigation   []access.Collection                      `json:"navigation"`
	Capabilities map[access.Collection][]access.Operation `json:"capabilities"`
	CanUpload    bool                                     `json:"can_upload"`
}
