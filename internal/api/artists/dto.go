package artists

import (
	"time"

	"cradle-api/internal/domain/artists"
)

type CreateArtistRequest struct {
	// AccountID attaches the profile to an existing account; otherwise a new
	// artist account is created from Email/Username/Password.
	AccountID uint   `json:"account_id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`

	DisplayName string `json:"display_name" binding:"required"`
	Specialty   string `json:"specialty"`
	Intro       string `json:"intro"`
	Philosophy  string `json:"philosophy"`
	AvatarURL   string `json:"avatar_url"`
	IsVerified  bool   `json:"is_verified"`
}

type UpdateArtistRequest struct {
	DisplayName *string `json:"display_name"`
	Specialty   *string `json:"specialty"`
	Intro       *string `json:"intro"`
	Philosophy  *string `json:"philosophy"`
	AvatarURL   *string `json:"avatar_url"`
	IsVerified  *bool   `json:"is_verified"`

	Username *string `json:"username"`
}

type AccountDTO struct {
	ID         uint      `json:"id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

type StatsDTO struct {
	Artworks          int64 `json:"artworks"`
	PublishedArtworks int64 `json:"published_artworks"`
	Collections       int64 `json:"collections"`
}

type ArtistDTO struct {
	artists.Profile
	Account *AccountDTO `json:"account,omitempty"`
}

type ArtistDetailDTO struct {
	ArtistDTO
	Stats StatsDTO `json:"stats"`
}
