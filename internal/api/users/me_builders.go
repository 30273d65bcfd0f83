package users

import (
	"cradle-api/internal/domain/access"
	"cradle-api/internal/domain/accounts"
	"cradle-api/internal/domain/artists"
)

func BuildUserDTO(a accounts.Account) UserDTO {
	return UserDTO{
		ID:           a.ID,
		Email:        a.Email,
		Username:     a.Username,
		Role:         a.Role,
		AuthProvider: a.AuthProvider,
		AvatarURL:    stringPtrIfNotEmpty(a.AvatarURL),
		IsVerified:   a.IsVerified,
		HasPassword:  a.PasswordHash != nil && *a.PasswordHash != "",
		CreatedAt:    a.CreatedAt,
	}
}

func BuildArtistDTO(p *artists.Profile) *ArtistDTO {
	if p == nil {
		return nil
	}
	return &ArtistDTO{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		AvatarURL:   p.AvatarURL,
		IsVerified:  p.IsVerified,
	}
}

func BuildAccessDTO(actor access.Actor) AccessDTO {
	return AccessDTO{
		Navigation:   access.Navigable(actor),
		Capabilities: access.Capabilities(actor),
		CanUpload:    access.CanUpload(actor),
	}
}

func stringPtrIfNotEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
