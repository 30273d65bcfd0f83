package siteapi

import (
	"cradle-api/internal/domain/artists"
	"cradle-api/internal/domain/exhibitions"
	"cradle-api/internal/domain/partners"
	"cradle-api/internal/domain/works"
)

// PublicAccount is the slice of an account the public site may show.
// Emails never leave the admin surface.
type PublicAccount struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type ArtistDTO struct {
	artists.Profile
	Account *PublicAccount `json:"account,omitempty"`
}

type CollectionDTO struct {
	works.Collection
	Artist *ArtistDTO `json:"artist,omitempty"`
}

type ArtworkSummary struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Category works.Category `json:"category"`
}

type DailyResponse struct {
	Exhibition *exhibitions.Exhibition `json:"exhibition"`
	DateKey    string                  `json:"date_key"`
}

type HomeResponse struct {
	Daily       *exhibitions.Exhibition `json:"daily_exhibition"`
	Collections []CollectionDTO         `json:"collections"`
	Artists     []ArtistDTO             `json:"artists"`
	Partners    []partners.Partner      `json:"partners"`
}

type CollectionPageResponse struct {
	Collection CollectionDTO   `json:"collection"`
	Artworks   []works.Artwork `json:"artworks"`
}

type ArtistPageResponse struct {
	Artist         ArtistDTO                `json:"artist"`
	Collections    []works.Collection       `json:"collections"`
	Artworks       []ArtworkSummary         `json:"artworks"`
	CategoryCounts map[works.Category]int64 `json:"category_counts"`
}

type PartnerPageResponse struct {
	Partner     partners.Partner                `json:"partner"`
	Exhibitions []exhibitions.PartnerExhibition `json:"exhibitions"`
}
