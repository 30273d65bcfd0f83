package works

import (
	"cradle-api/internal/domain/apperr"
	"cradle-api/internal/domain/artists"
	"cradle-api/internal/domain/works"

	"gorm.io/gorm"
)

type ArtworkDTO struct {
	works.Artwork
	ArtistName      string   `json:"artist_name,omitempty"`
	CollectionTitle string   `json:"collection_title,omitempty"`
	TagIDs          []string `json:"tag_ids,omitempty"`
}

type CollectionDTO struct {
	works.Collection
	ArtistName string `json:"artist_name,omitempty"`
}

type CollectionDetailDTO struct {
	CollectionDTO
	Artworks []works.Artwork `json:"artworks"`
}

// artistNames maps profile id to display name. Profiles that were deleted
// are simply absent.
func artistNames(db *gorm.DB, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []artists.Profile
	if err := db.Select("id", "display_name").Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, apperr.Upstream(err, "load artist names")
	}
	for _, p := range rows {
		out[p.ID] = p.DisplayName
	}
	return out, nil
}

func collectionTitles(db *gorm.DB, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []works.Collection
	if err := db.Select("id", "title").Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, apperr.Upstream(err, "load collection titles")
	}
	for _, c := range rows {
		out[c.ID] = c.Title
	}
	return out, nil
}

func toArtworkDTOs(db *gorm.DB, list []works.Artwork) ([]ArtworkDTO, error) {
	var artistIDs, collectionIDs []string
	for _, a := range list {
		artistIDs = append(artistIDs, a.ArtistID)
		if a.CollectionID != nil {
			collectionIDs = append(collectionIDs, *a.CollectionID)
		}
	}
	names, err := artistNames(db, artistIDs)
	if err != nil {
		return nil, err
	}
	titles, err := collectionTitles(db, collectionIDs)
	if err != nil {
		return nil, err
	}

	out := make([]ArtworkDTO, 0, len(list))
	for _, a := range list {
		dto := ArtworkDTO{Artwork: a, ArtistName: names[a.ArtistID]}
		if a.CollectionID != nil {
			dto.CollectionTitle = titles[*a.CollectionID]
		}
		out = append(out, dto)
	}
	return out, nil
}

func toCollectionDTOs(db *gorm.DB, list []works.Collection) ([]CollectionDTO, error) {
	ids := make([]string, 0, len(list))
	for _, c := range list {
		ids = append(ids, c.ArtistID)
	}
	names, err := artistNames(db, ids)
	if err != nil {
		return nil, err
	}
	out := make([]CollectionDTO, 0, len(list))
	for _, c := range list {
		out = append(out, CollectionDTO{Collection: c, ArtistName: names[c.ArtistID]})
	}
	return out, nil
}
