package siteapi

import (
	"time"

	"cradle-api/internal/domain/accounts"
	"cradle-api/internal/domain/apperr"
	"cradle-api/internal/domain/artists"
	"cradle-api/internal/domain/exhibitions"
	"cradle-api/internal/domain/works"
	"cradle-api/internal/repository"

	"gorm.io/gorm"
)

const (
	homeCollections = 8
	homeArtists     = 6
	homePartners    = 4
)

// dailyCandidates is ordered by creation so the pick for a date is stable
// while the candidate set does not change.
func dailyCandidates(db *gorm.DB) ([]exhibitions.Exhibition, error) {
	var list []exhibitions.Exhibition
	err := db.Where("type = ? AND status = ?", exhibitions.TypeDaily, exhibitions.StatusActive).
		Order("created_at ASC").Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, apperr.Upstream(err, "load daily exhibitions")
	}
	return list, nil
}

func dailyExhibition(db *gorm.DB, now time.Time) (*exhibitions.Exhibition, error) {
	list, err := dailyCandidates(db)
	if err != nil {
		return nil, err
	}
	e, ok := exhibitions.SelectDaily(list, now)
	if !ok {
		return nil, nil
	}
	return &e, nil
}

// withAccounts attaches the public part of each profile's account.
func withAccounts(db *gorm.DB, profiles []artists.Profile) ([]ArtistDTO, error) {
	ids := make([]uint, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.AccountID)
	}
	byID := map[uint]accounts.Account{}
	if len(ids) > 0 {
		var rows []accounts.Account
		if err := db.Select("id", "username", "avatar_url").Where("id IN ?", ids).Find(&rows).Error; err != nil {
			return nil, apperr.Upstream(err, "load artist accounts")
		}
		for _, a := range rows {
			byID[a.ID] = a
		}
	}

	out := make([]ArtistDTO, 0, len(profiles))
	for _, p := range profiles {
		dto := ArtistDTO{Profile: p}
		if a, ok := byID[p.AccountID]; ok {
			dto.Account = &PublicAccount{Username: a.Username, AvatarURL: a.AvatarURL}
		}
		out = append(out, dto)
	}
	return out, nil
}

// withArtists attaches each collection's artist. A collection whose
// profile was deleted is shown without one.
func withArtists(db *gorm.DB, list []works.Collection) ([]CollectionDTO, error) {
	ids := make([]string, 0, len(list))
	for _, c := range list {
		ids = append(ids, c.ArtistID)
	}
	var profiles []artists.Profile
	if len(ids) > 0 {
		if err := db.Where("id IN ?", ids).Find(&profiles).Error; err != nil {
			return nil, apperr.Upstream(err, "load artists")
		}
	}
	dtos, err := withAccounts(db, profiles)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]ArtistDTO, len(dtos))
	for _, a := range dtos {
		byID[a.ID] = a
	}

	out := make([]CollectionDTO, 0, len(list))
	for _, c := range list {
		dto := CollectionDTO{Collection: c}
		if a, ok := byID[c.ArtistID]; ok {
			dto.Artist = &a
		}
		out = append(out, dto)
	}
	return out, nil
}

func publishedArtworks(db *gorm.DB) *gorm.DB {
	return db.Model(&works.Artwork{}).Scopes(repository.Published)
}

func categoryCounts(db *gorm.DB, artistID string) (map[works.Category]int64, error) {
	var rows []struct {
		Category works.Category
		N        int64
	}
	err := publishedArtworks(db).
		Select("category, COUNT(*) AS n").
		Where("artist_id = ?", artistID).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Upstream(err, "count artworks by category")
	}
	out := make(map[works.Category]int64, len(rows))
	for _, r := range rows {
		out[r.Category] = r.N
	}
	return out, nil
}
