package graph

import (
	"errors"

	"cradle-api/internal/domain/apperr"
	"cradle-api/internal/domain/artists"
	"cradle-api/internal/domain/exhibitions"
	"cradle-api/internal/domain/partners"
	"cradle-api/internal/domain/works"

	"gorm.io/gorm"
)

// ResolveExhibitionOwnerType probes the platform table first, then the
// partner table. This is the only place that knows exhibitions are split
// across two tables.
func ResolveExhibitionOwnerType(db *gorm.DB, id string) (exhibitions.OwnerType, error) {
	if !validID(id) {
		return "", apperr.NotFound("exhibition %s not found", id)
	}

	var n int64
	if err := db.Model(&exhibitions.Exhibition{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return "", apperr.Upstream(err, "probe exhibitions")
	}
	if n > 0 {
		return exhibitions.OwnerPlatform, nil
	}

	if err := db.Model(&exhibitions.PartnerExhibition{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return "", apperr.Upstream(err, "probe partner exhibitions")
	}
	if n > 0 {
		return exhibitions.OwnerPartner, nil
	}

	return "", apperr.NotFound("exhibition %s not found", id)
}

// LoadExhibition returns the exhibition behind id as a tagged reference.
func LoadExhibition(db *gorm.DB, id string) (exhibitions.Ref, error) {
	if !validID(id) {
		return exhibitions.Ref{}, apperr.NotFound("exhibition %s not found", id)
	}

	var e exhibitions.Exhibition
	err := db.First(&e, "id = ?", id).Error
	if err == nil {
		return exhibitions.PlatformRef(e), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return exhibitions.Ref{}, apperr.Upstream(err, "load exhibition")
	}

	var pe exhibitions.PartnerExhibition
	err = db.First(&pe, "id = ?", id).Error
	if err == nil {
		return exhibitions.PartnerRef(pe), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return exhibitions.Ref{}, apperr.Upstream(err, "load partner exhibition")
	}

	return exhibitions.Ref{}, apperr.NotFound("exhibition %s not found", id)
}

// ValidateArtworkCollection checks that an artwork owned by artistID may be
// placed in collectionID. An empty collection id means "no collection".
func ValidateArtworkCollection(db *gorm.DB, artistID string, collectionID *string) error {
	if collectionID == nil || *collectionID == "" {
		return nil
	}
	if !validID(*collectionID) {
		return apperr.NotFound("collection %s not found", *collectionID)
	}

	var c works.Collection
	if err := db.Select("id", "artist_id").First(&c, "id = ?", *collectionID).Error; err != nil {
		return apperr.FromDB(err, "collection")
	}
	if c.ArtistID != artistID {
		return apperr.Referential("collection %s belongs to another artist", c.ID)
	}
	return nil
}

// ValidateArtist checks that the artist profile exists.
func ValidateArtist(db *gorm.DB, artistID string) error {
	missing, err := missingIDs(db, &artists.Profile{}, []string{artistID})
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return apperr.NotFound("artist %s not found", artistID)
	}
	return nil
}

// ValidatePartner checks that the partner exists.
func ValidatePartner(db *gorm.DB, partnerID string) error {
	missing, err := missingIDs(db, &partners.Partner{}, []string{partnerID})
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return apperr.NotFound("partner %s not found", partnerID)
	}
	return nil
}
