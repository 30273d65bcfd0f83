package graph

import (
	"cradle-api/internal/domain/apperr"
	"cradle-api/internal/domain/artists"
	"cradle-api/internal/domain/exhibitions"
	"cradle-api/internal/domain/partners"
	"cradle-api/internal/domain/tags"
	"cradle-api/internal/domain/works"

	"gorm.io/gorm"
)

// DeleteCollectionCascade detaches every artwork from the collection, then
// deletes it. Artworks are never deleted.
func DeleteCollectionCascade(db *gorm.DB, id string) error {
	if !validID(id) {
		return apperr.NotFound("collection %s not found", id)
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var c works.Collection
		if err := forUpdate(tx).First(&c, "id = ?", id).Error; err != nil {
			return apperr.FromDB(err, "collection")
		}

		// UpdateColumn keeps updated_at of the artworks untouched
		if err := tx.Model(&works.Artwork{}).
			Where("collection_id = ?", id).
			UpdateColumn("collection_id", nil).Error; err != nil {
			return apperr.Upstream(err, "detach artworks from collection")
		}

		if err := tx.Delete(&works.Collection{}, "id = ?", id).Error; err != nil {
			return apperr.Upstream(err, "delete collection")
		}
		return nil
	})
}

// DeleteArtworkCascade removes the artwork's tag and exhibition links, then
// the artwork. Exhibitions it was shown in are renumbered and the derived
// counters are refreshed.
func DeleteArtworkCascade(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		a, err := lockArtwork(tx, id)
		if err != nil {
			return err
		}

		var tagIDs []string
		if err := tx.Model(&works.ArtworkTag{}).Where("artwork_id = ?", id).Pluck("tag_id", &tagIDs).Error; err != nil {
			return apperr.Upstream(err, "load artwork tags")
		}
		var exhibitionIDs []string
		if err := tx.Model(&exhibitions.ExhibitionArtwork{}).Where("artwork_id = ?", id).Pluck("exhibition_id", &exhibitionIDs).Error; err != nil {
			return apperr.Upstream(err, "load artwork exhibitions")
		}

		if err := tx.Where("artwork_id = ?", id).Delete(&works.ArtworkTag{}).Error; err != nil {
			return apperr.Upstream(err, "delete artwork tags")
		}
		if err := tx.Where("artwork_id = ?", id).Delete(&exhibitions.ExhibitionArtwork{}).Error; err != nil {
			return apperr.Upstream(err, "delete exhibition links")
		}
		for _, exID := range exhibitionIDs {
			if err := renumberExhibition(tx, exID); err != nil {
				return err
			}
		}

		if err := tx.Delete(&works.Artwork{}, "id = ?", id).Error; err != nil {
			return apperr.Upstream(err, "delete artwork")
		}

		if err := RefreshTagUsage(tx, tagIDs...); err != nil {
			return err
		}
		if a.CollectionID != nil {
			return RefreshCollectionCounts(tx, *a.CollectionID)
		}
		return nil
	})
}

// DeleteArtistProfile deletes only the profile. Artworks, collections and
// the owning account stay.
func DeleteArtistProfile(db *gorm.DB, id string) (artists.Profile, error) {
	var p artists.Profile
	if !validID(id) {
		return p, apperr.NotFound("artist %s not found", id)
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&p, "id = ?", id).Error; err != nil {
			return apperr.FromDB(err, "artist")
		}
		if err := tx.Delete(&artists.Profile{}, "id = ?", id).Error; err != nil {
			return apperr.Upstream(err, "delete artist")
		}
		return nil
	})
	return p, err
}

// DeleteTagCascade removes the tag from every artwork, then the tag.
func DeleteTagCascade(db *gorm.DB, id string) error {
	if !validID(id) {
		return apperr.NotFound("tag %s not found", id)
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var t tags.Tag
		if err := forUpdate(tx).First(&t, "id = ?", id).Error; err != nil {
			return apperr.FromDB(err, "tag")
		}
		if err := tx.Where("tag_id = ?", id).Delete(&works.ArtworkTag{}).Error; err != nil {
			return apperr.Upstream(err, "delete tag links")
		}
		if err := tx.Delete(&tags.Tag{}, "id = ?", id).Error; err != nil {
			return apperr.Upstream(err, "delete tag")
		}
		return nil
	})
}

// DeleteExhibition deletes a platform or partner exhibition, whichever the
// id resolves to. Platform exhibitions lose their artwork links first; the
// artworks themselves stay.
func DeleteExhibition(db *gorm.DB, id string) (exhibitions.OwnerType, error) {
	var owner exhibitions.OwnerType
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		owner, err = ResolveExhibitionOwnerType(tx, id)
		if err != nil {
			return err
		}

		switch owner {
		case exhibitions.OwnerPlatform:
			if err := tx.Where("exhibition_id = ?", id).Delete(&exhibitions.ExhibitionArtwork{}).Error; err != nil {
				return apperr.Upstream(err, "delete exhibition links")
			}
			if err := tx.Delete(&exhibitions.Exhibition{}, "id = ?", id).Error; err != nil {
				return apperr.Upstream(err, "delete exhibition")
			}
		case exhibitions.OwnerPartner:
			if err := tx.Delete(&exhibitions.PartnerExhibition{}, "id = ?", id).Error; err != nil {
				return apperr.Upstream(err, "delete partner exhibition")
			}
		}
		return nil
	})
	return owner, err
}

// DeletePartner refuses while partner exhibitions still point at the
// partner.
func DeletePartner(db *gorm.DB, id string) error {
	if !validID(id) {
		return apperr.NotFound("partner %s not found", id)
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var p partners.Partner
		if err := forUpdate(tx).First(&p, "id = ?", id).Error; err != nil {
			return apperr.FromDB(err, "partner")
		}

		var n int64
		if err := tx.Model(&exhibitions.PartnerExhibition{}).Where("partner_id = ?", id).Count(&n).Error; err != nil {
			return apperr.Upstream(err, "count partner exhibitions")
		}
		if n > 0 {
			return apperr.Referential("partner %s still has %d exhibition(s)", id, n)
		}

		if err := tx.Delete(&partners.Partner{}, "id = ?", id).Error; err != nil {
			return apperr.Upstream(err, "delete partner")
		}
		return nil
	})
}
