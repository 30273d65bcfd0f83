package graph

import (
	"strings"

	"cradle-api/internal/domain/apperr"
	"cradle-api/internal/domain/exhibitions"
	"cradle-api/internal/domain/tags"
	"cradle-api/internal/domain/works"

	"gorm.io/gorm"
)

// ReplaceArtworkTags makes tagIDs the artwork's complete tag set. Duplicate
// ids collapse. Unknown tags fail the whole call.
func ReplaceArtworkTags(db *gorm.DB, artworkID string, tagIDs []string) error {
	tagIDs = dedupe(tagIDs)

	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := lockArtwork(tx, artworkID); err != nil {
			return err
		}

		missing, err := missingIDs(tx, &tags.Tag{}, tagIDs)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return apperr.NotFound("tag(s) not found: %s", strings.Join(missing, ", "))
		}

		var oldIDs []string
		if err := tx.Model(&works.ArtworkTag{}).Where("artwork_id = ?", artworkID).Pluck("tag_id", &oldIDs).Error; err != nil {
			return apperr.Upstream(err, "load artwork tags")
		}

		if err := tx.Where("artwork_id = ?", artworkID).Delete(&works.ArtworkTag{}).Error; err != nil {
			return apperr.Upstream(err, "delete artwork tags")
		}

		if len(tagIDs) > 0 {
			rows := make([]works.ArtworkTag, 0, len(tagIDs))
			for _, id := range tagIDs {
				rows = append(rows, works.ArtworkTag{ArtworkID: artworkID, TagID: id})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return apperr.Upstream(err, "insert artwork tags")
			}
		}

		return RefreshTagUsage(tx, append(oldIDs, tagIDs...)...)
	})
}

// ArtworkTagIDs returns the artwork's tag ids.
func ArtworkTagIDs(db *gorm.DB, artworkID string) ([]string, error) {
	ids := []string{}
	if !validID(artworkID) {
		return ids, nil
	}
	err := db.Model(&works.ArtworkTag{}).
		Where("artwork_id = ?", artworkID).
		Order("tag_id ASC").
		Pluck("tag_id", &ids).Error
	if err != nil {
		return nil, apperr.Upstream(err, "load artwork tags")
	}
	return ids, nil
}

// ReplaceExhibitionArtworks makes orderedArtworkIDs the exhibition's artwork
// list, numbering them 1..n in the given order. Only platform exhibitions
// carry artworks.
func ReplaceExhibitionArtworks(db *gorm.DB, exhibitionID string, orderedArtworkIDs []string) error {
	if !validID(exhibitionID) {
		return apperr.NotFound("exhibition %s not found", exhibitionID)
	}
	if len(dedupe(orderedArtworkIDs)) != len(orderedArtworkIDs) {
		return apperr.Invalid("artwork ids must be unique")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var e exhibitions.Exhibition
		if err := forUpdate(tx).First(&e, "id = ?", exhibitionID).Error; err != nil {
			return apperr.FromDB(err, "platform exhibition")
		}

		missing, err := missingIDs(tx, &works.Artwork{}, orderedArtworkIDs)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return apperr.NotFound("artwork(s) not found: %s", strings.Join(missing, ", "))
		}

		if err := tx.Where("exhibition_id = ?", exhibitionID).Delete(&exhibitions.ExhibitionArtwork{}).Error; err != nil {
			return apperr.Upstream(err, "delete exhibition links")
		}
		if len(orderedArtworkIDs) == 0 {
			return nil
		}

		rows := make([]exhibitions.ExhibitionArtwork, 0, len(orderedArtworkIDs))
		for i, id := range orderedArtworkIDs {
			rows = append(rows, exhibitions.ExhibitionArtwork{
				ExhibitionID: exhibitionID,
				ArtworkID:    id,
				OrderNum:     i + 1,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return apperr.Upstream(err, "insert exhibition links")
		}
		return nil
	})
}

// ExhibitionArtworkIDs returns the exhibition's artwork ids in display order.
func ExhibitionArtworkIDs(db *gorm.DB, exhibitionID string) ([]string, error) {
	ids := []string{}
	if !validID(exhibitionID) {
		return ids, nil
	}
	err := db.Model(&exhibitions.ExhibitionArtwork{}).
		Where("exhibition_id = ?", exhibitionID).
		Order("order_num ASC").
		Pluck("artwork_id", &ids).Error
	if err != nil {
		return nil, apperr.Upstream(err, "load exhibition artworks")
	}
	return ids, nil
}

// renumberExhibition closes gaps in order_num after a link was removed.
func renumberExhibition(tx *gorm.DB, exhibitionID string) error {
	var links []exhibitions.ExhibitionArtwork
	if err := tx.Where("exhibition_id = ?", exhibitionID).Order("order_num ASC").Find(&links).Error; err != nil {
		return apperr.Upstream(err, "load exhibition links")
	}
	for i, l := range links {
		if l.OrderNum == i+1 {
			continue
		}
		if err := tx.Model(&exhibitions.ExhibitionArtwork{}).
			Where("exhibition_id = ? AND artwork_id = ?", exhibitionID, l.ArtworkID).
			UpdateColumn("order_num", i+1).Error; err != nil {
			return apperr.Upstream(err, "renumber exhibition links")
		}
	}
	return nil
}
