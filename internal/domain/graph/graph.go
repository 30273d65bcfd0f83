package graph

/*
	Entity relationship graph
	-------------------------
	The database declares no cascades between artists, collections, artworks,
	tags and exhibitions. Every multi-step write that keeps those references
	consistent lives here and runs inside one transaction, with the parent row
	locked so two writers on the same entity serialize.

	Pass a context-bound db in (db.WithContext(ctx)); nested calls on a tx
	become savepoints.
*/

import (
	"cradle-api/internal/domain/apperr"
	"cradle-api/internal/domain/tags"
	"cradle-api/internal/domain/works"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdate row-locks the next SELECT. SQLite has no row locks and
// serializes writers on its own.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func lockArtwork(tx *gorm.DB, id string) (works.Artwork, error) {
	var a works.Artwork
	if !validID(id) {
		return a, apperr.NotFound("artwork %s not found", id)
	}
	if err := forUpdate(tx).First(&a, "id = ?", id).Error; err != nil {
		return a, apperr.FromDB(err, "artwork")
	}
	return a, nil
}

// missingIDs returns the ids in want that have no row in model's table.
func missingIDs(tx *gorm.DB, model any, want []string) ([]string, error) {
	valid := make([]string, 0, len(want))
	var missing []string
	for _, id := range want {
		if validID(id) {
			valid = append(valid, id)
		} else {
			missing = append(missing, id)
		}
	}
	if len(valid) == 0 {
		return missing, nil
	}

	var found []string
	if err := tx.Model(model).Where("id IN ?", valid).Pluck("id", &found).Error; err != nil {
		return nil, apperr.Upstream(err, "check references")
	}
	have := make(map[string]struct{}, len(found))
	for _, id := range found {
		have[id] = struct{}{}
	}
	for _, id := range valid {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// RefreshTagUsage recomputes usage_count for the given tags from the join
// table.
func RefreshTagUsage(tx *gorm.DB, tagIDs ...string) error {
	tagIDs = dedupe(tagIDs)
	if len(tagIDs) == 0 {
		return nil
	}
	err := tx.Model(&tags.Tag{}).
		Where("id IN ?", tagIDs).
		UpdateColumn("usage_count", gorm.Expr("(SELECT COUNT(*) FROM artwork_tags WHERE artwork_tags.tag_id = tags.id)")).
		Error
	if err != nil {
		return apperr.Upstream(err, "refresh tag usage")
	}
	return nil
}

// RefreshCollectionCounts recomputes artworks_count for the given
// collections. Empty ids are skipped so callers can pass optional refs.
func RefreshCollectionCounts(tx *gorm.DB, collectionIDs ...string) error {
	ids := make([]string, 0, len(collectionIDs))
	for _, id := range dedupe(collectionIDs) {
		if id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	err := tx.Model(&works.Collection{}).
		Where("id IN ?", ids).
		UpdateColumn("artworks_count", gorm.Expr("(SELECT COUNT(*) FROM artworks WHERE artworks.collection_id = collections.id)")).
		Error
	if err != nil {
		return apperr.Upstream(err, "refresh collection counts")
	}
	return nil
}
