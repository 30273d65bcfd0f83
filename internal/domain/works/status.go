package works

// Status is the publication status of artworks and collections. Any value
// may be set from any other; there is no terminal state.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

type Category string

const (
	CategoryPainting   Category = "painting"
	CategoryPhoto      Category = "photo"
	CategoryLiterature Category = "literature"
	CategorySculpture  Category = "sculpture"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryPainting, CategoryPhoto, CategoryLiterature, CategorySculpture:
		return true
	}
	return false
}
