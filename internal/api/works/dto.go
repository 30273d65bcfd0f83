package works

// ---------- requests

type CreateArtworkRequest struct {
	ArtistID     string   `json:"artist_id"`
	CollectionID *string  `json:"collection_id"`
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	Category     string   `json:"category" binding:"required"`
	Medium       string   `json:"medium"`
	Size         string   `json:"size"`
	Year         int      `json:"year"`
	ImageURL     string   `json:"image_url"`
	Status       string   `json:"status"`
	TagIDs       []string `json:"tag_ids"`
}

// UpdateArtworkRequest: nil fields are left unchanged. An empty
// collection_id detaches the artwork; a nil tag_ids keeps the tags.
type UpdateArtworkRequest struct {
	ArtistID     *string  `json:"artist_id"`
	CollectionID *string  `json:"collection_id"`
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Category     *string  `json:"category"`
	Medium       *string  `json:"medium"`
	Size         *string  `json:"size"`
	Year         *int     `json:"year"`
	ImageURL     *string  `json:"image_url"`
	Status       *string  `json:"status"`
	TagIDs       []string `json:"tag_ids"`
}

type ReplaceTagsRequest struct {
	TagIDs []string `json:"tag_ids"`
}

type CreateCollectionRequest struct {
	ArtistID    string `json:"artist_id"`
	Title       string `json:"title" binding:"required"`
	TitleEN     string `json:"title_en"`
	Description string `json:"description"`
	CoverImage  string `json:"cover_image"`
	Status      string `json:"status"`
}

type UpdateCollectionRequest struct {
	ArtistID    *string `json:"artist_id"`
	Title       *string `json:"title"`
	TitleEN     *string `json:"title_en"`
	Description *string `json:"description"`
	CoverImage  *string `json:"cover_image"`
	Status      *string `json:"status"`
}
