package exhibitions

import (
	"strings"
	"time"

	"cradle-api/internal/domain/apperr"
	"cradle-api/internal/domain/exhibitions"
)

const dateLayout = "2006-01-02"

// ExhibitionRequest serves create and update. On update nil fields are left
// unchanged; an empty date string clears the date.
type ExhibitionRequest struct {
	OwnerType   string   `json:"owner_type"`
	PartnerID   *string  `json:"partner_id"`
	Title       *string  `json:"title"`
	TitleEN     *string  `json:"title_en"`
	Description *string  `json:"description"`
	CoverImage  *string  `json:"cover_image"`
	Type        *string  `json:"type"`
	StartDate   *string  `json:"start_date"`
	EndDate     *string  `json:"end_date"`
	Location    *string  `json:"location"`
	Status      *string  `json:"status"`
	ArtworkIDs  []string `json:"artwork_ids"`
}

type ReplaceArtworksRequest struct {
	ArtworkIDs []string `json:"artwork_ids"`
}

// ExhibitionDTO flattens both exhibition kinds into one shape tagged with
// owner_type.
type ExhibitionDTO struct {
	ID          string                `json:"id"`
	OwnerType   exhibitions.OwnerType `json:"owner_type"`
	PartnerID   string                `json:"partner_id,omitempty"`
	PartnerName string                `json:"partner_name,omitempty"`
	Title       string                `json:"title"`
	TitleEN     string                `json:"title_en,omitempty"`
	Description string                `json:"description,omitempty"`
	CoverImage  string                `json:"cover_image,omitempty"`
	Type        exhibitions.Type      `json:"type,omitempty"`
	StartDate   *time.Time            `json:"start_date,omitempty"`
	EndDate     *time.Time            `json:"end_date,omitempty"`
	Location    string                `json:"location,omitempty"`
	Status      exhibitions.Status    `json:"status"`
	ArtworkIDs  []string              `json:"artwork_ids,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

func platformDTO(e exhibitions.Exhibition) ExhibitionDTO {
	return ExhibitionDTO{
		ID:          e.ID,
		OwnerType:   exhibitions.OwnerPlatform,
		Title:       e.Title,
		TitleEN:     e.TitleEN,
		Description: e.Description,
		CoverImage:  e.CoverImage,
		Type:        e.Type,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		Location:    e.Location,
		Status:      e.Status,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func partnerDTO(e exhibitions.PartnerExhibition, partnerName string) ExhibitionDTO {
	return ExhibitionDTO{
		ID:          e.ID,
		OwnerType:   exhibitions.OwnerPartner,
		PartnerID:   e.PartnerID,
		PartnerName: partnerName,
		Title:       e.Title,
		Description: e.Description,
		CoverImage:  e.CoverImage,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		Location:    e.Location,
		Status:      e.Status,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// ---------- field application

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func setDate(dst **time.Time, v *string, field string) error {
	if v == nil {
		return nil
	}
	if *v == "" {
		*dst = nil
		return nil
	}
	t, err := time.Parse(dateLayout, *v)
	if err != nil {
		return apperr.Invalid("%s must be YYYY-MM-DD", field)
	}
	*dst = &t
	return nil
}

func checkCommon(title string, status exhibitions.Status, start, end *time.Time) error {
	if title == "" {
		return apperr.Invalid("title is required")
	}
	if !status.Valid() {
		return apperr.Invalid("unknown exhibition status %q", status)
	}
	if start != nil && end != nil && end.Before(*start) {
		return apperr.Invalid("end_date is before start_date")
	}
	return nil
}

func (r ExhibitionRequest) applyPlatform(e *exhibitions.Exhibition) error {
	setString(&e.Title, r.Title)
	setString(&e.TitleEN, r.TitleEN)
	setString(&e.Description, r.Description)
	setString(&e.CoverImage, r.CoverImage)
	setString(&e.Location, r.Location)
	if r.Type != nil {
		e.Type = exhibitions.Type(*r.Type)
	}
	if r.Status != nil {
		e.Status = exhibitions.Status(*r.Status)
	}
	if err := setDate(&e.StartDate, r.StartDate, "start_date"); err != nil {
		return err
	}
	if err := setDate(&e.EndDate, r.EndDate, "end_date"); err != nil {
		return err
	}
	if !e.Type.Valid() {
		return apperr.Invalid("unknown exhibition type %q", e.Type)
	}
	return checkCommon(e.Title, e.Status, e.StartDate, e.EndDate)
}

func (r ExhibitionRequest) applyPartner(e *exhibitions.PartnerExhibition) error {
	if r.TitleEN != nil || r.Type != nil {
		return apperr.Invalid("partner exhibitions have no title_en or type")
	}
	setString(&e.Title, r.Title)
	setString(&e.Description, r.Description)
	setString(&e.CoverImage, r.CoverImage)
	setString(&e.Location, r.Location)
	if r.PartnerID != nil {
		e.PartnerID = *r.PartnerID
	}
	if r.Status != nil {
		e.Status = exhibitions.Status(*r.Status)
	}
	if err := setDate(&e.StartDate, r.StartDate, "start_date"); err != nil {
		return err
	}
	if err := setDate(&e.EndDate, r.EndDate, "end_date"); err != nil {
		return err
	}
	if e.PartnerID == "" {
		return apperr.Invalid("partner_id is required")
	}
	return checkCommon(e.Title, e.Status, e.StartDate, e.EndDate)
}
