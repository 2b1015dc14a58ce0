package preferences

import (
	"time"

	"github.com/google/uuid"

	"github.com/venuehub/venuehub-backend/pkg/db/models"
	"github.com/venuehub/venuehub-backend/pkg/enums"
	"github.com/venuehub/venuehub-backend/pkg/filtering"
)

const (
	VisibilityVisible = "visible"
	VisibilityHidden  = "hidden"
)

type PreferenceDTO struct {
	ID          uuid.UUID            `json:"id"`
	Name        string               `json:"name"`
	Type        enums.PreferenceType `json:"type"`
	Description *string              `json:"description,omitempty"`
	IsVisible   bool                 `json:"is_visible"`
	Visibility  string               `json:"visibility"`
	SortOrder   int                  `json:"sort_order"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

func FromModel(p *models.Preference) *PreferenceDTO {
	if p == nil {
		return nil
	}
	visibility := VisibilityHidden
	if p.IsVisible {
		visibility = VisibilityVisible
	}
	return &PreferenceDTO{
		ID:          p.ID,
		Name:        p.Name,
		Type:        p.Type,
		Description: p.Description,
		IsVisible:   p.IsVisible,
		Visibility:  visibility,
		SortOrder:   p.SortOrder,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type CreatePreferenceInput struct {
	Name        string
	Type        enums.PreferenceType
	Description *string
	IsVisible   bool
	SortOrder   int
}

type UpdatePreferenceInput struct {
	Name        *string
	Type        *enums.PreferenceType
	Description *string
	IsVisible   *bool
	SortOrder   *int
}

// Stats summarises a preference list. ByType always carries every type.
type Stats struct {
	Total   int            `json:"total"`
	Visible int            `json:"visible"`
	Hidden  int            `json:"hidden"`
	ByType  map[string]int `json:"by_type"`
}

type ListResult struct {
	Items          []PreferenceDTO           `json:"items"`
	Stats          Stats                     `json:"stats"`
	AppliedFilters []filtering.AppliedFilter `json:"applied_filters,omitempty"`
	Unfiltered     int                       `json:"unfiltered_total"`
}
