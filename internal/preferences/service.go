package preferences

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuehub/venuehub-backend/internal/report"
	"github.com/venuehub/venuehub-backend/pkg/db/models"
	pkgerrors "github.com/venuehub/venuehub-backend/pkg/errors"
	"github.com/venuehub/venuehub-backend/pkg/filtering"
)

const maxNameLength = 80

type preferenceRepository interface {
	Create(ctx context.Context, pref *models.Preference) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Preference, error)
	Update(ctx context.Context, pref *models.Preference) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, visibleOnly bool) ([]models.Preference, error)
}

// Service exposes preference curation and the customer-facing list.
type Service interface {
	Create(ctx context.Context, input CreatePreferenceInput) (*PreferenceDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*PreferenceDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdatePreferenceInput) (*PreferenceDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, criteria filtering.Criteria) (*ListResult, error)
	Export(ctx context.Context, criteria filtering.Criteria) (*report.Document, error)
	ListVisible(ctx context.Context) ([]PreferenceDTO, error)
}

type service struct {
	repo preferenceRepository
	now  func() time.Time
}

// NewService builds a preference service.
func NewService(repo preferenceRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("preference repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, input CreatePreferenceInput) (*PreferenceDTO, error) {
	pref := &models.Preference{
		Name:        strings.TrimSpace(input.Name),
		Type:        input.Type,
		Description: trimOptional(input.Description),
		IsVisible:   input.IsVisible,
		SortOrder:   input.SortOrder,
	}
	if err := validate(pref); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, pref); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create preference")
	}
	return FromModel(pref), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*PreferenceDTO, error) {
	pref, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(pref), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdatePreferenceInput) (*PreferenceDTO, error) {
	pref, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		pref.Name = strings.TrimSpace(*input.Name)
	}
	if input.Type != nil {
		pref.Type = *input.Type
	}
	if input.Description != nil {
		pref.Description = trimOptional(input.Description)
	}
	if input.IsVisible != nil {
		pref.IsVisible = *input.IsVisible
	}
	if input.SortOrder != nil {
		pref.SortOrder = *input.SortOrder
	}
	if err := validate(pref); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, pref); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update preference")
	}
	return FromModel(pref), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "preference not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete preference")
	}
	return nil
}

func (s *service) List(ctx context.Context, criteria filtering.Criteria) (*ListResult, error) {
	all, err := s.list(ctx, false)
	if err != nil {
		return nil, err
	}
	filtered := Evaluator.Evaluate(all, criteria)
	return &ListResult{
		Items:          filtered,
		Stats:          ComputeStats(filtered),
		AppliedFilters: Evaluator.Applied(criteria.Selections),
		Unfiltered:     len(all),
	}, nil
}

func (s *service) Export(ctx context.Context, criteria filtering.Criteria) (*report.Document, error) {
	result, err := s.List(ctx, criteria)
	if err != nil {
		return nil, err
	}
	return report.Build(ReportSource, result.Items, criteria, result.AppliedFilters, result.Stats.ReportStats(), s.now().UTC()), nil
}

func (s *service) ListVisible(ctx context.Context) ([]PreferenceDTO, error) {
	return s.list(ctx, true)
}

func (s *service) list(ctx context.Context, visibleOnly bool) ([]PreferenceDTO, error) {
	rows, err := s.repo.List(ctx, visibleOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list preferences")
	}
	out := make([]PreferenceDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Preference, error) {
	pref, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "preference not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load preference")
	}
	return pref, nil
}

func validate(pref *models.Preference) error {
	fields := pkgerrors.Fields{}
	if pref.Name == "" {
		fields.Add("name", "is required")
	} else if len(pref.Name) > maxNameLength {
		fields.Add("name", fmt.Sprintf("must be at most %d characters", maxNameLength))
	}
	if !pref.Type.IsValid() {
		fields.Add("type", "must be event_type, amenity, cuisine or style")
	}
	if pref.SortOrder < 0 {
		fields.Add("sort_order", "must not be negative")
	}
	return fields.Err()
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
