package controllers

import (
	"net/http"

	"github.com/venuehub/venuehub-backend/api/responses"
	"github.com/venuehub/venuehub-backend/api/validators"
	"github.com/venuehub/venuehub-backend/internal/preferences"
	"github.com/venuehub/venuehub-backend/internal/report"
	"github.com/venuehub/venuehub-backend/pkg/enums"
	pkgerrors "github.com/venuehub/venuehub-backend/pkg/errors"
	"github.com/venuehub/venuehub-backend/pkg/logger"
)

type createPreferenceRequest struct {
	Name        string               `json:"name" validate:"required,max=80"`
	Type        enums.PreferenceType `json:"type" validate:"required"`
	Description *string              `json:"description,omitempty" validate:"omitempty,max=500"`
	IsVisible   *bool                `json:"is_visible,omitempty"`
	SortOrder   int                  `json:"sort_order" validate:"min=0"`
}

type updatePreferenceRequest struct {
	Name        *string               `json:"name,omitempty" validate:"omitempty,max=80"`
	Type        *enums.PreferenceType `json:"type,omitempty"`
	Description *string               `json:"description,omitempty" validate:"omitempty,max=500"`
	IsVisible   *bool                 `json:"is_visible,omitempty"`
	SortOrder   *int                  `json:"sort_order,omitempty" validate:"omitempty,min=0"`
}

func preferenceServiceUnavailable(w http.ResponseWriter, r *http.Request, logg *logger.Logger) {
	responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "preference service unavailable"))
}

// PublicPreferences lists the visible preferences in display order.
func PublicPreferences(svc preferences.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			preferenceServiceUnavailable(w, r, logg)
			return
		}
		items, err := svc.ListVisible(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func AdminPreferenceList(svc preferences.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			preferenceServiceUnavailable(w, r, logg)
			return
		}
		result, err := svc.List(r.Context(), validators.ParseCriteria(r, preferences.Evaluator.FilterNames()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func AdminPreferenceExport(svc preferences.Service, exporter *report.Exporter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			preferenceServiceUnavailable(w, r, logg)
			return
		}
		writeExport(w, r, exporter, logg, func(r *http.Request) (*report.Document, error) {
			return svc.Export(r.Context(), validators.ParseCriteria(r, preferences.Evaluator.FilterNames()))
		})
	}
}

func AdminPreferenceCreate(svc preferences.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			preferenceServiceUnavailable(w, r, logg)
			return
		}
		var body createPreferenceRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		pref, err := svc.Create(r.Context(), preferences.CreatePreferenceInput{
			Name:        body.Name,
			Type:        body.Type,
			Description: body.Description,
			IsVisible:   boolOr(body.IsVisible, true),
			SortOrder:   body.SortOrder,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, pref)
	}
}

func AdminPreferenceGet(svc preferences.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			preferenceServiceUnavailable(w, r, logg)
			return
		}
		id, err := pathUUID(r, "preferenceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		pref, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, pref)
	}
}

func AdminPreferenceUpdate(svc preferences.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			preferenceServiceUnavailable(w, r, logg)
			return
		}
		id, err := pathUUID(r, "preferenceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body updatePreferenceRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		pref, err := svc.Update(r.Context(), id, preferences.UpdatePreferenceInput{
			Name:        body.Name,
			Type:        body.Type,
			Description: body.Description,
			IsVisible:   body.IsVisible,
			SortOrder:   body.SortOrder,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, pref)
	}
}

func AdminPreferenceDelete(svc preferences.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			preferenceServiceUnavailable(w, r, logg)
			return
		}
		id, err := pathUUID(r, "preferenceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
