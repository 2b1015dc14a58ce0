package controllers

import (
	"net/http"

	"github.com/venuehub/venuehub-backend/api/responses"
	"github.com/venuehub/venuehub-backend/api/validators"
	"github.com/venuehub/venuehub-backend/internal/report"
	"github.com/venuehub/venuehub-backend/internal/vendors"
	pkgerrors "github.com/venuehub/venuehub-backend/pkg/errors"
	"github.com/venuehub/venuehub-backend/pkg/logger"
)

type vendorStatusRequest struct {
	Action string `json:"action" validate:"required"`
}

type vendorVerificationRequest struct {
	Verified *bool `json:"verified" validate:"required"`
}

type vendorProfileRequest struct {
	BusinessName *string `json:"business_name,omitempty" validate:"omitempty,min=2,max=120"`
	OwnerName    *string `json:"owner_name,omitempty" validate:"omitempty,max=120"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	City         *string `json:"city,omitempty" validate:"omitempty,max=80"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

func vendorServiceUnavailable(w http.ResponseWriter, r *http.Request, logg *logger.Logger) {
	responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor service unavailable"))
}

func AdminVendorList(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			vendorServiceUnavailable(w, r, logg)
			return
		}
		criteria := validators.ParseCriteria(r, vendors.Evaluator.FilterNames())
		result, err := svc.List(r.Context(), criteria)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func AdminVendorExport(svc vendors.Service, exporter *report.Exporter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			vendorServiceUnavailable(w, r, logg)
			return
		}
		writeExport(w, r, exporter, logg, func(r *http.Request) (*report.Document, error) {
			return svc.Export(r.Context(), validators.ParseCriteria(r, vendors.Evaluator.FilterNames()))
		})
	}
}

func AdminVendorGet(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			vendorServiceUnavailable(w, r, logg)
			return
		}
		id, err := pathUUID(r, "vendorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		vendor, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vendor)
	}
}

// AdminVendorUpdateStatus applies a moderation action (approve, suspend,
// reject, reinstate).
func AdminVendorUpdateStatus(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			vendorServiceUnavailable(w, r, logg)
			return
		}
		id, err := pathUUID(r, "vendorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body vendorStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		action, ok := vendors.ParseStatusAction(body.Action)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
				WithDetails(map[string]string{"action": "must be approve, suspend, reject or reinstate"}))
			return
		}
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		vendor, err := svc.UpdateStatus(r.Context(), actor, id, action)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vendor)
	}
}

func AdminVendorSetVerified(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			vendorServiceUnavailable(w, r, logg)
			return
		}
		id, err := pathUUID(r, "vendorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body vendorVerificationRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		vendor, err := svc.SetVerified(r.Context(), id, *body.Verified)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vendor)
	}
}

// VendorProfile returns the caller's own vendor profile.
func VendorProfile(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			vendorServiceUnavailable(w, r, logg)
			return
		}
		vendorID, err := requireVendorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		vendor, err := svc.Get(r.Context(), vendorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vendor)
	}
}

func VendorUpdateProfile(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			vendorServiceUnavailable(w, r, logg)
			return
		}
		vendorID, err := requireVendorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body vendorProfileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		vendor, err := svc.UpdateProfile(r.Context(), vendorID, vendors.UpdateProfileInput{
			BusinessName: body.BusinessName,
			OwnerName:    body.OwnerName,
			Phone:        body.Phone,
			City:         body.City,
			Description:  body.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vendor)
	}
}

func VendorDashboard(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			vendorServiceUnavailable(w, r, logg)
			return
		}
		vendorID, err := requireVendorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dashboard, err := svc.Dashboard(r.Context(), vendorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dashboard)
	}
}
