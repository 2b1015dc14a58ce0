package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuehub/venuehub-backend/api/middleware"
	"github.com/venuehub/venuehub-backend/api/responses"
	"github.com/venuehub/venuehub-backend/api/validators"
	"github.com/venuehub/venuehub-backend/internal/report"
	"github.com/venuehub/venuehub-backend/internal/vouchers"
	"github.com/venuehub/venuehub-backend/pkg/enums"
	pkgerrors "github.com/venuehub/venuehub-backend/pkg/errors"
	"github.com/venuehub/venuehub-backend/pkg/logger"
)

type createVoucherRequest struct {
	Code            string             `json:"code" validate:"required,voucher_code"`
	Title           string             `json:"title" validate:"required,max=120"`
	Description     *string            `json:"description,omitempty"`
	DiscountType    enums.DiscountType `json:"discount_type" validate:"required"`
	DiscountValue   decimal.Decimal    `json:"discount_value" validate:"gt=0"`
	MinOrderAmount  decimal.Decimal    `json:"min_order_amount" validate:"gte=0"`
	MaxDiscount     *decimal.Decimal   `json:"max_discount,omitempty"`
	VendorID        *uuid.UUID         `json:"vendor_id,omitempty"`
	IsActive        *bool              `json:"is_active,omitempty"`
	IsPublic        *bool              `json:"is_public,omitempty"`
	ValidFrom       time.Time          `json:"valid_from"`
	ValidUntil      time.Time          `json:"valid_until"`
	TotalUsageLimit int64              `json:"total_usage_limit" validate:"min=0"`
	PerUserLimit    int                `json:"per_user_limit" validate:"min=0"`
}

func (req createVoucherRequest) input() vouchers.CreateVoucherInput {
	return vouchers.CreateVoucherInput{
		Code:            req.Code,
		Title:           req.Title,
		Description:     req.Description,
		DiscountType:    req.DiscountType,
		DiscountValue:   req.DiscountValue,
		MinOrderAmount:  req.MinOrderAmount,
		MaxDiscount:     req.MaxDiscount,
		VendorID:        req.VendorID,
		IsActive:        boolOr(req.IsActive, true),
		IsPublic:        boolOr(req.IsPublic, true),
		ValidFrom:       req.ValidFrom,
		ValidUntil:      req.ValidUntil,
		TotalUsageLimit: req.TotalUsageLimit,
		PerUserLimit:    req.PerUserLimit,
	}
}

type updateVoucherRequest struct {
	Title           *string             `json:"title,omitempty" validate:"omitempty,max=120"`
	Description     *string             `json:"description,omitempty"`
	DiscountType    *enums.DiscountType `json:"discount_type,omitempty"`
	DiscountValue   *decimal.Decimal    `json:"discount_value,omitempty"`
	MinOrderAmount  *decimal.Decimal    `json:"min_order_amount,omitempty"`
	MaxDiscount     *decimal.Decimal    `json:"max_discount,omitempty"`
	IsPublic        *bool               `json:"is_public,omitempty"`
	ValidFrom       *time.Time          `json:"valid_from,omitempty"`
	ValidUntil      *time.Time          `json:"valid_until,omitempty"`
	TotalUsageLimit *int64              `json:"total_usage_limit,omitempty" validate:"omitempty,min=0"`
	PerUserLimit    *int                `json:"per_user_limit,omitempty" validate:"omitempty,min=0"`
}

func (req updateVoucherRequest) input() vouchers.UpdateVoucherInput {
	return vouchers.UpdateVoucherInput{
		Title:           req.Title,
		Description:     req.Description,
		DiscountType:    req.DiscountType,
		DiscountValue:   req.DiscountValue,
		MinOrderAmount:  req.MinOrderAmount,
		MaxDiscount:     req.MaxDiscount,
		IsPublic:        req.IsPublic,
		ValidFrom:       req.ValidFrom,
		ValidUntil:      req.ValidUntil,
		TotalUsageLimit: req.TotalUsageLimit,
		PerUserLimit:    req.PerUserLimit,
	}
}

type setActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

// voucherScope is nil for admins and the caller's vendor for vendor tokens,
// so the same handlers serve both route groups.
func voucherScope(r *http.Request) *uuid.UUID {
	return middleware.ParsedVendorID(r.Context())
}

func voucherServiceUnavailable(w http.ResponseWriter, r *http.Request, logg *logger.Logger) {
	responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "voucher service unavailable"))
}

// VoucherList returns the filtered vouchers with stats over the same rows.
func VoucherList(svc vouchers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			voucherServiceUnavailable(w, r, logg)
			return
		}
		criteria := validators.ParseCriteria(r, vouchers.Evaluator.FilterNames())
		result, err := svc.List(r.Context(), voucherScope(r), criteria)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func VoucherExport(svc vouchers.Service, exporter *report.Exporter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			voucherServiceUnavailable(w, r, logg)
			return
		}
		writeExport(w, r, exporter, logg, func(r *http.Request) (*report.Document, error) {
			criteria := validators.ParseCriteria(r, vouchers.Evaluator.FilterNames())
			return svc.Export(r.Context(), voucherScope(r), criteria)
		})
	}
}

func VoucherCreate(svc vouchers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			voucherServiceUnavailable(w, r, logg)
			return
		}
		var body createVoucherRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		voucher, err := svc.Create(r.Context(), voucherScope(r), body.input())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, voucher)
	}
}

func VoucherGet(svc vouchers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			voucherServiceUnavailable(w, r, logg)
			return
		}
		id, err := pathUUID(r, "voucherId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		voucher, err := svc.Get(r.Context(), voucherScope(r), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, voucher)
	}
}

func VoucherUpdate(svc vouchers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			voucherServiceUnavailable(w, r, logg)
			return
		}
		id, err := pathUUID(r, "voucherId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body updateVoucherRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		voucher, err := svc.Update(r.Context(), voucherScope(r), id, body.input())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, voucher)
	}
}

func VoucherSetActive(svc vouchers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			voucherServiceUnavailable(w, r, logg)
			return
		}
		id, err := pathUUID(r, "voucherId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body setActiveRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		voucher, err := svc.SetActive(r.Context(), voucherScope(r), id, *body.IsActive)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, voucher)
	}
}

func VoucherDelete(svc vouchers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			voucherServiceUnavailable(w, r, logg)
			return
		}
		id, err := pathUUID(r, "voucherId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), voucherScope(r), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
