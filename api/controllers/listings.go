package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/venuehub/venuehub-backend/api/responses"
	"github.com/venuehub/venuehub-backend/api/validators"
	"github.com/venuehub/venuehub-backend/internal/events"
	"github.com/venuehub/venuehub-backend/internal/listings"
	"github.com/venuehub/venuehub-backend/internal/report"
	"github.com/venuehub/venuehub-backend/pkg/enums"
	pkgerrors "github.com/venuehub/venuehub-backend/pkg/errors"
	"github.com/venuehub/venuehub-backend/pkg/logger"
	"github.com/venuehub/venuehub-backend/pkg/pagination"
)

const maxFilterLength = 80

type listingBaseRequest struct {
	Title       string             `json:"title" validate:"required,max=160"`
	Description *string            `json:"description,omitempty" validate:"omitempty,max=4000"`
	City        string             `json:"city" validate:"required,max=80"`
	Address     *string            `json:"address,omitempty" validate:"omitempty,max=255"`
	MinGuests   int                `json:"min_guests" validate:"min=0"`
	MaxGuests   int                `json:"max_guests" validate:"min=0"`
	BasePrice   decimal.Decimal    `json:"base_price"`
	PricingUnit *enums.PricingUnit `json:"pricing_unit,omitempty"`
	Amenities   []string           `json:"amenities,omitempty"`
	Publish     bool               `json:"publish"`
}

func (req listingBaseRequest) input() listings.BaseListingInput {
	return listings.BaseListingInput{
		Title:       req.Title,
		Description: req.Description,
		City:        req.City,
		Address:     req.Address,
		MinGuests:   req.MinGuests,
		MaxGuests:   req.MaxGuests,
		BasePrice:   req.BasePrice,
		PricingUnit: req.PricingUnit,
		Amenities:   req.Amenities,
		Publish:     req.Publish,
	}
}

type createVenueRequest struct {
	listingBaseRequest
	Details listings.VenueDetails `json:"details"`
}

type createFarmhouseRequest struct {
	listingBaseRequest
	Details listings.FarmhouseDetails `json:"details"`
}

type createCateringRequest struct {
	listingBaseRequest
	Details listings.CateringDetails `json:"details"`
}

type createPhotographyRequest struct {
	listingBaseRequest
	Details listings.PhotographyDetails `json:"details"`
}

type listingStatusRequest struct {
	Status enums.ListingStatus `json:"status" validate:"required"`
}

func listingServiceUnavailable(w http.ResponseWriter, r *http.Request, logg *logger.Logger) {
	responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "listing service unavailable"))
}

// createListing decodes a category request and hands it to create with the
// calling vendor as actor.
func createListing[Req any](svc listings.Service, logg *logger.Logger, create func(ctx context.Context, actor events.ActorRef, req Req) (*listings.ListingDTO, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			listingServiceUnavailable(w, r, logg)
			return
		}
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if actor.VendorID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "vendor profile missing"))
			return
		}
		var body Req
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		listing, err := create(r.Context(), actor, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, listing)
	}
}

func VendorCreateVenue(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
	return createListing(svc, logg, func(ctx context.Context, actor events.ActorRef, req createVenueRequest) (*listings.ListingDTO, error) {
		return svc.CreateVenue(ctx, actor, listings.CreateVenueInput{BaseListingInput: req.input(), Details: req.Details})
	})
}

func VendorCreateFarmhouse(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
	return createListing(svc, logg, func(ctx context.Context, actor events.ActorRef, req createFarmhouseRequest) (*listings.ListingDTO, error) {
		return svc.CreateFarmhouse(ctx, actor, listings.CreateFarmhouseInput{BaseListingInput: req.input(), Details: req.Details})
	})
}

func VendorCreateCateringPackage(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
	return createListing(svc, logg, func(ctx context.Context, actor events.ActorRef, req createCateringRequest) (*listings.ListingDTO, error) {
		return svc.CreateCateringPackage(ctx, actor, listings.CreateCateringPackageInput{BaseListingInput: req.input(), Details: req.Details})
	})
}

func VendorCreatePhotographyPackage(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
	return createListing(svc, logg, func(ctx context.Context, actor events.ActorRef, req createPhotographyRequest) (*listings.ListingDTO, error) {
		return svc.CreatePhotographyPackage(ctx, actor, listings.CreatePhotographyPackageInput{BaseListingInput: req.input(), Details: req.Details})
	})
}

// VendorListingStatus moves one of the caller's listings between draft,
// published and archived.
func VendorListingStatus(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			listingServiceUnavailable(w, r, logg)
			return
		}
		id, err := pathUUID(r, "listingId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body listingStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		listing, err := svc.UpdateStatus(r.Context(), actor, id, body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listing)
	}
}

func VendorListingList(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			listingServiceUnavailable(w, r, logg)
			return
		}
		vendorID, err := requireVendorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.ListForVendor(r.Context(), vendorID, validators.ParseCriteria(r, listings.Evaluator.FilterNames()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func AdminListingList(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			listingServiceUnavailable(w, r, logg)
			return
		}
		result, err := svc.List(r.Context(), validators.ParseCriteria(r, listings.Evaluator.FilterNames()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func AdminListingExport(svc listings.Service, exporter *report.Exporter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			listingServiceUnavailable(w, r, logg)
			return
		}
		writeExport(w, r, exporter, logg, func(r *http.Request) (*report.Document, error) {
			return svc.Export(r.Context(), validators.ParseCriteria(r, listings.Evaluator.FilterNames()))
		})
	}
}

// PublicListingBrowse pages through published listings newest first.
func PublicListingBrowse(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			listingServiceUnavailable(w, r, logg)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		query := listings.PublicQuery{
			City: validators.SanitizeString(r.URL.Query().Get("city"), maxFilterLength),
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			category := enums.ListingCategory(strings.ToLower(raw))
			query.Category = &category
		}

		page, err := svc.Browse(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func PublicListingGet(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			listingServiceUnavailable(w, r, logg)
			return
		}
		id, err := pathUUID(r, "listingId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		city := validators.SanitizeString(r.URL.Query().Get("city"), maxFilterLength)
		listing, err := svc.GetPublic(r.Context(), id, city)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listing)
	}
}
