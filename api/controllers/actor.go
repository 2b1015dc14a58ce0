package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/venuehub/venuehub-backend/api/middleware"
	"github.com/venuehub/venuehub-backend/api/responses"
	"github.com/venuehub/venuehub-backend/api/validators"
	"github.com/venuehub/venuehub-backend/internal/events"
	"github.com/venuehub/venuehub-backend/internal/report"
	pkgerrors "github.com/venuehub/venuehub-backend/pkg/errors"
	"github.com/venuehub/venuehub-backend/pkg/logger"
)

// actorFromRequest describes the authenticated caller for domain events.
func actorFromRequest(r *http.Request) (events.ActorRef, error) {
	userID, ok := middleware.ParsedUserID(r.Context())
	if !ok {
		return events.ActorRef{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user context")
	}
	return events.ActorRef{
		UserID:   userID,
		VendorID: middleware.ParsedVendorID(r.Context()),
		Role:     middleware.RoleFromContext(r.Context()),
	}, nil
}

// requireVendorID returns the vendor bound to the caller's token.
func requireVendorID(r *http.Request) (uuid.UUID, error) {
	vendorID := middleware.ParsedVendorID(r.Context())
	if vendorID == nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "vendor profile missing")
	}
	return *vendorID, nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return validators.ParseUUID(chi.URLParam(r, name), name)
}

// writeExport renders the document into memory first so a failing sink
// still produces a JSON error instead of a truncated download.
func writeExport(w http.ResponseWriter, r *http.Request, exporter *report.Exporter, logg *logger.Logger, build func(*http.Request) (*report.Document, error)) {
	if exporter == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report exporter unavailable"))
		return
	}
	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"format": "must be html or csv"}))
		return
	}
	doc, err := build(r)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}

	var buf bytes.Buffer
	if err := exporter.Write(r.Context(), &buf, format, doc); err != nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render report"))
		return
	}

	disposition := "attachment"
	if format == report.FormatHTML {
		disposition = "inline"
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, doc.Filename(format)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
