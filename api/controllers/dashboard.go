package controllers

import (
	"net/http"

	"github.com/venuehub/venuehub-backend/api/responses"
	"github.com/venuehub/venuehub-backend/internal/dashboard"
	pkgerrors "github.com/venuehub/venuehub-backend/pkg/errors"
	"github.com/venuehub/venuehub-backend/pkg/logger"
)

func AdminDashboard(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}
		overview, err := svc.Overview(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, overview)
	}
}
