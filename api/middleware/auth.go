package middleware

import (
	"context"
	"net/http"

	"github.com/venuehub/venuehub-backend/api/responses"
	"github.com/venuehub/venuehub-backend/api/validators"
	pkgAuth "github.com/venuehub/venuehub-backend/pkg/auth"
	"github.com/venuehub/venuehub-backend/pkg/auth/session"
	"github.com/venuehub/venuehub-backend/pkg/config"
	pkgerrors "github.com/venuehub/venuehub-backend/pkg/errors"
	"github.com/venuehub/venuehub-backend/pkg/logger"
)

// Auth admits requests carrying an unexpired bearer token whose session is
// still live. Logout and admin suspension revoke the session, so a valid
// signature alone is not enough.
func Auth(cfg config.JWTConfig, sessions session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := authenticate(r, cfg, sessions)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims, logg)))
		})
	}
}

func authenticate(r *http.Request, cfg config.JWTConfig, sessions session.AccessSessionChecker) (*pkgAuth.AccessTokenClaims, error) {
	token, err := validators.BearerToken(r)
	if err != nil {
		return nil, err
	}
	claims, err := pkgAuth.ParseAccessToken(cfg, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}
	if sessions == nil {
		return claims, nil
	}

	live, err := sessions.HasSession(r.Context(), claims.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session")
	}
	if !live {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired or revoked")
	}
	return claims, nil
}

func withClaims(ctx context.Context, claims *pkgAuth.AccessTokenClaims, logg *logger.Logger) context.Context {
	userID, role := claims.UserID.String(), string(claims.Role)
	var vendorID string
	if claims.VendorID != nil {
		vendorID = claims.VendorID.String()
	}

	ctx = WithRole(WithUserID(ctx, userID), role)
	if vendorID != "" {
		ctx = WithVendorID(ctx, vendorID)
	}
	if logg != nil {
		ctx = logg.WithActor(ctx, userID, role, vendorID)
	}
	return ctx
}
