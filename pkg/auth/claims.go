package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/venuehub/venuehub-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID   uuid.UUID
	Role     enums.UserRole
	VendorID *uuid.UUID
	JTI      string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID   uuid.UUID      `json:"user_id"`
	Role     enums.UserRole `json:"role"`
	VendorID *uuid.UUID     `json:"vendor_id,omitempty"`
	jwt.RegisteredClaims
}

// Payload converts parsed claims back into a mint payload, keeping the
// identity but not the session identifier.
func (c AccessTokenClaims) Payload() AccessTokenPayload {
	return AccessTokenPayload{
		UserID:   c.UserID,
		Role:     c.Role,
		VendorID: c.VendorID,
	}
}
