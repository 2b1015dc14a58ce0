package auth

import (
	"github.com/google/uuid"

	"github.com/venuehub/venuehub-backend/internal/users"
	"github.com/venuehub/venuehub-backend/pkg/enums"
)

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VendorSignup carries the business profile created alongside a vendor account.
type VendorSignup struct {
	BusinessName string                `json:"business_name" validate:"required"`
	City         string                `json:"city" validate:"required"`
	Category     enums.ListingCategory `json:"category" validate:"required"`
	Description  *string               `json:"description,omitempty"`
}

// RegisterRequest contains the payload required to sign up a customer or vendor.
type RegisterRequest struct {
	FirstName string         `json:"first_name" validate:"required"`
	LastName  string         `json:"last_name" validate:"required"`
	Email     string         `json:"email" validate:"required,email"`
	Password  string         `json:"password" validate:"required"`
	Phone     *string        `json:"phone,omitempty"`
	Role      enums.UserRole `json:"role" validate:"required"`
	Vendor    *VendorSignup  `json:"vendor,omitempty"`
}

// VerifyOTPRequest confirms the email verification code.
type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,numeric"`
}

// ResendOTPRequest asks for a fresh code. Purpose defaults to verify_email.
type ResendOTPRequest struct {
	Email   string     `json:"email" validate:"required,email"`
	Purpose OTPPurpose `json:"purpose,omitempty"`
}

// ForgotPasswordRequest starts the password reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest completes the password reset flow.
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,numeric"`
	NewPassword string `json:"new_password" validate:"required"`
}

// TokenResponse is returned whenever a session is opened.
type TokenResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	VendorID     *uuid.UUID     `json:"vendor_id,omitempty"`
	User         *users.UserDTO `json:"user"`
}

// RegisterResponse reports the new account and where the code was sent.
type RegisterResponse struct {
	User     *users.UserDTO `json:"user"`
	VendorID *uuid.UUID     `json:"vendor_id,omitempty"`
	OTP      OTPDispatch    `json:"otp"`
}

// OTPDispatch describes an issued code without revealing it.
type OTPDispatch struct {
	Email              string     `json:"email"`
	Purpose            OTPPurpose `json:"purpose"`
	ExpiresInSeconds   int        `json:"expires_in_seconds"`
	ResendAfterSeconds int        `json:"resend_after_seconds"`
}
