package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuehub/venuehub-backend/internal/users"
	"github.com/venuehub/venuehub-backend/internal/vendors"
	pkgAuth "github.com/venuehub/venuehub-backend/pkg/auth"
	"github.com/venuehub/venuehub-backend/pkg/auth/session"
	"github.com/venuehub/venuehub-backend/pkg/config"
	"github.com/venuehub/venuehub-backend/pkg/db"
	"github.com/venuehub/venuehub-backend/pkg/db/models"
	"github.com/venuehub/venuehub-backend/pkg/enums"
	pkgerrors "github.com/venuehub/venuehub-backend/pkg/errors"
	"github.com/venuehub/venuehub-backend/pkg/logger"
	"github.com/venuehub/venuehub-backend/pkg/metrics"
	"github.com/venuehub/venuehub-backend/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the auth controllers.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*TokenResponse, error)
	ResendOTP(ctx context.Context, req ResendOTPRequest) (*OTPDispatch, error)
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	AdminLogin(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (*OTPDispatch, error)
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkEmailVerified(ctx context.Context, id uuid.UUID, at time.Time) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

type vendorLookup interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Vendor, error)
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	DB             txRunner
	UserRepo       userRepository
	VendorRepo     vendorLookup
	SessionManager sessionManager
	OTPStore       otpStore
	Notifier       Notifier
	Metrics        *metrics.AuthMetrics
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
	OTPConfig      config.OTPConfig
	Logger         *logger.Logger
}

type service struct {
	db          txRunner
	users       userRepository
	vendors     vendorLookup
	session     sessionManager
	otp         *otpIssuer
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	logg        *logger.Logger
	now         func() time.Time
}

// NewService constructs the auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.VendorRepo == nil {
		return nil, fmt.Errorf("vendor repository is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if params.OTPStore == nil {
		return nil, fmt.Errorf("otp store is required")
	}
	notifier := params.Notifier
	if notifier == nil {
		notifier = NewLogNotifier(params.Logger)
	}
	return &service{
		db:          params.DB,
		users:       params.UserRepo,
		vendors:     params.VendorRepo,
		session:     params.SessionManager,
		otp:         newOTPIssuer(params.OTPStore, params.OTPConfig, notifier, params.Metrics),
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
		logg:        params.Logger,
		now:         time.Now,
	}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	email := normalizeEmail(req.Email)
	if err := s.validateRegistration(email, req); err != nil {
		return nil, err
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var (
		user     *models.User
		vendorID *uuid.UUID
	)
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)
		vendorRepo := vendors.NewRepository(tx)

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check user email")
		}

		created, err := userRepo.Create(ctx, users.CreateUserDTO{
			Email:        email,
			PasswordHash: passwordHash,
			FirstName:    strings.TrimSpace(req.FirstName),
			LastName:     strings.TrimSpace(req.LastName),
			Phone:        req.Phone,
			Role:         req.Role,
		})
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
		}
		user = created

		if req.Role != enums.UserRoleVendor {
			return nil
		}
		vendor := &models.Vendor{
			UserID:       created.ID,
			BusinessName: strings.TrimSpace(req.Vendor.BusinessName),
			OwnerName:    strings.TrimSpace(created.FirstName + " " + created.LastName),
			Email:        email,
			Phone:        req.Phone,
			City:         strings.TrimSpace(req.Vendor.City),
			Category:     req.Vendor.Category,
			Status:       enums.VendorStatusPending,
			Description:  req.Vendor.Description,
		}
		if err := vendorRepo.Create(ctx, vendor); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vendor profile")
		}
		vendorID = &vendor.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	dispatch, err := s.otp.Issue(ctx, PurposeVerifyEmail, email)
	if err != nil {
		// The account exists; the user can ask for a new code.
		if s.logg != nil {
			s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
				"user_id": user.ID.String(),
				"error":   err.Error(),
			}), "verification code not sent")
		}
		dispatch = s.otp.dispatch(PurposeVerifyEmail, email)
	}

	return &RegisterResponse{
		User:     users.FromModel(user),
		VendorID: vendorID,
		OTP:      dispatch,
	}, nil
}

func (s *service) validateRegistration(email string, req RegisterRequest) error {
	fields := pkgerrors.Fields{}
	if _, err := mail.ParseAddress(email); email == "" || err != nil {
		fields.Add("email", "must be a valid email address")
	}
	if strings.TrimSpace(req.FirstName) == "" {
		fields.Add("first_name", "is required")
	}
	if strings.TrimSpace(req.LastName) == "" {
		fields.Add("last_name", "is required")
	}
	if !req.Role.CanSelfRegister() {
		fields.Add("role", "must be customer or vendor")
	}
	if err := security.CheckPasswordPolicy(req.Password, s.passwordCfg); err != nil {
		fields.Add("password", err.Error())
	}
	if req.Role == enums.UserRoleVendor {
		switch {
		case req.Vendor == nil:
			fields.Add("vendor", "is required for vendor accounts")
		default:
			if strings.TrimSpace(req.Vendor.BusinessName) == "" {
				fields.Add("vendor.business_name", "is required")
			}
			if strings.TrimSpace(req.Vendor.City) == "" {
				fields.Add("vendor.city", "is required")
			}
			if !req.Vendor.Category.IsValid() {
				fields.Add("vendor.category", "must be venue, farmhouse, catering or photography")
			}
		}
	}
	return fields.Err()
}

func (s *service) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*TokenResponse, error) {
	email := normalizeEmail(req.Email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCodeMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	if user.IsEmailVerified() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "email already verified")
	}
	if err := s.otp.Verify(ctx, PurposeVerifyEmail, email, req.Code); err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	now := s.now().UTC()
	if err := s.users.MarkEmailVerified(ctx, user.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark email verified")
	}
	user.EmailVerifiedAt = &now
	return s.openSession(ctx, user)
}

func (s *service) ResendOTP(ctx context.Context, req ResendOTPRequest) (*OTPDispatch, error) {
	email := normalizeEmail(req.Email)
	purpose, err := parsePurpose(req.Purpose)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"purpose": "must be verify_email or reset_password"})
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			dispatch := s.otp.dispatch(purpose, email)
			return &dispatch, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	if purpose == PurposeVerifyEmail && user.IsEmailVerified() {
		dispatch := s.otp.dispatch(purpose, email)
		return &dispatch, nil
	}

	dispatch, err := s.otp.Issue(ctx, purpose, email)
	if err != nil {
		return nil, err
	}
	return &dispatch, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	if user.Role == enums.UserRoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	if err := requireVerified(user); err != nil {
		return nil, err
	}
	return s.openSession(ctx, user)
}

func (s *service) AdminLogin(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	if user.Role != enums.UserRoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	if err := requireVerified(user); err != nil {
		return nil, err
	}
	return s.openSession(ctx, user)
}

func (s *service) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (*OTPDispatch, error) {
	email := normalizeEmail(req.Email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			dispatch := s.otp.dispatch(PurposeResetPassword, email)
			return &dispatch, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	if !user.IsActive {
		dispatch := s.otp.dispatch(PurposeResetPassword, email)
		return &dispatch, nil
	}

	dispatch, err := s.otp.Issue(ctx, PurposeResetPassword, email)
	if err != nil {
		return nil, err
	}
	return &dispatch, nil
}

func (s *service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if err := security.CheckPasswordPolicy(req.NewPassword, s.passwordCfg); err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"new_password": err.Error()})
	}

	email := normalizeEmail(req.Email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCodeMessage)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	if err := s.otp.Verify(ctx, PurposeResetPassword, email, req.Code); err != nil {
		return err
	}

	hash, err := security.HashPassword(req.NewPassword, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update password")
	}
	// The code reached the inbox, which proves ownership of the address.
	if !user.IsEmailVerified() {
		if err := s.users.MarkEmailVerified(ctx, user.ID, s.now().UTC()); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark email verified")
		}
	}
	return nil
}

func (s *service) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	input := normalizeEmail(email)
	if input == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	user, err := s.users.FindByEmail(ctx, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}

	valid, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid || !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}

// openSession records the login, mints the access token and stores the
// refresh session keyed by its jti.
func (s *service) openSession(ctx context.Context, user *models.User) (*TokenResponse, error) {
	now := s.now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update last login")
	}
	user.LastLoginAt = &now

	var vendorID *uuid.UUID
	if user.Role == enums.UserRoleVendor {
		vendor, err := s.vendors.FindByUserID(ctx, user.ID)
		switch {
		case err == nil:
			vendorID = &vendor.ID
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup vendor profile")
		}
	}

	accessID := session.NewAccessID()
	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, now, pkgAuth.AccessTokenPayload{
		UserID:   user.ID,
		Role:     user.Role,
		VendorID: vendorID,
		JTI:      accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	refreshToken, err := s.session.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store refresh token")
	}

	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		VendorID:     vendorID,
		User:         users.FromModel(user),
	}, nil
}

func requireVerified(user *models.User) error {
	if user.IsEmailVerified() {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, "email not verified").
		WithDetails(map[string]any{"email_verified": false})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
