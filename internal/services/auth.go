package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/epkadmin/internal/metrics"
	"github.com/example/epkadmin/internal/models"
	"github.com/example/epkadmin/internal/store"
	"github.com/example/epkadmin/internal/utils"
)

// AdminUserRepository is the storage AuthService needs.
type AdminUserRepository interface {
	Create(ctx context.Context, user *models.AdminUser) error
	Save(ctx context.Context, user *models.AdminUser) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error)
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindByLogin(ctx context.Context, identifier string) (*models.AdminUser, error)
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
	FindByOTP(ctx context.Context, email, otp string, now time.Time) (*models.AdminUser, error)
}

// AuthConfig holds the secrets and lifetimes used by AuthService.
type AuthConfig struct {
	Secret   string
	TokenTTL time.Duration
	OTPTTL   time.Duration
}

// SignupInput is a new admin panel account.
type SignupInput struct {
	Name             string `json:"name" validate:"required"`
	Organization     string `json:"organization" validate:"required"`
	OrganizationSize string `json:"organizationSize" validate:"required"`
	Role             string `json:"role" validate:"required"`
	Phone            string `json:"phone" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required"`
	ConfirmPassword  string `json:"confirmPassword" validate:"required"`
}

// ResetPasswordInput replaces a forgotten password.
type ResetPasswordInput struct {
	Email           string `json:"email" validate:"required,email"`
	OTP             string `json:"otp" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *models.AdminUser
}

// AuthService implements signup, OTP verification, login and password reset
// for admin panel accounts.
type AuthService struct {
	users    AdminUserRepository
	sender   OTPSender
	notifier Notifier
	cfg      AuthConfig
	log      *zap.Logger
	now      func() time.Time
	newOTP   func() (string, error)
}

// NewAuthService constructs AuthService. notifier may be nil.
func NewAuthService(users AdminUserRepository, sender OTPSender, notifier Notifier, cfg AuthConfig, log *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sender:   sender,
		notifier: notifier,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
		newOTP:   utils.GenerateOTP,
	}
}

// SetClock replaces the time source.
func (s *AuthService) SetClock(now func() time.Time) { s.now = now }

// SetOTPGenerator replaces the code generator.
func (s *AuthService) SetOTPGenerator(gen func() (string, error)) { s.newOTP = gen }

// Signup registers an unverified account and mails it a verification code.
// It returns the address the code was sent to.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (string, error) {
	if in.Password != in.ConfirmPassword {
		metrics.AuthEvent("signup", "password_mismatch")
		return "", ErrPasswordMismatch
	}

	email := models.NormalizeEmail(in.Email)
	exists, err := s.users.ExistsByEmailOrPhone(ctx, email, in.Phone)
	if err != nil {
		return "", err
	}
	if exists {
		metrics.AuthEvent("signup", "duplicate")
		return "", ErrDuplicateAccount
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	code, err := s.newOTP()
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}

	user := &models.AdminUser{
		Name:             in.Name,
		Organization:     in.Organization,
		OrganizationSize: in.OrganizationSize,
		Role:             in.Role,
		Phone:            in.Phone,
		Email:            email,
		PasswordHash:     hash,
	}
	user.SetOTP(code, s.now().Add(s.cfg.OTPTTL))

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			metrics.AuthEvent("signup", "duplicate")
			return "", ErrDuplicateAccount
		}
		return "", err
	}

	if err := s.sender.SendOTP(ctx, email, code, PurposeVerifyEmail); err != nil {
		metrics.AuthEvent("signup", "otp_delivery_failed")
		return "", fmt.Errorf("send verification otp: %w", err)
	}

	metrics.AuthEvent("signup", "success")
	s.log.Info("admin signed up", zap.String("email", email), zap.String("user_id", user.ID.String()))
	s.notify(func() error { return s.notifier.NotifySignup(ctx, user) })
	return email, nil
}

// VerifyEmail marks the account verified when otp is its pending, unexpired code.
func (s *AuthService) VerifyEmail(ctx context.Context, email, otp string) error {
	user, err := s.matchOTP(ctx, email, otp)
	if err != nil {
		metrics.AuthEvent("verify_email", "invalid_otp")
		return err
	}

	user.Verified = true
	user.ClearOTP()
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}
	metrics.AuthEvent("verify_email", "success")
	return nil
}

// Login checks credentials for an email or phone identifier and issues a
// session token.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*Session, error) {
	user, err := s.users.FindByLogin(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.AuthEvent("login", "unknown_user")
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !user.Verified {
		metrics.AuthEvent("login", "unverified")
		return nil, ErrUnverified
	}
	if !utils.PasswordMatches(user.PasswordHash, password) {
		metrics.AuthEvent("login", "bad_password")
		return nil, ErrInvalidCredentials
	}
	if s.cfg.Secret == "" {
		s.log.Error("JWT secret is not configured")
		return nil, ErrMissingSecret
	}

	now := s.now()
	token, err := utils.IssueSessionToken(s.cfg.Secret, user.ID, now, s.cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	metrics.AuthEvent("login", "success")
	return &Session{Token: token, ExpiresAt: now.Add(s.cfg.TokenTTL), User: user}, nil
}

// ForgotPassword issues a fresh code to a registered email.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	code, err := s.newOTP()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	user.SetOTP(code, s.now().Add(s.cfg.OTPTTL))
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}

	if err := s.sender.SendOTP(ctx, user.Email, code, PurposeResetPassword); err != nil {
		metrics.AuthEvent("forgot_password", "otp_delivery_failed")
		return fmt.Errorf("send reset otp: %w", err)
	}
	metrics.AuthEvent("forgot_password", "success")
	return nil
}

// ResetPassword replaces the password when the code matches.
func (s *AuthService) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	if in.NewPassword != in.ConfirmPassword {
		return ErrPasswordMismatch
	}

	user, err := s.matchOTP(ctx, in.Email, in.OTP)
	if err != nil {
		metrics.AuthEvent("reset_password", "invalid_otp")
		return err
	}

	hash, err := utils.HashPassword(in.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	user.ClearOTP()
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}
	metrics.AuthEvent("reset_password", "success")
	return nil
}

// ValidateOtp checks a code without consuming it.
func (s *AuthService) ValidateOtp(ctx context.Context, email, otp string) error {
	_, err := s.matchOTP(ctx, email, otp)
	return err
}

// Authenticate resolves a session token to its account.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.AdminUser, error) {
	if token == "" {
		return nil, ErrTokenMissing
	}
	if s.cfg.Secret == "" {
		return nil, ErrMissingSecret
	}

	id, err := utils.ParseSessionToken(s.cfg.Secret, token, s.now())
	if err != nil {
		if errors.Is(err, utils.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionUserGone
		}
		return nil, err
	}
	return user, nil
}

// EnsureAdmin creates a verified admin account for email when none exists.
// Existing accounts are left untouched.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password, phone string) error {
	email = models.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("bootstrap lookup admin: %w", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("bootstrap hash password: %w", err)
	}

	user := &models.AdminUser{
		Name:             "Admin",
		Organization:     "EPK Admin",
		OrganizationSize: "1-10",
		Role:             models.AdminRole,
		Phone:            phone,
		Email:            email,
		PasswordHash:     hash,
		Verified:         true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return fmt.Errorf("bootstrap create admin: %w", err)
	}

	s.log.Info("bootstrap admin user created", zap.String("email", email), zap.String("user_id", user.ID.String()))
	return nil
}

func (s *AuthService) matchOTP(ctx context.Context, email, otp string) (*models.AdminUser, error) {
	if email == "" || otp == "" {
		return nil, ErrInvalidOTP
	}
	user, err := s.users.FindByOTP(ctx, email, otp, s.now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidOTP
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) notify(send func() error) {
	if s.notifier == nil {
		return
	}
	if err := send(); err != nil {
		s.log.Warn("admin notification failed", zap.Error(err))
	}
}
