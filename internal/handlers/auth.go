package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/epkadmin/internal/middleware"
	"github.com/example/epkadmin/internal/services"
)

// AuthService is the account flow behind the auth endpoints.
type AuthService interface {
	Signup(ctx context.Context, in services.SignupInput) (string, error)
	VerifyEmail(ctx context.Context, email, otp string) error
	Login(ctx context.Context, identifier, password string) (*services.Session, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, in services.ResetPasswordInput) error
	ValidateOtp(ctx context.Context, email, otp string) error
}

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	auth         AuthService
	secureCookie bool
}

// NewAuthHandler constructs an AuthHandler. secureCookie marks the session
// cookie Secure and should be set in production.
func NewAuthHandler(auth AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{auth: auth, secureCookie: secureCookie}
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type otpRequest struct {
	Email string `json:"email" validate:"required"`
	OTP   string `json:"otp" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Signup creates an unverified account and mails it a code.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req services.SignupInput
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := services.Validate(req); err != nil {
		return err
	}

	email, err := h.auth.Signup(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"error":   false,
		"message": "User created. OTP sent to email for verification.",
		"email":   email,
		"data":    fiber.Map{"email": email},
	})
}

// VerifyEmail confirms an account with its code.
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var req otpRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.auth.VerifyEmail(c.UserContext(), req.Email, req.OTP); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "error": false, "message": "Email verified successfully"})
}

// Login issues a session token as a cookie and in the body.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := services.Validate(req); err != nil {
		return err
	}

	session, err := h.auth.Login(c.UserContext(), req.Identifier, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{
		"success": true,
		"error":   false,
		"message": "Login successful",
		"token":   session.Token,
		"data": fiber.Map{
			"token": session.Token,
			"user":  session.User,
		},
	})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"success": true, "error": false, "message": "Logged out successfully"})
}

// ForgotPassword mails a reset code.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := services.Validate(req); err != nil {
		return err
	}

	if err := h.auth.ForgotPassword(c.UserContext(), req.Email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "error": false, "message": "OTP sent to email"})
}

// ResetPassword replaces the password using a reset code.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req services.ResetPasswordInput
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := services.Validate(req); err != nil {
		return err
	}

	if err := h.auth.ResetPassword(c.UserContext(), req); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "error": false, "message": "Password reset successfully"})
}

// ValidateOtp checks a code without consuming it.
func (h *AuthHandler) ValidateOtp(c *fiber.Ctx) error {
	var req otpRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.auth.ValidateOtp(c.UserContext(), req.Email, req.OTP); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "OTP is valid"})
}

// Test is an unauthenticated liveness probe.
func (h *AuthHandler) Test(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "test message",
		"data":    "hello world",
		"success": true,
		"error":   false,
	})
}

// ProtectedTest echoes the session user.
func (h *AuthHandler) ProtectedTest(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	return c.JSON(fiber.Map{
		"message": "This is a protected route",
		"user":    user,
		"success": true,
	})
}
