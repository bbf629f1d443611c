package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/localhub-app/localhub-backend/internal/auth"
	"github.com/localhub-app/localhub-backend/internal/middleware"
	"github.com/localhub-app/localhub-backend/internal/models"
	"github.com/localhub-app/localhub-backend/internal/services"
	"github.com/localhub-app/localhub-backend/internal/storage"
)

// AuthHandler owns the login and OTP verification flows.
type AuthHandler struct {
	store  storage.Store
	tokens *auth.TokenManager
	otp    *services.OTPService
}

func NewAuthHandler(store storage.Store, tokens *auth.TokenManager, otp *services.OTPService) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens, otp: otp}
}

type adminResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Login authenticates an admin account with email + password and
// issues a 24h session token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Email and password are required",
		})
	}

	admin, err := h.store.GetAdminByEmail(req.Email)
	if err != nil {
		// Same response as a bad password so the endpoint does not
		// confirm which emails exist.
		return invalidCredentials(c)
	}
	if !admin.IsActive || !auth.CheckPassword(admin.Password, req.Password) {
		return invalidCredentials(c)
	}

	role, ok := auth.ParseRole(admin.Role)
	if !ok {
		log.Printf("admin %d has unknown role %q", admin.ID, admin.Role)
		return invalidCredentials(c)
	}

	token, err := h.tokens.Issue(strconv.FormatUint(uint64(admin.ID), 10), role, "admin")
	if err != nil {
		return serverError(c)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": adminResponse{
			ID:    admin.ID,
			Email: admin.Email,
			Name:  admin.Name,
			Role:  admin.Role,
		},
	})
}

// CheckUser reports whether a user account exists for the phone number.
func (h *AuthHandler) CheckUser(c *fiber.Ctx) error {
	var req struct {
		PhoneNumber string `json:"phoneNumber"`
	}
	if err := c.BodyParser(&req); err != nil || req.PhoneNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Phone number is required",
		})
	}

	user, err := h.store.GetUserByPhone(req.PhoneNumber)
	if errors.Is(err, storage.ErrNotFound) {
		return c.JSON(fiber.Map{"exists": false})
	}
	if err != nil {
		return serverError(c)
	}
	return c.JSON(fiber.Map{"exists": true, "user": user})
}

// Register creates a user account up front. Most accounts are created
// implicitly by VerifyOTP; this covers admin-assisted onboarding.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req struct {
		PhoneNumber string `json:"phoneNumber"`
		Name        string `json:"name"`
		Email       string `json:"email"`
		District    string `json:"district"`
		UserType    string `json:"userType"`
	}
	if err := c.BodyParser(&req); err != nil || req.PhoneNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Phone number is required",
		})
	}

	userType := req.UserType
	if userType == "" {
		userType = "individual"
	}

	user, err := h.store.CreateUser(&models.User{
		Phone:    req.PhoneNumber,
		Name:     req.Name,
		Email:    req.Email,
		District: req.District,
		UserType: userType,
		IsActive: true,
	})
	if errors.Is(err, storage.ErrDuplicate) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Account already exists for this phone number",
		})
	}
	if err != nil {
		return serverError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// SendOTP starts phone verification. The response never carries the
// code regardless of which delivery path was taken.
func (h *AuthHandler) SendOTP(c *fiber.Ctx) error {
	var req struct {
		PhoneNumber string `json:"phoneNumber"`
	}
	if err := c.BodyParser(&req); err != nil || req.PhoneNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Phone number is required",
		})
	}

	if _, err := h.otp.RequestOTP(req.PhoneNumber); err != nil {
		log.Printf("send otp failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to send OTP",
		})
	}

	return c.JSON(fiber.Map{"message": "OTP sent successfully"})
}

// VerifyOTP redeems a code, creates the account on first verification
// and issues a user session token.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req struct {
		PhoneNumber string `json:"phoneNumber"`
		Code        string `json:"code"`
	}
	if err := c.BodyParser(&req); err != nil || req.PhoneNumber == "" || req.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Phone number and code are required",
		})
	}

	if err := h.otp.VerifyOTP(req.PhoneNumber, req.Code); err != nil {
		switch {
		case errors.Is(err, services.ErrExpiredOTP):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "OTP expired", "verified": false,
			})
		case errors.Is(err, services.ErrInvalidOTP):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid OTP", "verified": false,
			})
		case errors.Is(err, services.ErrProviderUnavailable):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"message": "Verification service unavailable", "verified": false,
			})
		}
		return serverError(c)
	}

	user, err := h.store.CreateUserIfAbsent(req.PhoneNumber, &models.User{
		UserType:   "individual",
		IsActive:   true,
		IsVerified: true,
	})
	if err != nil {
		return serverError(c)
	}
	if !user.IsVerified {
		user.IsVerified = true
		if err := h.store.UpdateUser(user); err != nil {
			return serverError(c)
		}
	}
	_ = h.store.TouchUserActivity(user.ID)

	token, err := h.tokens.Issue(strconv.FormatUint(uint64(user.ID), 10), auth.RoleUser, "user")
	if err != nil {
		return serverError(c)
	}

	return c.JSON(fiber.Map{
		"message":  "OTP verified successfully",
		"verified": true,
		"token":    token,
		"user":     user,
	})
}

// Logout is a no-op on the server: tokens are stateless and stay valid
// until expiry, the client discards its copy.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// GetProfile returns the account behind the current token.
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	claims := middleware.Identity(c)
	id, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil {
		return serverError(c)
	}

	if claims.Type == "admin" {
		admin, err := h.store.GetAdminByID(uint(id))
		if err != nil {
			return notFound(c, "User not found")
		}
		return c.JSON(adminResponse{ID: admin.ID, Email: admin.Email, Name: admin.Name, Role: admin.Role})
	}

	user, err := h.store.GetUser(uint(id))
	if err != nil {
		return notFound(c, "User not found")
	}
	return c.JSON(user)
}

// UpdateProfile updates mutable fields of the current account.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	claims := middleware.Identity(c)
	id, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil {
		return serverError(c)
	}

	var req struct {
		Name             string `json:"name"`
		Email            string `json:"email"`
		District         string `json:"district"`
		ProfileType      string `json:"profileType"`
		BusinessName     string `json:"businessName"`
		BusinessCategory string `json:"businessCategory"`
		Address          string `json:"address"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if claims.Type == "admin" {
		admin, err := h.store.GetAdminByID(uint(id))
		if err != nil {
			return notFound(c, "User not found")
		}
		if req.Name != "" {
			admin.Name = req.Name
		}
		if err := h.store.UpdateAdmin(admin); err != nil {
			return serverError(c)
		}
		return c.JSON(adminResponse{ID: admin.ID, Email: admin.Email, Name: admin.Name, Role: admin.Role})
	}

	user, err := h.store.GetUser(uint(id))
	if err != nil {
		return notFound(c, "User not found")
	}
	applyProfileUpdate(user, req.Name, req.Email, req.ProfileType, req.BusinessName, req.BusinessCategory, req.Address, req.District)
	if err := h.store.UpdateUser(user); err != nil {
		return serverError(c)
	}
	return c.JSON(user)
}

// ChangePassword rotates the password of the current admin account.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	claims := middleware.Identity(c)
	if claims.Type != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Insufficient permissions",
		})
	}

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.BodyParser(&req); err != nil || req.CurrentPassword == "" || req.NewPassword == "" {
		return badRequest(c, "Current and new password are required")
	}
	if len(req.NewPassword) < 8 {
		return badRequest(c, "Password must be at least 8 characters")
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil {
		return serverError(c)
	}
	admin, err := h.store.GetAdminByID(uint(id))
	if err != nil {
		return notFound(c, "User not found")
	}
	if !auth.CheckPassword(admin.Password, req.CurrentPassword) {
		return invalidCredentials(c)
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return serverError(c)
	}
	admin.Password = hash
	if err := h.store.UpdateAdmin(admin); err != nil {
		return serverError(c)
	}

	return c.JSON(fiber.Map{"message": "Password changed successfully"})
}

func applyProfileUpdate(user *models.User, name, email, profileType, businessName, businessCategory, address, district string) {
	if name != "" {
		user.Name = name
	}
	if email != "" {
		user.Email = email
	}
	if profileType != "" {
		user.ProfileType = profileType
	}
	if businessName != "" {
		user.BusinessName = businessName
	}
	if businessCategory != "" {
		user.BusinessCategory = businessCategory
	}
	if address != "" {
		user.Address = address
	}
	if district != "" {
		user.District = district
	}
}

func invalidCredentials(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid credentials",
	})
}
