package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/config"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/httperr"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/models"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/store"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/validators"
)

type AuthHandler struct {
	users  *store.UserStore
	config *config.Config
}

func NewAuthHandler(users *store.UserStore, cfg *config.Config) *AuthHandler {
	return &AuthHandler{users: users, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// Register bootstraps the first admin account. Once any user exists, accounts
// are created by admins through the users API instead.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	count, err := h.users.Count(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_register", "Could not create account.")
		return
	}
	if count > 0 {
		httperr.Forbidden(c, "registration_closed", "Accounts are created by an administrator.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not create account.")
		return
	}

	user := models.User{
		Username:     strings.ToLower(strings.TrimSpace(req.Username)),
		Name:         req.Name,
		Email:        &email,
		PasswordHash: string(hashed),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}

	if err := h.users.Create(c.Request.Context(), &user); err != nil {
		httperr.FromError(c, err)
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not create session.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))

	user, err := h.users.GetByUsername(c.Request.Context(), username)
	if err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Wrong username or password.")
		return
	}

	if !user.IsActive {
		httperr.Unauthorized(c, "account_disabled", "This account is disabled.")
		return
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordHash),
		[]byte(req.Password),
	); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Wrong username or password.")
		return
	}

	token, err := h.generateToken(user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not create session.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  float64(user.ID),
		"role": user.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
