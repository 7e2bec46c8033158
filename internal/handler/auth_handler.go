package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/modatienda/boutique_api/internal/middleware"
	"github.com/modatienda/boutique_api/internal/service"
	"github.com/modatienda/boutique_api/internal/utils"
)

type AuthHandler struct {
	authService  *service.AuthService
	loginLimiter *middleware.LoginRateLimiter
}

func NewAuthHandler(authService *service.AuthService, loginLimiter *middleware.LoginRateLimiter) *AuthHandler {
	return &AuthHandler{authService: authService, loginLimiter: loginLimiter}
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if h.loginLimiter != nil && !h.loginLimiter.Allow(c.ClientIP()) {
		utils.Error(c, 429, "TOO_MANY_ATTEMPTS", "Too many failed login attempts, try again later")
		return
	}

	token, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid email or password")
		return
	}

	if h.loginLimiter != nil {
		h.loginLimiter.Reset(c.ClientIP())
	}

	utils.Success(c, 200, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

// Register handles POST /v1/auth/register, creating a customer account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Name     string `json:"name" binding:"required"`
		Phone    string `json:"phone"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	user, err := h.authService.Register(req.Email, req.Password, req.Name, req.Phone)
	if err != nil {
		if err == utils.ErrDuplicateEmail {
			utils.Error(c, 409, "DUPLICATE_EMAIL", "An account with this email already exists")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create account")
		return
	}

	utils.Success(c, 201, "Account created", user)
}
