package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/modatienda/boutique_api/internal/service"
	"github.com/modatienda/boutique_api/internal/utils"
)

type UserHandler struct {
	userService *service.UserService
	authService *service.AuthService
}

func NewUserHandler(userService *service.UserService, authService *service.AuthService) *UserHandler {
	return &UserHandler{userService: userService, authService: authService}
}

// List handles GET /v1/admin/users with an optional role filter.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Query("role"))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to fetch users")
		return
	}

	utils.Success(c, 200, "Users fetched", users)
}

// Get handles GET /v1/admin/users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.GetUser(c.Param("id"))
	if err != nil {
		if err == utils.ErrUserNotFound {
			utils.Error(c, 404, "USER_NOT_FOUND", "User not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to fetch user")
		return
	}

	utils.Success(c, 200, "User fetched", user)
}

// CreateAdmin handles POST /v1/admin/users, creating another admin account.
func (h *UserHandler) CreateAdmin(c *gin.Context) {
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

	user, err := h.authService.CreateAdmin(req.Email, req.Password, req.Name, req.Phone)
	if err != nil {
		if err == utils.ErrDuplicateEmail {
			utils.Error(c, 409, "DUPLICATE_EMAIL", "An account with this email already exists")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create admin account")
		return
	}

	utils.Success(c, 201, "Admin account created", user)
}
