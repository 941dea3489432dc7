package controller

import (
	"practicehub/internal/middleware"
	"practicehub/internal/service"
	"practicehub/pkg/utils/response"

	"github.com/gin-gonic/gin"
)

// UserController handles account HTTP endpoints.
type UserController struct {
	userService *service.UserService
}

// NewUserController creates a new UserController.
func NewUserController(userService *service.UserService) *UserController {
	return &UserController{userService: userService}
}

// RegisterRequest defines the registration payload.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest defines the login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued credential.
type LoginResponse struct {
	Token string `json:"token"`
}

// UpdateProfileRequest defines the partial profile update payload.
// Absent fields are left unchanged.
type UpdateProfileRequest struct {
	Username *string `json:"username" binding:"omitempty"`
	Password *string `json:"password" binding:"omitempty"`
}

// Register handles POST /register.
func (h *UserController) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.userService.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "User created successfully")
}

// Login handles POST /login.
func (h *UserController) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.userService.Login(c.Request.Context(), service.LoginInput{
		Username: req.Username,
		Password: req.Password,
		IP:       c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, LoginResponse{Token: result.Token})
}

// Delete handles DELETE /users/:id.
func (h *UserController) Delete(c *gin.Context) {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		response.AbortUnauthorized(c)
		return
	}

	if err := h.userService.Delete(c.Request.Context(), c.Param("id"), caller); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "User deleted successfully")
}

// Update handles PATCH /users/:id.
func (h *UserController) Update(c *gin.Context) {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		response.AbortUnauthorized(c)
		return
	}

	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.userService.UpdateProfile(c.Request.Context(), c.Param("id"), caller, service.UpdateProfileInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "User profile updated")
}
