package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the uniform envelope returned by every user endpoint
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// UserHandlers provides HTTP handlers for user operations
type UserHandlers struct {
	userService UserService
	logger      *zap.Logger
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(userService UserService, logger *zap.Logger) *UserHandlers {
	return &UserHandlers{
		userService: userService,
		logger:      logger,
	}
}

// RegisterRoutes registers all user-related routes
func (h *UserHandlers) RegisterRoutes(router *gin.RouterGroup) {
	usersGroup := router.Group("/users")
	{
		usersGroup.GET("", h.ListUsers)
		usersGroup.POST("", h.CreateUser)
		usersGroup.GET("/:id", h.GetUser)
		usersGroup.PUT("/:id", h.UpdateUser)
		usersGroup.DELETE("/:id", h.DeleteUser)
	}
}

// ListUsers handles GET /users
func (h *UserHandlers) ListUsers(c *gin.Context) {
	userList, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Message: "Failed to fetch users"})
		return
	}

	if userList == nil {
		userList = []*User{}
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: userList})
}

// GetUser handles GET /users/:id
func (h *UserHandlers) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: user})
}

// CreateUser handles POST /users
func (h *UserHandlers) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: "Invalid request body"})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: user, Message: "User created successfully"})
}

// UpdateUser handles PUT /users/:id
func (h *UserHandlers) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: "Invalid request body"})
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, err, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: user, Message: "User updated successfully"})
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandlers) DeleteUser(c *gin.Context) {
	_, err := h.userService.DeleteUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to delete user")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Message: "User deleted successfully"})
}

// respondError maps a service failure onto the envelope and status code.
// Unrecognized failures never leak details past the boundary.
func (h *UserHandlers) respondError(c *gin.Context, err error, fallback string) {
	var ue *UserError
	if errors.As(err, &ue) {
		switch ue.Type {
		case ErrorTypeInvalidID, ErrorTypeValidationFailed, ErrorTypeDuplicateEmail:
			c.JSON(http.StatusBadRequest, Response{Success: false, Message: ue.Message})
			return
		case ErrorTypeNotFound:
			c.JSON(http.StatusNotFound, Response{Success: false, Message: ue.Message})
			return
		}
	}

	h.logger.Error(fallback, zap.Error(err))
	c.JSON(http.StatusInternalServerError, Response{Success: false, Message: fallback})
}
