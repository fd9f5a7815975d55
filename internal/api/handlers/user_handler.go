package handlers

import (
	"net/http"

	"example.com/eventhub/services/events/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles user HTTP requests
type UserHandler struct {
	svc service.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(svc service.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

// CreateUserRequest is the body of POST /users
type CreateUserRequest struct {
	Email     string  `json:"email" binding:"required,email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
}

// UpdateUserRequest is the body of PUT /users/profile
type UpdateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
}

// CreateUser registers a new account
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.svc.CreateUser(c.Request.Context(), service.CreateUserInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// GetProfile returns the requester's profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.svc.GetUser(c.Request.Context(), requester(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile partially updates the requester's profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.svc.UpdateUser(c.Request.Context(), requester(c), service.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// RegisterRoutes registers the handler's routes. Registration is open;
// profile routes require the auth middleware on the group.
func (h *UserHandler) RegisterRoutes(open, authed *gin.RouterGroup) {
	open.POST("/users", h.CreateUser)
	authed.GET("/users/profile", h.GetProfile)
	authed.PUT("/users/profile", h.UpdateProfile)
}
