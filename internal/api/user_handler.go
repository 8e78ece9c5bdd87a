package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"justfit/tracker/internal/domain"
	"justfit/tracker/internal/service"
)

// UserHandler holds the user service dependency.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// --- DTOs ---

// UserRequest defines the expected JSON for creating or replacing a profile.
type UserRequest struct {
	Name   string  `json:"name"`
	Gender string  `json:"gender"`
	Age    int     `json:"age"`
	Height float64 `json:"height"`
	Weight float64 `json:"weight"`
}

// UserResponse is the DTO for returning profile details.
type UserResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Gender    string    `json:"gender"`
	Age       int       `json:"age"`
	Height    float64   `json:"height"`
	Weight    float64   `json:"weight"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MapUserToResponse converts a domain.User to UserResponse DTO.
func MapUserToResponse(u *domain.User) UserResponse {
	if u == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:        u.ID.Hex(),
		UserID:    u.UserID,
		Name:      u.Name,
		Gender:    u.Gender,
		Age:       u.Age,
		Height:    u.Height,
		Weight:    u.Weight,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// MapUsersToResponse converts a slice of domain.User to response DTOs.
func MapUsersToResponse(users []domain.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, u := range users {
		responses[i] = MapUserToResponse(&u)
	}
	return responses
}

// --- Handler Methods ---

// Get handles GET /api/user, returning the caller's profile (zero or one
// documents) in a {data} envelope.
func (h *UserHandler) Get(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	users, err := h.userService.Get(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": MapUsersToResponse(users)})
}

// Upsert handles POST /api/user. A second POST for the same identity
// replaces the existing profile; both branches answer 201.
func (h *UserHandler) Upsert(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.Upsert(c.Request.Context(), userID, service.ProfileInput{
		Name:   req.Name,
		Gender: req.Gender,
		Age:    req.Age,
		Height: req.Height,
		Weight: req.Weight,
	})
	if err != nil {
		// Profile saves share the create mapping: 404 with the raw message.
		abortWithError(c, http.StatusNotFound, err.Error())
		return
	}

	c.JSON(http.StatusCreated, MapUserToResponse(user))
}
