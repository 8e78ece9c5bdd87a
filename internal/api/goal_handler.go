package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"justfit/tracker/internal/domain"
	"justfit/tracker/internal/service"
)

// GoalHandler holds the goal service dependency.
type GoalHandler struct {
	goalService service.GoalService
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// --- DTOs ---

// GoalRequest defines the expected JSON for creating a goal.
type GoalRequest struct {
	ActivityType string    `json:"activityType"`
	Deadline     time.Time `json:"deadline"`
	EnergyBurn   float64   `json:"energyBurn"`
	Duration     float64   `json:"duration"`
	Distance     float64   `json:"distance"`
	Status       string    `json:"status"`
}

// UpdateGoalStatusRequest is the narrow update contract: only status is
// mutable after creation. Extra fields in the body are dropped by the
// decoder and never reach the store.
type UpdateGoalStatusRequest struct {
	Status string `json:"status"`
}

// GoalResponse is the DTO for returning goal details.
type GoalResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	ActivityType string    `json:"activityType"`
	Deadline     time.Time `json:"deadline"`
	EnergyBurn   float64   `json:"energyBurn"`
	Duration     float64   `json:"duration"`
	Distance     float64   `json:"distance,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// MapGoalToResponse converts a domain.Goal to GoalResponse DTO.
func MapGoalToResponse(g *domain.Goal) GoalResponse {
	if g == nil {
		return GoalResponse{}
	}
	return GoalResponse{
		ID:           g.ID.Hex(),
		UserID:       g.UserID,
		ActivityType: g.ActivityType,
		Deadline:     g.Deadline,
		EnergyBurn:   g.EnergyBurn,
		Duration:     g.Duration,
		Distance:     g.Distance,
		Status:       g.Status,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

// MapGoalsToResponse converts a slice of domain.Goal to response DTOs.
func MapGoalsToResponse(goals []domain.Goal) []GoalResponse {
	responses := make([]GoalResponse, len(goals))
	for i, g := range goals {
		responses[i] = MapGoalToResponse(&g)
	}
	return responses
}

// --- Handler Methods ---

// Create handles POST /api/goal.
func (h *GoalHandler) Create(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	goal, err := h.goalService.Create(c.Request.Context(), userID, service.GoalInput{
		ActivityType: req.ActivityType,
		Deadline:     req.Deadline,
		EnergyBurn:   req.EnergyBurn,
		Duration:     req.Duration,
		Distance:     req.Distance,
		Status:       req.Status,
	})
	if err != nil {
		// Same coarse mapping as activity create: 404 with the raw message.
		abortWithError(c, http.StatusNotFound, err.Error())
		return
	}

	c.JSON(http.StatusCreated, MapGoalToResponse(goal))
}

// List handles GET /api/goal.
func (h *GoalHandler) List(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	goals, err := h.goalService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": MapGoalsToResponse(goals)})
}

// UpdateStatus handles PUT /api/goal/:id. Only the status field is written;
// everything else submitted alongside it is inert.
func (h *GoalHandler) UpdateStatus(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpdateGoalStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	goal, err := h.goalService.UpdateStatus(c.Request.Context(), userID, id, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrGoalNotFound) {
			abortWithError(c, http.StatusNotFound, "Goal not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, MapGoalToResponse(goal))
}

// Delete handles DELETE /api/goal/:id. Clients historically send the full
// field set in the body; it plays no part in matching and is not read.
func (h *GoalHandler) Delete(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	goal, err := h.goalService.Delete(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, service.ErrGoalNotFound) {
			abortWithError(c, http.StatusNotFound, "Goal not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, MapGoalToResponse(goal))
}
