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

// ActivityHandler holds the activity service dependency.
type ActivityHandler struct {
	activityService service.ActivityService
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// --- DTOs ---

// ActivityRequest defines the expected JSON for creating or replacing an
// activity. There is deliberately no userId field: ownership comes from the
// access token, and a client-sent userId is ignored by the decoder.
type ActivityRequest struct {
	ActivityType string    `json:"activityType"`
	Title        string    `json:"title"`
	DateTime     time.Time `json:"dateTime"`
	Duration     float64   `json:"duration"`
	EnergyBurn   float64   `json:"energyBurn"`
	Distance     float64   `json:"distance"`
	Description  string    `json:"description"`
}

func (r ActivityRequest) toInput() service.ActivityInput {
	return service.ActivityInput{
		ActivityType: r.ActivityType,
		Title:        r.Title,
		DateTime:     r.DateTime,
		Duration:     r.Duration,
		EnergyBurn:   r.EnergyBurn,
		Distance:     r.Distance,
		Description:  r.Description,
	}
}

// ActivityResponse is the DTO for returning activity details.
type ActivityResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	ActivityType string    `json:"activityType"`
	Title        string    `json:"title"`
	DateTime     time.Time `json:"dateTime"`
	Duration     float64   `json:"duration"`
	EnergyBurn   float64   `json:"energyBurn"`
	Distance     float64   `json:"distance,omitempty"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// MapActivityToResponse converts a domain.Activity to ActivityResponse DTO.
func MapActivityToResponse(a *domain.Activity) ActivityResponse {
	if a == nil {
		return ActivityResponse{}
	}
	return ActivityResponse{
		ID:           a.ID.Hex(),
		UserID:       a.UserID,
		ActivityType: a.ActivityType,
		Title:        a.Title,
		DateTime:     a.DateTime,
		Duration:     a.Duration,
		EnergyBurn:   a.EnergyBurn,
		Distance:     a.Distance,
		Description:  a.Description,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// MapActivitiesToResponse converts a slice of domain.Activity to response DTOs.
func MapActivitiesToResponse(activities []domain.Activity) []ActivityResponse {
	responses := make([]ActivityResponse, len(activities))
	for i, a := range activities {
		responses[i] = MapActivityToResponse(&a)
	}
	return responses
}

// --- Handler Methods ---

// Create handles POST /api/activity.
func (h *ActivityHandler) Create(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	activity, err := h.activityService.Create(c.Request.Context(), userID, req.toInput())
	if err != nil {
		// Create failures map to 404 with the raw store message.
		// Existing clients depend on this status; do not change it casually.
		abortWithError(c, http.StatusNotFound, err.Error())
		return
	}

	c.JSON(http.StatusCreated, MapActivityToResponse(activity))
}

// List handles GET /api/activity. The result is scoped to the caller and
// wrapped in a {data} envelope.
func (h *ActivityHandler) List(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	activities, err := h.activityService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": MapActivitiesToResponse(activities)})
}

// Update handles PUT /api/activity/:id, replacing all fields of the
// caller-owned activity.
func (h *ActivityHandler) Update(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		// A malformed id surfaces like any other failed store operation.
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	activity, err := h.activityService.Update(c.Request.Context(), userID, id, req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			abortWithError(c, http.StatusNotFound, "Activity not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, MapActivityToResponse(activity))
}

// Delete handles DELETE /api/activity/:id. Any request body is ignored;
// the response carries the deleted document's prior state.
func (h *ActivityHandler) Delete(c *gin.Context) {
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

	activity, err := h.activityService.Delete(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			abortWithError(c, http.StatusNotFound, "Activity not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, MapActivityToResponse(activity))
}
