package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"justfit/tracker/internal/domain"
	"justfit/tracker/internal/service"
)

type stubActivityService struct {
	createResult *domain.Activity
	createErr    error
	listResult   []domain.Activity
	listErr      error
	updateResult *domain.Activity
	updateErr    error
	deleteResult *domain.Activity
	deleteErr    error

	calls      int
	lastUserID string
	lastID     primitive.ObjectID
	lastInput  service.ActivityInput
}

func (s *stubActivityService) Create(_ context.Context, userID string, in service.ActivityInput) (*domain.Activity, error) {
	s.calls++
	s.lastUserID = userID
	s.lastInput = in
	return s.createResult, s.createErr
}

func (s *stubActivityService) ListByUser(_ context.Context, userID string) ([]domain.Activity, error) {
	s.calls++
	s.lastUserID = userID
	return s.listResult, s.listErr
}

func (s *stubActivityService) Update(_ context.Context, userID string, id primitive.ObjectID, in service.ActivityInput) (*domain.Activity, error) {
	s.calls++
	s.lastUserID = userID
	s.lastID = id
	s.lastInput = in
	return s.updateResult, s.updateErr
}

func (s *stubActivityService) Delete(_ context.Context, userID string, id primitive.ObjectID) (*domain.Activity, error) {
	s.calls++
	s.lastUserID = userID
	s.lastID = id
	return s.deleteResult, s.deleteErr
}

// newActivityRouter wires the handler behind a fake auth layer that injects
// the given caller identity, the way AuthMiddleware does for real requests.
func newActivityRouter(svc service.ActivityService, userID string) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextUserIDKey, userID)
		c.Set(ContextUserEmailKey, userID+"@example.com")
		c.Next()
	})
	h := NewActivityHandler(svc)
	router.POST("/api/activity", h.Create)
	router.GET("/api/activity", h.List)
	router.PUT("/api/activity/:id", h.Update)
	router.DELETE("/api/activity/:id", h.Delete)
	return router
}

func TestCreateActivityStampsCallerIdentity(t *testing.T) {
	created := &domain.Activity{
		ID:           primitive.NewObjectID(),
		UserID:       "user-a",
		ActivityType: "run",
		Title:        "Morning",
		DateTime:     time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC),
		Duration:     30,
		EnergyBurn:   250,
		Distance:     5,
		Description:  "park loop",
	}
	svc := &stubActivityService{createResult: created}
	router := newActivityRouter(svc, "user-a")

	// The body smuggles a userId for a different user; the decoder has no
	// field for it, so it can never reach the store.
	req := httptest.NewRequest(http.MethodPost, "/api/activity", strings.NewReader(`{
		"activityType": "run",
		"title": "Morning",
		"dateTime": "2024-01-01T06:00:00Z",
		"duration": 30,
		"energyBurn": 250,
		"distance": 5,
		"description": "park loop",
		"userId": "user-b"
	}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if svc.lastUserID != "user-a" {
		t.Fatalf("expected caller identity user-a, got %q", svc.lastUserID)
	}
	if svc.lastInput.Title != "Morning" || svc.lastInput.Duration != 30 {
		t.Fatalf("submitted fields not passed through: %+v", svc.lastInput)
	}

	var resp ActivityResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.UserID != "user-a" {
		t.Fatalf("expected userId user-a in response, got %q", resp.UserID)
	}
	if resp.ActivityType != "run" || resp.Distance != 5 || resp.Description != "park loop" {
		t.Fatalf("submitted fields changed in response: %+v", resp)
	}
}

func TestCreateActivityStoreFailureMapsTo404(t *testing.T) {
	svc := &stubActivityService{createErr: errors.New("document failed validation")}
	router := newActivityRouter(svc, "user-a")

	req := httptest.NewRequest(http.MethodPost, "/api/activity", strings.NewReader(`{"title":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for create failure, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "document failed validation") {
		t.Fatalf("expected raw store message, got %s", rr.Body.String())
	}
}

func TestListActivitiesWrapsDataEnvelope(t *testing.T) {
	svc := &stubActivityService{listResult: []domain.Activity{
		{ID: primitive.NewObjectID(), UserID: "user-a", Title: "Run"},
		{ID: primitive.NewObjectID(), UserID: "user-a", Title: "Swim"},
	}}
	router := newActivityRouter(svc, "user-a")

	req := httptest.NewRequest(http.MethodGet, "/api/activity", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if svc.lastUserID != "user-a" {
		t.Fatalf("list not scoped to caller, got %q", svc.lastUserID)
	}

	var resp struct {
		Data []ActivityResponse `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(resp.Data))
	}
}

func TestListActivitiesEmptyIsEmptyArray(t *testing.T) {
	router := newActivityRouter(&stubActivityService{}, "user-a")

	req := httptest.NewRequest(http.MethodGet, "/api/activity", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if body := strings.TrimSpace(rr.Body.String()); !strings.Contains(body, `"data":[]`) {
		t.Fatalf("expected empty data array, got %s", body)
	}
}

func TestUpdateActivityNotFoundIs404(t *testing.T) {
	svc := &stubActivityService{updateErr: service.ErrActivityNotFound}
	router := newActivityRouter(svc, "user-b")

	id := primitive.NewObjectID()
	req := httptest.NewRequest(http.MethodPut, "/api/activity/"+id.Hex(), strings.NewReader(`{"title":"stolen"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Activity not found") {
		t.Fatalf("expected fixed not-found message, got %s", rr.Body.String())
	}
	if svc.lastUserID != "user-b" || svc.lastID != id {
		t.Fatalf("update not scoped to (id, caller): %q %s", svc.lastUserID, svc.lastID.Hex())
	}
}

func TestUpdateActivityStoreFailureIs500(t *testing.T) {
	svc := &stubActivityService{updateErr: errors.New("connection reset")}
	router := newActivityRouter(svc, "user-a")

	req := httptest.NewRequest(http.MethodPut, "/api/activity/"+primitive.NewObjectID().Hex(), strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "connection reset") {
		t.Fatalf("expected raw store message, got %s", rr.Body.String())
	}
}

func TestUpdateActivityMalformedIDIs500(t *testing.T) {
	svc := &stubActivityService{}
	router := newActivityRouter(svc, "user-a")

	req := httptest.NewRequest(http.MethodPut, "/api/activity/not-an-id", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if svc.calls != 0 {
		t.Fatalf("store reached with malformed id")
	}
}

func TestDeleteActivityReturnsPriorState(t *testing.T) {
	prior := &domain.Activity{
		ID:     primitive.NewObjectID(),
		UserID: "user-a",
		Title:  "Evening ride",
	}
	svc := &stubActivityService{deleteResult: prior}
	router := newActivityRouter(svc, "user-a")

	req := httptest.NewRequest(http.MethodDelete, "/api/activity/"+prior.ID.Hex(), nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp ActivityResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != prior.ID.Hex() || resp.Title != "Evening ride" {
		t.Fatalf("expected deleted document's prior state, got %+v", resp)
	}
}
