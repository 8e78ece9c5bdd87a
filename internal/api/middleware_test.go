package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"justfit/tracker/internal/identity"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type stubVerifier struct {
	ident *identity.Identity
	err   error
	calls int
}

func (v *stubVerifier) Verify(_ context.Context, _ string) (*identity.Identity, error) {
	v.calls++
	if v.err != nil {
		return nil, v.err
	}
	return v.ident, nil
}

func newProtectedRouter(verifier identity.Verifier, activitySvc *stubActivityService, goalSvc *stubGoalService, userSvc *stubUserService) *gin.Engine {
	router := gin.New()
	SetupRoutes(router, verifier, activitySvc, goalSvc, userSvc)
	return router
}

func TestAuthMissingTokenRejectsBeforeVerifierAndStore(t *testing.T) {
	verifier := &stubVerifier{ident: &identity.Identity{UserID: "user-1"}}
	activitySvc := &stubActivityService{}
	goalSvc := &stubGoalService{}
	userSvc := &stubUserService{}
	router := newProtectedRouter(verifier, activitySvc, goalSvc, userSvc)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/activity"},
		{http.MethodGet, "/api/activity"},
		{http.MethodPut, "/api/activity/64f000000000000000000000"},
		{http.MethodDelete, "/api/activity/64f000000000000000000000"},
		{http.MethodPost, "/api/goal"},
		{http.MethodGet, "/api/goal"},
		{http.MethodPut, "/api/goal/64f000000000000000000000"},
		{http.MethodDelete, "/api/goal/64f000000000000000000000"},
		{http.MethodGet, "/api/user"},
		{http.MethodPost, "/api/user"},
	}

	for _, route := range routes {
		req := httptest.NewRequest(route.method, route.path, strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", route.method, route.path, rr.Code)
		}
	}

	if verifier.calls != 0 {
		t.Fatalf("verifier was consulted %d times without a token", verifier.calls)
	}
	if n := activitySvc.calls + goalSvc.calls + userSvc.calls; n != 0 {
		t.Fatalf("store layer was reached %d times without a token", n)
	}
}

func TestAuthInvalidTokenRejectsBeforeStore(t *testing.T) {
	verifier := &stubVerifier{err: identity.ErrUnauthenticated}
	activitySvc := &stubActivityService{}
	router := newProtectedRouter(verifier, activitySvc, &stubGoalService{}, &stubUserService{})

	req := httptest.NewRequest(http.MethodGet, "/api/activity", nil)
	req.Header.Set("x-access-token", "garbage")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if verifier.calls != 1 {
		t.Fatalf("expected exactly one verifier call, got %d", verifier.calls)
	}
	if activitySvc.calls != 0 {
		t.Fatalf("store layer was reached with an invalid token")
	}
	if body := rr.Body.String(); !strings.Contains(body, "Unauthorized") {
		t.Fatalf("expected generic unauthorized message, got %s", body)
	}
}

func TestAuthValidTokenAttachesIdentity(t *testing.T) {
	verifier := &stubVerifier{ident: &identity.Identity{UserID: "uid-42", Email: "runner@example.com"}}

	router := gin.New()
	router.Use(AuthMiddleware(verifier))
	router.GET("/whoami", func(c *gin.Context) {
		userID, err := getUserIDFromContext(c)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, err.Error())
			return
		}
		email, err := getUserEmailFromContext(c)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": userID, "email": email})
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("x-access-token", "valid-token")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if body := rr.Body.String(); !strings.Contains(body, "uid-42") || !strings.Contains(body, "runner@example.com") {
		t.Fatalf("identity not attached to context: %s", body)
	}
}
