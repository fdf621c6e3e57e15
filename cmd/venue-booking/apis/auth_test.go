package apis

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"venue-booking-backend/cmd/venue-booking/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newRouter(svc *MockBookingService) *echo.Echo {
	auth := NewAuthenticator(testSecret)

	e := echo.New()
	g := e.Group("/api/v1")
	NewEventAPI(svc, auth.Require(RoleClub)).Setup(g)
	NewAdminAPI(svc, new(MockRunner), auth.Require(RoleAdmin)).Setup(g)
	return e
}

func bearer(t *testing.T, claims Claims) string {
	t.Helper()
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	}
	token, err := NewAuthenticator(testSecret).Sign(claims)
	require.NoError(t, err)
	return "Bearer " + token
}

func serve(e *echo.Echo, method, target, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if authz != "" {
		req.Header.Set(echo.HeaderAuthorization, authz)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuth_PublicRoutesNeedNoToken(t *testing.T) {
	svc := new(MockBookingService)
	svc.On("PublishedEvents", mock.Anything).Return([]model.Event{}, nil)

	rec := serve(newRouter(svc), http.MethodGet, "/api/v1/events/approved", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_MissingToken(t *testing.T) {
	rec := serve(newRouter(new(MockBookingService)), http.MethodGet, "/api/v1/events/club", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	tests := []struct {
		name  string
		authz string
	}{
		{name: "garbage", authz: "Bearer not-a-token"},
		{name: "wrong secret", authz: func() string {
			token, _ := NewAuthenticator("other").Sign(Claims{Role: RoleClub, ClubName: "Coding Club"})
			return "Bearer " + token
		}()},
		{name: "expired", authz: bearer(t, Claims{
			Role:             RoleClub,
			ClubName:         "Coding Club",
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))},
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(newRouter(new(MockBookingService)), http.MethodGet, "/api/v1/events/club", tt.authz)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuth_WrongRole(t *testing.T) {
	e := newRouter(new(MockBookingService))

	rec := serve(e, http.MethodGet, "/api/v1/admin/stats", bearer(t, Claims{Role: RoleClub, ClubName: "Coding Club"}))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(e, http.MethodGet, "/api/v1/events/club", bearer(t, Claims{Role: RoleAdmin}))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuth_ClubTokenWithoutClub(t *testing.T) {
	rec := serve(newRouter(new(MockBookingService)), http.MethodGet, "/api/v1/events/club", bearer(t, Claims{Role: RoleClub}))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuth_ValidTokenReachesHandler(t *testing.T) {
	svc := new(MockBookingService)
	svc.On("EventsForClub", mock.Anything, "Coding Club").Return([]model.Event{{ID: "event-1"}}, nil)
	svc.On("Stats", mock.Anything).Return(&model.Stats{}, nil)
	e := newRouter(svc)

	rec := serve(e, http.MethodGet, "/api/v1/events/club", bearer(t, Claims{Role: RoleClub, ClubName: "Coding Club"}))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(e, http.MethodGet, "/api/v1/admin/stats", bearer(t, Claims{Role: RoleAdmin}))
	assert.Equal(t, http.StatusOK, rec.Code)

	svc.AssertExpectations(t)
}
