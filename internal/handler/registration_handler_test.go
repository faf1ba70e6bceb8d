package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoacon/conference-backend/internal/domain"
	"github.com/aoacon/conference-backend/internal/middleware"
	"github.com/aoacon/conference-backend/internal/pricing"
	"github.com/aoacon/conference-backend/internal/repository"
	"github.com/aoacon/conference-backend/internal/response"
	"github.com/aoacon/conference-backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testAuth stamps the request context as if AuthMiddleware verified a token
func testAuth(userID string, isAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, userID)
		c.Set(middleware.ContextKeyIsAdmin, isAdmin)
		c.Next()
	}
}

type registrationTestEnv struct {
	router   *gin.Engine
	userRepo *repository.MemoryUserRepository
}

func newRegistrationTestEnv(t *testing.T, userID string) *registrationTestEnv {
	t.Helper()
	userRepo := repository.NewMemoryUserRepository()
	regRepo := repository.NewMemoryRegistrationRepository(2026)
	// cutoffs in the future keep the resolved phase at EARLY_BIRD
	now := time.Now()
	phases := pricing.NewPhaseResolver(now.Add(24*time.Hour), now.Add(48*time.Hour))
	svc := service.NewRegistrationService(regRepo, userRepo, pricing.NewEngine(nil), phases, nil)

	h := NewRegistrationHandler(svc)
	router := gin.New()
	group := router.Group("/api/v1", testAuth(userID, false))
	group.POST("/registrations", h.Create)
	group.GET("/registrations/me", h.GetMine)
	group.GET("/registrations/pricing", h.Pricing)

	return &registrationTestEnv{router: router, userRepo: userRepo}
}

func (e *registrationTestEnv) seedUser(t *testing.T, id string, role domain.UserRole) {
	t.Helper()
	user, err := domain.NewUser("Dr. Test", id+"@example.com", "9000000000", "hash", role)
	require.NoError(t, err)
	user.ID = id
	require.NoError(t, e.userRepo.Create(t.Context(), user))
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegistrationHandler_Create(t *testing.T) {
	env := newRegistrationTestEnv(t, "user-1")
	env.seedUser(t, "user-1", domain.RoleAOA)

	w := doJSON(t, env.router, http.MethodPost, "/api/v1/registrations", gin.H{
		"registration_type": "CONFERENCE_ONLY",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "AOA2026-0001", data["registration_number"])
	assert.Equal(t, "PENDING", data["payment_status"])

	pricing := data["pricing"].(map[string]interface{})
	assert.Equal(t, float64(9440), pricing["total_amount"])
}

func TestRegistrationHandler_Create_Duplicate(t *testing.T) {
	env := newRegistrationTestEnv(t, "user-1")
	env.seedUser(t, "user-1", domain.RoleAOA)

	body := gin.H{"registration_type": "CONFERENCE_ONLY"}
	w := doJSON(t, env.router, http.MethodPost, "/api/v1/registrations", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, env.router, http.MethodPost, "/api/v1/registrations", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegistrationHandler_Create_InvalidPackage(t *testing.T) {
	env := newRegistrationTestEnv(t, "user-1")
	env.seedUser(t, "user-1", domain.RoleAOA)

	w := doJSON(t, env.router, http.MethodPost, "/api/v1/registrations", gin.H{
		"registration_type": "GALA_DINNER",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestRegistrationHandler_Create_MissingBody(t *testing.T) {
	env := newRegistrationTestEnv(t, "user-1")
	env.seedUser(t, "user-1", domain.RoleAOA)

	w := doJSON(t, env.router, http.MethodPost, "/api/v1/registrations", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegistrationHandler_GetMine_NotFound(t *testing.T) {
	env := newRegistrationTestEnv(t, "user-1")
	env.seedUser(t, "user-1", domain.RoleAOA)

	w := doJSON(t, env.router, http.MethodGet, "/api/v1/registrations/me", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegistrationHandler_Pricing(t *testing.T) {
	env := newRegistrationTestEnv(t, "user-1")
	env.seedUser(t, "user-1", domain.RolePGS)

	w := doJSON(t, env.router, http.MethodGet, "/api/v1/registrations/pricing?registration_type=CONFERENCE_ONLY&accompanying_persons=1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(3000), data["accompanying_total"])
	assert.NotEmpty(t, data["booking_phase"])
}

func TestRegistrationHandler_Pricing_MatrixWithoutType(t *testing.T) {
	env := newRegistrationTestEnv(t, "user-1")
	env.seedUser(t, "user-1", domain.RoleNonAOA)

	w := doJSON(t, env.router, http.MethodGet, "/api/v1/registrations/pricing", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.NotEmpty(t, data["booking_phase"])

	matrix := data["pricing"].(map[string]interface{})
	require.Contains(t, matrix, "CONFERENCE_ONLY")
	require.Contains(t, matrix, "WORKSHOP_CONFERENCE")
	require.Contains(t, matrix, "COMBO")

	combo := matrix["COMBO"].(map[string]interface{})
	assert.NotZero(t, combo["total_amount"])
}
