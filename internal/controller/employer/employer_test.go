package employer

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"findjob-backend/internal/auth"
	"findjob-backend/internal/database"
	"findjob-backend/internal/middleware"
	"findjob-backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDB *database.DBinstanceStruct
var testTokens = auth.NewTokenManager("test-secret", time.Hour)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	teardown, db, err := database.GetTestDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start test db: %v\n", err)
		os.Exit(1)
	}
	testDB = db
	code := m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = teardown(ctx)
	os.Exit(code)
}

func setupRouter() *gin.Engine {
	s, _ := testutil.NewServices(testDB)
	ec := NewEmployerController(s.Employers)
	r := gin.New()
	required := middleware.RequireAuth(testDB, testTokens)
	r.GET("/employers", required, ec.GetEmployers)
	r.GET("/employers/:id", ec.GetEmployerByID)
	r.PATCH("/employers/:id", required, ec.EditEmployerProfile)
	r.GET("/employers/:id/map-data", ec.GetEmployerMapData)
	return r
}

func token(t *testing.T, username string) string {
	t.Helper()
	tok, err := auth.GetAccessToken(t, testDB, testTokens, username, database.TestSeedPassword)
	require.NoError(t, err)
	return tok
}

func TestGetEmployers_AdminOnly(t *testing.T) {
	r := setupRouter()

	rec, list := testutil.MakeJSONListRequest(nil, token(t, database.TestAdminUser.Username), r, "/employers", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.GreaterOrEqual(t, len(list), 2)

	rec, _ = testutil.MakeJSONRequest(nil, token(t, database.TestUserEmployer1.Username), r, "/employers", http.MethodGet)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetEmployerByID(t *testing.T) {
	r := setupRouter()

	rec, resp := testutil.MakeJSONRequest(nil, "", r, fmt.Sprintf("/employers/%d", database.TestEmployer1.ID), http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.TestEmployer1.Name, resp["name"])
	assert.Equal(t, true, resp["verified"])

	rec, _ = testutil.MakeJSONRequest(nil, "", r, "/employers/999999", http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, "", r, "/employers/abc", http.MethodGet)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEditEmployerProfile(t *testing.T) {
	r := setupRouter()
	path := fmt.Sprintf("/employers/%d", database.TestEmployer2.ID)

	rec, resp := testutil.MakeJSONRequest(gin.H{"location": "Ba Dinh, Ha Noi"}, token(t, database.TestUserEmployer2.Username), r, path, http.MethodPatch)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Ba Dinh, Ha Noi", resp["location"])
	assert.Equal(t, database.TestEmployer2.Name, resp["name"])

	rec, _ = testutil.MakeJSONRequest(gin.H{"location": "Hijacked"}, token(t, database.TestUserEmployer1.Username), r, path, http.MethodPatch)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = testutil.MakeJSONRequest(gin.H{"verified": true}, token(t, database.TestUserEmployer2.Username), r, path, http.MethodPatch)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, resp = testutil.MakeJSONRequest(gin.H{"coordinates": gin.H{"latitude": 120, "longitude": 0}}, token(t, database.TestUserEmployer2.Username), r, path, http.MethodPatch)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation failed", resp["error"])
}

func TestGetEmployerMapData(t *testing.T) {
	r := setupRouter()

	rec, resp := testutil.MakeJSONRequest(nil, "", r, fmt.Sprintf("/employers/%d/map-data", database.TestEmployer1.ID), http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testutil.MapsAPIKey, resp["google_maps_api_key"])
	coords := resp["coordinates"].(map[string]interface{})
	assert.InDelta(t, 10.7769, coords["latitude"], 1e-6)
}
