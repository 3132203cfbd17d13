package admin

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

func token(t *testing.T, username string) string {
	t.Helper()
	tok, err := auth.GetAccessToken(t, testDB, testTokens, username, database.TestSeedPassword)
	require.NoError(t, err)
	return tok
}


func setupRouter() *gin.Engine {
	s, _ := testutil.NewServices(testDB)
	ac := NewAdminController(s.Stats)
	r := gin.New()
	r.GET("/stats/jobs", middleware.RequireAuth(testDB, testTokens), ac.GetJobStats)
	return r
}

func TestGetJobStats(t *testing.T) {
	r := setupRouter()
	admin := token(t, database.TestAdminUser.Username)

	rec, resp := testutil.MakeJSONRequest(nil, admin, r, "/stats/jobs", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, float64(4), resp["total_jobs"])
	byStatus := map[string]float64{}
	for _, row := range resp["jobs_by_status"].([]interface{}) {
		m := row.(map[string]interface{})
		byStatus[m["status"].(string)] = m["count"].(float64)
	}
	assert.Equal(t, map[string]float64{"active": 1, "draft": 1, "closed": 1, "completed": 1}, byStatus)

	rec, _ = testutil.MakeJSONRequest(nil, admin, r, "/stats/jobs?since="+time.Now().Format(time.DateOnly), http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, admin, r, "/stats/jobs?since=yesterday", http.MethodGet)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetJobStats_AdminOnly(t *testing.T) {
	r := setupRouter()

	rec, _ := testutil.MakeJSONRequest(nil, token(t, database.TestUserEmployer1.Username), r, "/stats/jobs", http.MethodGet)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
