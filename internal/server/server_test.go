package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"findjob-backend/internal/auth"
	"findjob-backend/internal/config"
	"findjob-backend/internal/database"
	"findjob-backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDB *database.DBinstanceStruct

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

func newTestServer() *Server {
	cfg := &config.Config{
		Port:        8080,
		AllowOrigin: "http://localhost:3000",
		RateLimit:   1000,
	}
	services, _ := testutil.NewServices(testDB)
	return &Server{
		cfg:       cfg,
		DB:        testDB,
		Tokens:    auth.NewTokenManager("server-secret", time.Hour),
		Blacklist: auth.NewInMemoryBlacklistStore(),
		Services:  services,
	}
}

func TestHealth(t *testing.T) {
	r := newTestServer().RegisterRoutes().(*gin.Engine)

	rec, resp := testutil.MakeJSONRequest(nil, "", r, "/health", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "up", resp["status"])
}

func TestLoginLogoutRevokesToken(t *testing.T) {
	r := newTestServer().RegisterRoutes().(*gin.Engine)

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"username": database.TestUserCandidate1.Username,
		"password": database.TestSeedPassword,
	}, "", r, "/api/v1/auth/login", http.MethodPost)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	tok, ok := resp["access_token"].(string)
	require.True(t, ok)

	rec, _ = testutil.MakeJSONRequest(nil, tok, r, "/api/v1/users/current-user", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, tok, r, "/api/v1/auth/logout", http.MethodPost)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, resp = testutil.MakeJSONRequest(nil, tok, r, "/api/v1/users/current-user", http.MethodGet)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token has been revoked", resp["error"])
}

func TestPublicRoutesAllowAnonymous(t *testing.T) {
	r := newTestServer().RegisterRoutes().(*gin.Engine)

	rec, _ := testutil.MakeJSONRequest(nil, "", r, "/api/v1/categories", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, "", r, "/api/v1/stats/jobs", http.MethodGet)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
