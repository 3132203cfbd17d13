package verification

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


func setupRouter() (*gin.Engine, *testutil.RecordingQueue) {
	s, queue := testutil.NewServices(testDB)
	vc := NewVerificationController(s.Verifications)
	r := gin.New()
	g := r.Group("/verifications", middleware.RequireAuth(testDB, testTokens))
	g.POST("", vc.SubmitVerification)
	g.GET("", vc.GetVerifications)
	g.PATCH("/:id/approve", vc.ApproveVerification)
	g.PATCH("/:id/reject", vc.RejectVerification)
	return r, queue
}

func TestVerificationApproval(t *testing.T) {
	r, queue := setupRouter()
	employer := token(t, database.TestUserEmployer2.Username)
	admin := token(t, database.TestAdminUser.Username)

	rec, resp := testutil.MakeJSONRequest(gin.H{"document_link": "https://example.com/license.pdf"}, employer, r, "/verifications", http.MethodPost)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "pending", resp["status"])
	id := int(resp["id"].(float64))

	rec, _ = testutil.MakeJSONRequest(gin.H{"document_link": "https://example.com/again.pdf"}, employer, r, "/verifications", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, list := testutil.MakeJSONListRequest(nil, employer, r, "/verifications", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, list, 1)

	rec, _ = testutil.MakeJSONRequest(nil, employer, r, fmt.Sprintf("/verifications/%d/approve", id), http.MethodPatch)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, resp = testutil.MakeJSONRequest(gin.H{"admin_note": "License checked"}, admin, r, fmt.Sprintf("/verifications/%d/approve", id), http.MethodPatch)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "approved", resp["status"])
	assert.Equal(t, "License checked", resp["admin_note"])
	assert.Equal(t, 1, queue.SentTo(*database.TestUserEmployer2.Email))

	var verified bool
	require.NoError(t, testDB.Table("employers").Select("verified").Where("id = ?", database.TestEmployer2.ID).Scan(&verified).Error)
	assert.True(t, verified)

	rec, _ = testutil.MakeJSONRequest(nil, admin, r, fmt.Sprintf("/verifications/%d/reject", id), http.MethodPatch)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, list = testutil.MakeJSONListRequest(nil, admin, r, "/verifications?status=approved", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, list)
}

func TestSubmitVerification_Rejections(t *testing.T) {
	r, _ := setupRouter()

	rec, _ := testutil.MakeJSONRequest(gin.H{"document_link": "https://example.com/cv.pdf"}, token(t, database.TestUserCandidate1.Username), r, "/verifications", http.MethodPost)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, resp := testutil.MakeJSONRequest(gin.H{"document_link": "not a link"}, token(t, database.TestUserEmployer1.Username), r, "/verifications", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation failed", resp["error"])

	rec, _ = testutil.MakeJSONRequest(nil, token(t, database.TestAdminUser.Username), r, "/verifications/999999/approve", http.MethodPatch)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
