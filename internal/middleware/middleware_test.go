package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"findjob-backend/internal/auth"
	"findjob-backend/internal/database"
	"findjob-backend/internal/model"
	"findjob-backend/internal/utilities"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDB *database.DBinstanceStruct
var testTokens = auth.NewTokenManager("middleware-secret", time.Hour)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	midTeardown, db, err := database.GetTestDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start test db: %v\n", err)
		os.Exit(1)
	}
	testDB = db
	code := m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = midTeardown(ctx)
	os.Exit(code)
}

func protectedEngine() *gin.Engine {
	r := gin.New()
	r.GET("/protected", RequireAuth(testDB, testTokens), checkUserHandler)
	return r
}

func checkUserHandler(c *gin.Context) {
	user := utilities.OptionalUser(c)
	if user == nil {
		c.JSON(http.StatusOK, gin.H{"ok": true, "anonymous": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "anonymous": false, "role": user.Role, "has_profile": user.Employer != nil || user.Candidate != nil})
}

func loginToken(t *testing.T, username string) string {
	t.Helper()
	token, err := auth.GetAccessToken(t, testDB, testTokens, username, database.TestSeedPassword)
	require.NoError(t, err)
	return token
}

func doGet(engine *gin.Engine, path, token string) (*httptest.ResponseRecorder, map[string]interface{}) {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	var body map[string]interface{}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestRequireAuth_Success(t *testing.T) {
	rec, body := doGet(protectedEngine(), "/protected", loginToken(t, database.TestUserCandidate1.Username))

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, model.RoleCandidate, body["role"])
	assert.Equal(t, true, body["has_profile"])
}

func TestRequireAuth_NoHeader(t *testing.T) {
	rec, body := doGet(protectedEngine(), "/protected", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "invalid authorization header")
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	token, _, err := testTokens.GenerateTokenWithDuration(database.TestUserCandidate1.ID, -time.Minute, auth.JwtIssuer)
	require.NoError(t, err)

	rec, body := doGet(protectedEngine(), "/protected", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Access token expired", body["error"])
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	token, _, err := testTokens.GenerateTokenWithDuration(database.TestUserCandidate1.ID, time.Hour, auth.JwtIssuer)
	require.NoError(t, err)

	rec, body := doGet(protectedEngine(), "/protected", token+"x")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, body["error"], "Failed to validate token")
}

func TestRequireAuth_UnknownUser(t *testing.T) {
	token, _, err := testTokens.GenerateTokenWithDuration(uuid.New(), time.Hour, auth.JwtIssuer)
	require.NoError(t, err)

	rec, body := doGet(protectedEngine(), "/protected", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, body["error"], "User not exist")
}

func TestRequireAuth_InvalidIssuer(t *testing.T) {
	token, _, err := testTokens.GenerateTokenWithDuration(database.TestUserCandidate1.ID, time.Hour, "invalid-issuer")
	require.NoError(t, err)

	rec, body := doGet(protectedEngine(), "/protected", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())
	assert.Contains(t, body["error"], "Invalid token issuer")
}

func TestOptionalAuth(t *testing.T) {
	engine := gin.New()
	engine.GET("/maybe", OptionalAuth(testDB, testTokens), checkUserHandler)

	rec, body := doGet(engine, "/maybe", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["anonymous"])

	rec, body = doGet(engine, "/maybe", loginToken(t, database.TestUserEmployer1.Username))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["anonymous"])
	assert.Equal(t, model.RoleEmployer, body["role"])

	rec, _ = doGet(engine, "/maybe", "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJwtBlacklistCheck(t *testing.T) {
	store := auth.NewInMemoryBlacklistStore()
	engine := gin.New()
	engine.GET("/protected", JwtBlacklistCheck(store), RequireAuth(testDB, testTokens), checkUserHandler)

	token := loginToken(t, database.TestUserCandidate2.Username)
	rec, _ := doGet(engine, "/protected", token)
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, store.AddToBlacklist(context.Background(), token, time.Now().Add(time.Hour)))
	rec, body := doGet(engine, "/protected", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token has been revoked", body["error"])
}

func TestCheckRole_NoRequireAuthBefore(t *testing.T) {
	engine := gin.New()
	engine.GET("/need-role", CheckRole(model.RoleCandidate), checkUserHandler)

	rec, body := doGet(engine, "/need-role", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, body["error"], "user information not provided")
}

func TestCheckRole_WrongRole(t *testing.T) {
	engine := gin.New()
	engine.GET("/need-role", RequireAuth(testDB, testTokens), CheckRole(model.RoleEmployer), checkUserHandler)

	rec, body := doGet(engine, "/need-role", loginToken(t, database.TestUserCandidate1.Username))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, body["error"], "User doesn't have permission to access")
}

func TestCheckRole_MultipleRoles(t *testing.T) {
	engine := gin.New()
	engine.GET("/need-role", RequireAuth(testDB, testTokens), CheckRole(model.RoleCandidate, model.RoleAdmin), checkUserHandler)

	rec, body := doGet(engine, "/need-role", loginToken(t, database.TestUserCandidate1.Username))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.RoleCandidate, body["role"])

	rec, body = doGet(engine, "/need-role", loginToken(t, database.TestAdminUser.Username))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.RoleAdmin, body["role"])

	rec, _ = doGet(engine, "/need-role", loginToken(t, database.TestUserEmployer1.Username))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func readFileHandler(c *gin.Context) {
	rawFile, err := c.FormFile("file")
	if err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			c.JSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{Error: "Entity too large"})
			return
		}
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	f, err := rawFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false})
		return
	}
	defer func() { _ = f.Close() }()
	if _, err := io.ReadAll(f); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func sendFile(t *testing.T, engine *gin.Engine, size int) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "upload.jpg")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte{0xff}, size))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req, _ := http.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestSizeLimit(t *testing.T) {
	engine := gin.New()
	engine.POST("/upload", SizeLimit(1<<20), readFileHandler)

	assert.Equal(t, http.StatusOK, sendFile(t, engine, 512<<10).Code)
	assert.Equal(t, http.StatusOK, sendFile(t, engine, 1<<20).Code)
	assert.NotEqual(t, http.StatusOK, sendFile(t, engine, 2<<20).Code)
}

func TestSafeHeader(t *testing.T) {
	engine := gin.New()
	engine.Use(SafeHeader())
	engine.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec, _ := doGet(engine, "/x", "")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestRateLimiter(t *testing.T) {
	engine := gin.New()
	engine.Use(RateLimiterMiddleware(2))
	engine.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := []int{}
	for i := 0; i < 4; i++ {
		rec, _ := doGet(engine, "/x", "")
		codes = append(codes, rec.Code)
	}
	assert.Contains(t, codes, http.StatusTooManyRequests)
	assert.Equal(t, http.StatusNoContent, codes[0])
}

func TestRequestLogger(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestLogger())
	engine.GET("/x", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	rec, _ := doGet(engine, "/x", "")
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
