package category

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sort"
	"testing"
	"time"

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

func setupRouter() *gin.Engine {
	s, _ := testutil.NewServices(testDB)
	cc := NewCategoryController(s.Categories)
	r := gin.New()
	r.GET("/categories", cc.GetCategories)
	r.GET("/categories/:id", cc.GetCategoryByID)
	return r
}

func TestGetCategories_SortedByName(t *testing.T) {
	r := setupRouter()

	rec, list := testutil.MakeJSONListRequest(nil, "", r, "/categories", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, list)

	names := make([]string, 0, len(list))
	for _, c := range list {
		names = append(names, c["name"].(string))
	}
	assert.True(t, sort.StringsAreSorted(names), names)
	assert.Contains(t, names, "Food & Beverage")
}

func TestGetCategoryByID(t *testing.T) {
	r := setupRouter()

	rec, resp := testutil.MakeJSONRequest(nil, "", r, fmt.Sprintf("/categories/%d", database.TestCategory.ID), http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.TestCategory.Name, resp["name"])

	rec, _ = testutil.MakeJSONRequest(nil, "", r, "/categories/999999", http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
