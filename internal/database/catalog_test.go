package database

import (
	"testing"

	"findjob-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog_Embedded(t *testing.T) {
	cats, err := LoadCatalog(categoriesYAML)
	require.NoError(t, err)
	assert.NotEmpty(t, cats)
	for _, c := range cats {
		assert.NotEmpty(t, c.Name)
		assert.Zero(t, c.ID)
	}
}

func TestLoadCatalog_Dedup(t *testing.T) {
	cats, err := LoadCatalog([]byte("categories:\n  - name: A\n  - name: B\n  - name: A\n"))
	require.NoError(t, err)
	assert.Equal(t, []model.Category{{Name: "A"}, {Name: "B"}}, cats)
}

func TestLoadCatalog_Invalid(t *testing.T) {
	_, err := LoadCatalog([]byte("categories:\n  - name: \"\"\n"))
	assert.Error(t, err)

	_, err = LoadCatalog([]byte("categories: [unclosed"))
	assert.Error(t, err)
}

func TestSeedCategories_Idempotent(t *testing.T) {
	var before int64
	require.NoError(t, testDB.Model(&model.Category{}).Count(&before).Error)
	require.NoError(t, testDB.SeedCategories())

	var after int64
	require.NoError(t, testDB.Model(&model.Category{}).Count(&after).Error)
	assert.Equal(t, before, after)
	assert.NotZero(t, TestCategory.ID)
}
