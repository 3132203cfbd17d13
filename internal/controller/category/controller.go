// Package category provides HTTP handlers for job categories.
package category

import (
	"net/http"

	"findjob-backend/internal/service"
	"findjob-backend/internal/utilities"

	"github.com/gin-gonic/gin"
)

// CategoryController handles endpoints under /categories.
type CategoryController struct {
	Categories *service.CategoryService
}

// NewCategoryController creates a new instance of CategoryController.
func NewCategoryController(categories *service.CategoryService) *CategoryController {
	return &CategoryController{
		Categories: categories,
	}
}

// GetCategories lists every category sorted by name.
// @Summary List categories
// @Tags Category
// @Produce json
// @Success 200 {array} model.Category
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /categories [get]
func (cc *CategoryController) GetCategories(c *gin.Context) {
	categories, err := cc.Categories.List(c.Request.Context())
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategoryByID retrieves one category.
// @Summary Retrieve category by ID
// @Tags Category
// @Produce json
// @Param id path integer true "Category ID"
// @Success 200 {object} model.Category
// @Failure 400 {object} utilities.ErrorResponse "Invalid id"
// @Failure 404 {object} utilities.ErrorResponse "Category not exist"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /categories/{id} [get]
func (cc *CategoryController) GetCategoryByID(c *gin.Context) {
	id, ok := utilities.ParseID(c, "id")
	if !ok {
		return
	}
	category, err := cc.Categories.Get(c.Request.Context(), id)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}
