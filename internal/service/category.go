package service

import (
	"context"

	"findjob-backend/internal/model"
)

// CategoryService reads the category catalog.
type CategoryService struct{ Deps }

// List return all categories ordered by name.
func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	categories := []model.Category{}
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Get return one category.
func (s *CategoryService) Get(ctx context.Context, id uint) (model.Category, error) {
	var category model.Category
	if err := s.DB.WithContext(ctx).First(&category, id).Error; err != nil {
		return model.Category{}, notFound(err)
	}
	return category, nil
}
