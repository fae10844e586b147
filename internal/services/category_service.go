package services

import (
	"net/http"

	"reviewhub/internal/models"
	"reviewhub/internal/permissions"
	"reviewhub/internal/repositories"
)

// CategoryService handles business logic for category reference data.
type CategoryService struct {
	categoryRepo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// List returns categories, optionally filtered by name substring.
func (s *CategoryService) List(search string) ([]models.Category, error) {
	categories, err := s.categoryRepo.List(search)
	return categories, dataErr(err)
}

// Create persists a new category. Admin-only.
func (s *CategoryService) Create(actor *models.User, category *models.Category) error {
	if !permissions.AdminWriteElseReadOnly(actor, http.MethodPost) {
		return permissionErr(actor)
	}
	return dataErr(s.categoryRepo.Create(category))
}

// Delete removes a category by slug. Admin-only; titles in the category are
// left with a null category.
func (s *CategoryService) Delete(actor *models.User, slug string) error {
	if !permissions.AdminWriteElseReadOnly(actor, http.MethodDelete) {
		return permissionErr(actor)
	}
	return dataErr(s.categoryRepo.Delete(slug))
}
