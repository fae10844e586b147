package repositories

import "reviewhub/internal/models"

// CategoryRepository defines the interface for category reference data.
type CategoryRepository interface {
	Create(category *models.Category) error
	GetBySlug(slug string) (*models.Category, error)
	List(search string) ([]models.Category, error)
	Delete(slug string) error
}
