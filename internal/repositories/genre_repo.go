package repositories

import "reviewhub/internal/models"

// GenreRepository defines the interface for genre reference data.
type GenreRepository interface {
	Create(genre *models.Genre) error
	GetBySlug(slug string) (*models.Genre, error)
	List(search string) ([]models.Genre, error)
	Delete(slug string) error
}
