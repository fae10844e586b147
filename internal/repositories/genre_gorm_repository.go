package repositories

import (
	"fmt"

	"reviewhub/internal/models"

	"gorm.io/gorm"
)

// GORMGenreRepository is a GORM implementation of GenreRepository.
type GORMGenreRepository struct {
	db *gorm.DB
}

// NewGORMGenreRepository creates a new instance of GORMGenreRepository.
func NewGORMGenreRepository(db *gorm.DB) *GORMGenreRepository {
	return &GORMGenreRepository{db: db}
}

// Create inserts a new genre.
func (r *GORMGenreRepository) Create(genre *models.Genre) error {
	if err := r.db.Create(genre).Error; err != nil {
		return fmt.Errorf("failed to create genre %s: %w", genre.Slug, err)
	}
	return nil
}

// GetBySlug retrieves a genre by slug.
func (r *GORMGenreRepository) GetBySlug(slug string) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.First(&genre, "slug = ?", slug).Error; err != nil {
		return nil, fmt.Errorf("failed to get genre %s: %w", slug, err)
	}
	return &genre, nil
}

// List returns genres ordered by slug. A non-empty search filters by name
// substring.
func (r *GORMGenreRepository) List(search string) ([]models.Genre, error) {
	q := r.db.Order("slug")
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	var genres []models.Genre
	if err := q.Find(&genres).Error; err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return genres, nil
}

// Delete removes a genre. Join rows keep existing with a null genre
// reference instead of being removed.
func (r *GORMGenreRepository) Delete(slug string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var genre models.Genre
		if err := tx.First(&genre, "slug = ?", slug).Error; err != nil {
			return fmt.Errorf("failed to get genre %s for deletion: %w", slug, err)
		}
		if err := tx.Model(&models.GenreTitle{}).Where("genre_id = ?", genre.ID).
			Update("genre_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&genre).Error
	})
}
