package repositories

import "reviewhub/internal/models"

// TitleFilter narrows a title listing. Zero values mean "no filter".
type TitleFilter struct {
	Name         string
	Year         *int
	CategorySlug string
	GenreSlug    string
}

// TitleRepository defines the interface for title data access.
type TitleRepository interface {
	Create(title *models.Title, genreIDs []uint) error
	GetByID(id uint) (*models.Title, error)
	List(filter TitleFilter) ([]models.Title, error)
	// Save persists field changes; a non-nil genreIDs replaces the genre set.
	Save(title *models.Title, genreIDs []uint) error
	Delete(id uint) error
	// Rating returns the mean review score for a title, or nil when the
	// title has no reviews.
	Rating(titleID uint) (*float64, error)
}
