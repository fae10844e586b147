package repositories

import "reviewhub/internal/models"

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	// Create inserts a review. A duplicate (title, author) pair surfaces as
	// gorm.ErrDuplicatedKey from the composite unique index.
	Create(review *models.Review) error
	GetByID(titleID, id uint) (*models.Review, error)
	ListByTitle(titleID uint) ([]models.Review, error)
	Save(review *models.Review) error
	Delete(titleID, id uint) error
}
