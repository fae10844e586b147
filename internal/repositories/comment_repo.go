package repositories

import "reviewhub/internal/models"

// CommentRepository defines the interface for comment data access.
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(reviewID, id uint) (*models.Comment, error)
	ListByReview(reviewID uint) ([]models.Comment, error)
	Save(comment *models.Comment) error
	Delete(reviewID, id uint) error
}
