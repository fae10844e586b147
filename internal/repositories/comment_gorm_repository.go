package repositories

import (
	"fmt"

	"reviewhub/internal/models"

	"gorm.io/gorm"
)

// GORMCommentRepository is a GORM implementation of CommentRepository.
type GORMCommentRepository struct {
	db *gorm.DB
}

// NewGORMCommentRepository creates a new instance of GORMCommentRepository.
func NewGORMCommentRepository(db *gorm.DB) *GORMCommentRepository {
	return &GORMCommentRepository{db: db}
}

// Create inserts a comment.
func (r *GORMCommentRepository) Create(comment *models.Comment) error {
	if err := r.db.Omit("Author").Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment on review %d: %w", comment.ReviewID, err)
	}
	var author models.User
	if err := r.db.First(&author, comment.AuthorID).Error; err != nil {
		return fmt.Errorf("failed to load comment author %d: %w", comment.AuthorID, err)
	}
	comment.Author = &author
	return nil
}

// GetByID retrieves a comment scoped to a review.
func (r *GORMCommentRepository) GetByID(reviewID, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("Author").
		First(&comment, "id = ? AND review_id = ?", id, reviewID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get comment %d for review %d: %w", id, reviewID, err)
	}
	return &comment, nil
}

// ListByReview returns a review's comments ordered by ID.
func (r *GORMCommentRepository) ListByReview(reviewID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("Author").
		Where("review_id = ?", reviewID).Order("id").Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments for review %d: %w", reviewID, err)
	}
	return comments, nil
}

// Save persists changes to an existing comment.
func (r *GORMCommentRepository) Save(comment *models.Comment) error {
	if err := r.db.Omit("Author").Save(comment).Error; err != nil {
		return fmt.Errorf("failed to save comment %d: %w", comment.ID, err)
	}
	return nil
}

// Delete removes a comment.
func (r *GORMCommentRepository) Delete(reviewID, id uint) error {
	res := r.db.Delete(&models.Comment{}, "id = ? AND review_id = ?", id, reviewID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete comment %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("comment %d for review %d: %w", id, reviewID, gorm.ErrRecordNotFound)
	}
	return nil
}
