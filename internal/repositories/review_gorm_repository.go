package repositories

import (
	"fmt"

	"reviewhub/internal/models"

	"gorm.io/gorm"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{db: db}
}

// Create inserts a review. The unique index on (title_id, author_id) is the
// authoritative guard against duplicate reviews, so two concurrent creates
// cannot both succeed.
func (r *GORMReviewRepository) Create(review *models.Review) error {
	if err := r.db.Omit("Author").Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review for title %d: %w", review.TitleID, err)
	}
	var author models.User
	if err := r.db.First(&author, review.AuthorID).Error; err != nil {
		return fmt.Errorf("failed to load review author %d: %w", review.AuthorID, err)
	}
	review.Author = &author
	return nil
}

// GetByID retrieves a review scoped to a title.
func (r *GORMReviewRepository) GetByID(titleID, id uint) (*models.Review, error) {
	var review models.Review
	err := r.db.Preload("Author").
		First(&review, "id = ? AND title_id = ?", id, titleID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get review %d for title %d: %w", id, titleID, err)
	}
	return &review, nil
}

// ListByTitle returns a title's reviews ordered by ID.
func (r *GORMReviewRepository) ListByTitle(titleID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Preload("Author").
		Where("title_id = ?", titleID).Order("id").Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for title %d: %w", titleID, err)
	}
	return reviews, nil
}

// Save persists changes to an existing review.
func (r *GORMReviewRepository) Save(review *models.Review) error {
	if err := r.db.Omit("Author").Save(review).Error; err != nil {
		return fmt.Errorf("failed to save review %d: %w", review.ID, err)
	}
	return nil
}

// Delete removes a review and its comments.
func (r *GORMReviewRepository) Delete(titleID, id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, "id = ? AND title_id = ?", id, titleID).Error; err != nil {
			return fmt.Errorf("failed to get review %d for deletion: %w", id, err)
		}
		if err := tx.Where("review_id = ?", review.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&review).Error
	})
}
