package services

import (
	"fmt"
	"net/http"

	"reviewhub/internal/models"
	"reviewhub/internal/permissions"
	"reviewhub/internal/repositories"
)

// ReviewService handles business logic for reviews.
type ReviewService struct {
	reviewRepo repositories.ReviewRepository
	titleRepo  repositories.TitleRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo repositories.ReviewRepository, titleRepo repositories.TitleRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, titleRepo: titleRepo}
}

// ListByTitle returns a title's reviews. The title must exist.
func (s *ReviewService) ListByTitle(titleID uint) ([]models.Review, error) {
	if _, err := s.titleRepo.GetByID(titleID); err != nil {
		return nil, dataErr(err)
	}
	reviews, err := s.reviewRepo.ListByTitle(titleID)
	return reviews, dataErr(err)
}

// Get retrieves one review scoped to a title.
func (s *ReviewService) Get(titleID, id uint) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(titleID, id)
	return review, dataErr(err)
}

// Create attaches a review to a title with the actor as author. The author
// is always taken from the authenticated actor, never from the request. A
// second review by the same author on the same title is a conflict; the
// unique index makes this hold even for concurrent requests.
func (s *ReviewService) Create(actor *models.User, titleID uint, text string, score int) (*models.Review, error) {
	if !permissions.AuthorModeratorAdminElseReadOnly(actor, http.MethodPost, 0) {
		return nil, permissionErr(actor)
	}
	if err := validateScore(score); err != nil {
		return nil, err
	}
	if _, err := s.titleRepo.GetByID(titleID); err != nil {
		return nil, dataErr(err)
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: actor.ID,
		Text:     text,
		Score:    score,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, dataErr(err)
	}
	return review, nil
}

// Update applies a partial patch to a review. Only the author, a moderator
// or an admin may mutate it.
func (s *ReviewService) Update(actor *models.User, titleID, id uint, text *string, score *int) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(titleID, id)
	if err != nil {
		return nil, dataErr(err)
	}
	if !permissions.AuthorModeratorAdminElseReadOnly(actor, http.MethodPatch, review.AuthorID) {
		return nil, permissionErr(actor)
	}
	if text != nil {
		review.Text = *text
	}
	if score != nil {
		if err := validateScore(*score); err != nil {
			return nil, err
		}
		review.Score = *score
	}
	if err := s.reviewRepo.Save(review); err != nil {
		return nil, dataErr(err)
	}
	return review, nil
}

// Delete removes a review. Only the author, a moderator or an admin may
// delete it.
func (s *ReviewService) Delete(actor *models.User, titleID, id uint) error {
	review, err := s.reviewRepo.GetByID(titleID, id)
	if err != nil {
		return dataErr(err)
	}
	if !permissions.AuthorModeratorAdminElseReadOnly(actor, http.MethodDelete, review.AuthorID) {
		return permissionErr(actor)
	}
	return dataErr(s.reviewRepo.Delete(titleID, id))
}

func validateScore(score int) error {
	if score < models.MinScore || score > models.MaxScore {
		return fmt.Errorf("%w: score must be between %d and %d", ErrValidation, models.MinScore, models.MaxScore)
	}
	return nil
}
