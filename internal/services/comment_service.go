package services

import (
	"net/http"

	"reviewhub/internal/models"
	"reviewhub/internal/permissions"
	"reviewhub/internal/repositories"
)

// CommentService handles business logic for comments on reviews.
type CommentService struct {
	commentRepo repositories.CommentRepository
	reviewRepo  repositories.ReviewRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repositories.CommentRepository, reviewRepo repositories.ReviewRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, reviewRepo: reviewRepo}
}

// ListByReview returns a review's comments. The review must belong to the
// given title.
func (s *CommentService) ListByReview(titleID, reviewID uint) ([]models.Comment, error) {
	if _, err := s.reviewRepo.GetByID(titleID, reviewID); err != nil {
		return nil, dataErr(err)
	}
	comments, err := s.commentRepo.ListByReview(reviewID)
	return comments, dataErr(err)
}

// Get retrieves one comment scoped to a review within a title.
func (s *CommentService) Get(titleID, reviewID, id uint) (*models.Comment, error) {
	if _, err := s.reviewRepo.GetByID(titleID, reviewID); err != nil {
		return nil, dataErr(err)
	}
	comment, err := s.commentRepo.GetByID(reviewID, id)
	return comment, dataErr(err)
}

// Create attaches a comment to a review with the actor as author; the parent
// review is resolved within the title from the path, and the author always
// comes from the authenticated actor.
func (s *CommentService) Create(actor *models.User, titleID, reviewID uint, text string) (*models.Comment, error) {
	if !permissions.AuthorModeratorAdminElseReadOnly(actor, http.MethodPost, 0) {
		return nil, permissionErr(actor)
	}
	review, err := s.reviewRepo.GetByID(titleID, reviewID)
	if err != nil {
		return nil, dataErr(err)
	}

	comment := &models.Comment{
		ReviewID: review.ID,
		AuthorID: actor.ID,
		Text:     text,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, dataErr(err)
	}
	return comment, nil
}

// Update applies a partial patch to a comment. Only the author, a moderator
// or an admin may mutate it.
func (s *CommentService) Update(actor *models.User, titleID, reviewID, id uint, text *string) (*models.Comment, error) {
	comment, err := s.Get(titleID, reviewID, id)
	if err != nil {
		return nil, err
	}
	if !permissions.AuthorModeratorAdminElseReadOnly(actor, http.MethodPatch, comment.AuthorID) {
		return nil, permissionErr(actor)
	}
	if text != nil {
		comment.Text = *text
	}
	if err := s.commentRepo.Save(comment); err != nil {
		return nil, dataErr(err)
	}
	return comment, nil
}

// Delete removes a comment. Only the author, a moderator or an admin may
// delete it.
func (s *CommentService) Delete(actor *models.User, titleID, reviewID, id uint) error {
	comment, err := s.Get(titleID, reviewID, id)
	if err != nil {
		return err
	}
	if !permissions.AuthorModeratorAdminElseReadOnly(actor, http.MethodDelete, comment.AuthorID) {
		return permissionErr(actor)
	}
	return dataErr(s.commentRepo.Delete(reviewID, comment.ID))
}
