package handlers

import (
	"log"
	"time"

	"reviewhub/internal/middleware"
	"reviewhub/internal/models"
	"reviewhub/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CommentHandler handles HTTP requests for comments nested under reviews.
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterRoutes registers the comment routes with the Fiber app.
func (h *CommentHandler) RegisterRoutes(router fiber.Router) {
	commentRoutes := router.Group("/titles/:title_id/reviews/:review_id/comments")
	commentRoutes.Get("/", h.HandleList)
	commentRoutes.Post("/", h.HandleCreate)
	commentRoutes.Get("/:id", h.HandleGet)
	commentRoutes.Patch("/:id", h.HandleUpdate)
	commentRoutes.Delete("/:id", h.HandleDelete)
}

// CommentRequest represents a comment write; the author always comes from
// the access token.
type CommentRequest struct {
	Text *string `json:"text"`
}

// CommentResponse is the wire shape of a comment.
type CommentResponse struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

func commentResponse(comment *models.Comment) CommentResponse {
	resp := CommentResponse{
		ID:      comment.ID,
		Text:    comment.Text,
		PubDate: comment.PubDate,
	}
	if comment.Author != nil {
		resp.Author = comment.Author.Username
	}
	return resp
}

type commentPath struct {
	titleID  uint
	reviewID uint
}

func (h *CommentHandler) path(c *fiber.Ctx) (commentPath, error) {
	titleID, err := paramUint(c, "title_id")
	if err != nil {
		return commentPath{}, err
	}
	reviewID, err := paramUint(c, "review_id")
	if err != nil {
		return commentPath{}, err
	}
	return commentPath{titleID: titleID, reviewID: reviewID}, nil
}

// HandleList returns a review's comments.
func (h *CommentHandler) HandleList(c *fiber.Ctx) error {
	p, err := h.path(c)
	if err != nil {
		return respondError(c, err)
	}
	comments, err := h.commentService.ListByReview(p.titleID, p.reviewID)
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		resp = append(resp, commentResponse(&comments[i]))
	}
	return c.JSON(resp)
}

// HandleGet returns one comment.
func (h *CommentHandler) HandleGet(c *fiber.Ctx) error {
	p, err := h.path(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	comment, err := h.commentService.Get(p.titleID, p.reviewID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(commentResponse(comment))
}

// HandleCreate attaches a comment to the review in the path.
func (h *CommentHandler) HandleCreate(c *fiber.Ctx) error {
	p, err := h.path(c)
	if err != nil {
		return respondError(c, err)
	}
	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing comment request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if req.Text == nil || *req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "text is required",
		})
	}

	comment, err := h.commentService.Create(middleware.CurrentUser(c), p.titleID, p.reviewID, *req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(commentResponse(comment))
}

// HandleUpdate applies a partial patch to a comment.
func (h *CommentHandler) HandleUpdate(c *fiber.Ctx) error {
	p, err := h.path(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing comment request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	comment, err := h.commentService.Update(middleware.CurrentUser(c), p.titleID, p.reviewID, id, req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(commentResponse(comment))
}

// HandleDelete removes a comment.
func (h *CommentHandler) HandleDelete(c *fiber.Ctx) error {
	p, err := h.path(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.commentService.Delete(middleware.CurrentUser(c), p.titleID, p.reviewID, id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
