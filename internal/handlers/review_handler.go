package handlers

import (
	"log"
	"time"

	"reviewhub/internal/middleware"
	"reviewhub/internal/models"
	"reviewhub/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles HTTP requests for reviews nested under titles.
type ReviewHandler struct {
	reviewService *services.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// RegisterRoutes registers the review routes with the Fiber app.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	reviewRoutes := router.Group("/titles/:title_id/reviews")
	reviewRoutes.Get("/", h.HandleList)
	reviewRoutes.Post("/", h.HandleCreate)
	reviewRoutes.Get("/:id", h.HandleGet)
	reviewRoutes.Patch("/:id", h.HandleUpdate)
	reviewRoutes.Delete("/:id", h.HandleDelete)
}

// ReviewRequest represents a review write. The author is never accepted from
// the client; it always comes from the access token.
type ReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// ReviewResponse is the wire shape of a review, with the author flattened to
// a username.
type ReviewResponse struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Score   int       `json:"score"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

func reviewResponse(review *models.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:      review.ID,
		Text:    review.Text,
		Score:   review.Score,
		PubDate: review.PubDate,
	}
	if review.Author != nil {
		resp.Author = review.Author.Username
	}
	return resp
}

// HandleList returns a title's reviews.
func (h *ReviewHandler) HandleList(c *fiber.Ctx) error {
	titleID, err := paramUint(c, "title_id")
	if err != nil {
		return respondError(c, err)
	}
	reviews, err := h.reviewService.ListByTitle(titleID)
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		resp = append(resp, reviewResponse(&reviews[i]))
	}
	return c.JSON(resp)
}

// HandleGet returns one review.
func (h *ReviewHandler) HandleGet(c *fiber.Ctx) error {
	titleID, err := paramUint(c, "title_id")
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	review, err := h.reviewService.Get(titleID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reviewResponse(review))
}

// HandleCreate attaches a review to the title in the path. A second review
// by the same user on the same title is rejected as a conflict.
func (h *ReviewHandler) HandleCreate(c *fiber.Ctx) error {
	titleID, err := paramUint(c, "title_id")
	if err != nil {
		return respondError(c, err)
	}
	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing review request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if req.Text == nil || req.Score == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "text and score are required",
		})
	}

	review, err := h.reviewService.Create(middleware.CurrentUser(c), titleID, *req.Text, *req.Score)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(reviewResponse(review))
}

// HandleUpdate applies a partial patch to a review.
func (h *ReviewHandler) HandleUpdate(c *fiber.Ctx) error {
	titleID, err := paramUint(c, "title_id")
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing review request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	review, err := h.reviewService.Update(middleware.CurrentUser(c), titleID, id, req.Text, req.Score)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reviewResponse(review))
}

// HandleDelete removes a review.
func (h *ReviewHandler) HandleDelete(c *fiber.Ctx) error {
	titleID, err := paramUint(c, "title_id")
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.reviewService.Delete(middleware.CurrentUser(c), titleID, id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
