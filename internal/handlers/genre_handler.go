package handlers

import (
	"log"

	"reviewhub/internal/middleware"
	"reviewhub/internal/models"
	"reviewhub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// GenreHandler handles HTTP requests for genre reference data.
type GenreHandler struct {
	genreService *services.GenreService
	validate     *validator.Validate
}

// NewGenreHandler creates a new GenreHandler.
func NewGenreHandler(genreService *services.GenreService) *GenreHandler {
	return &GenreHandler{
		genreService: genreService,
		validate:     newValidate(),
	}
}

// RegisterRoutes registers the genre routes with the Fiber app.
func (h *GenreHandler) RegisterRoutes(router fiber.Router) {
	genreRoutes := router.Group("/genres")
	genreRoutes.Get("/", h.HandleList)
	genreRoutes.Post("/", h.HandleCreate)
	genreRoutes.Delete("/:slug", h.HandleDelete)
}

// HandleList returns all genres, optionally filtered with ?search=.
func (h *GenreHandler) HandleList(c *fiber.Ctx) error {
	genres, err := h.genreService.List(c.Query("search"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(genres)
}

// HandleCreate creates a genre. Admin-only.
func (h *GenreHandler) HandleCreate(c *fiber.Ctx) error {
	var genre models.Genre
	if err := c.BodyParser(&genre); err != nil {
		log.Printf("Error parsing genre request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(genre); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.genreService.Create(middleware.CurrentUser(c), &genre); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(genre)
}

// HandleDelete removes a genre by slug. Admin-only.
func (h *GenreHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.genreService.Delete(middleware.CurrentUser(c), c.Params("slug")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
