package handlers

import (
	"log"
	"strconv"

	"reviewhub/internal/middleware"
	"reviewhub/internal/repositories"
	"reviewhub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// TitleHandler handles HTTP requests for titles.
type TitleHandler struct {
	titleService *services.TitleService
	validate     *validator.Validate
}

// NewTitleHandler creates a new TitleHandler.
func NewTitleHandler(titleService *services.TitleService) *TitleHandler {
	return &TitleHandler{
		titleService: titleService,
		validate:     newValidate(),
	}
}

// RegisterRoutes registers the title routes with the Fiber app.
func (h *TitleHandler) RegisterRoutes(router fiber.Router) {
	titleRoutes := router.Group("/titles")
	titleRoutes.Get("/", h.HandleList)
	titleRoutes.Post("/", h.HandleCreate)
	titleRoutes.Get("/:id", h.HandleGet)
	titleRoutes.Patch("/:id", h.HandleUpdate)
	titleRoutes.Delete("/:id", h.HandleDelete)
}

// TitleRequest represents a title write; category and genre are slug
// references. Absent fields stay nil and leave the target unchanged on PATCH.
type TitleRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=256"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Category    *string  `json:"category" validate:"omitempty,slug"`
	Genre       []string `json:"genre" validate:"omitempty,dive,slug"`
}

func (r *TitleRequest) input() services.TitleInput {
	return services.TitleInput{
		Name:         r.Name,
		Year:         r.Year,
		Description:  r.Description,
		CategorySlug: r.Category,
		GenreSlugs:   r.Genre,
	}
}

// HandleList returns titles filtered with ?name=, ?year=, ?category=,
// ?genre=; each carries its computed rating.
func (h *TitleHandler) HandleList(c *fiber.Ctx) error {
	filter := repositories.TitleFilter{
		Name:         c.Query("name"),
		CategorySlug: c.Query("category"),
		GenreSlug:    c.Query("genre"),
	}
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid year filter",
			})
		}
		filter.Year = &year
	}

	titles, err := h.titleService.List(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(titles)
}

// HandleGet returns one title with nested category, genres and rating.
func (h *TitleHandler) HandleGet(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	title, err := h.titleService.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(title)
}

// HandleCreate creates a title. Admin-only.
func (h *TitleHandler) HandleCreate(c *fiber.Ctx) error {
	req, ok := h.parseTitle(c)
	if !ok {
		return nil
	}
	title, err := h.titleService.Create(middleware.CurrentUser(c), req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(title)
}

// HandleUpdate applies a partial patch to a title. Admin-only.
func (h *TitleHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	req, ok := h.parseTitle(c)
	if !ok {
		return nil
	}
	title, err := h.titleService.Update(middleware.CurrentUser(c), id, req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(title)
}

// HandleDelete removes a title. Admin-only.
func (h *TitleHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.titleService.Delete(middleware.CurrentUser(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseTitle decodes and validates a title write. On failure the error
// response has already been written and ok is false.
func (h *TitleHandler) parseTitle(c *fiber.Ctx) (*TitleRequest, bool) {
	var req TitleRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing title request body: %v", err)
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
		return nil, false
	}
	if err := h.validate.Struct(req); err != nil {
		validationErrorResponse(c, err)
		return nil, false
	}
	return &req, true
}
