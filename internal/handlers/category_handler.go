package handlers

import (
	"log"

	"reviewhub/internal/middleware"
	"reviewhub/internal/models"
	"reviewhub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for category reference data.
type CategoryHandler struct {
	categoryService *services.CategoryService
	validate        *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		validate:        newValidate(),
	}
}

// RegisterRoutes registers the category routes with the Fiber app.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleList)
	categoryRoutes.Post("/", h.HandleCreate)
	categoryRoutes.Delete("/:slug", h.HandleDelete)
}

// HandleList returns all categories, optionally filtered with ?search=.
func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	categories, err := h.categoryService.List(c.Query("search"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

// HandleCreate creates a category. Admin-only.
func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		log.Printf("Error parsing category request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(category); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.categoryService.Create(middleware.CurrentUser(c), &category); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleDelete removes a category by slug. Admin-only.
func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.categoryService.Delete(middleware.CurrentUser(c), c.Params("slug")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
