package handlers

import (
	"log"

	"reviewhub/internal/middleware"
	"reviewhub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for account administration and the
// self-service /users/me profile.
type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    newValidate(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app. The "me"
// routes are declared before ":username" so the literal segment wins.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/me", h.HandleGetProfile)
	userRoutes.Patch("/me", h.HandleUpdateProfile)
	userRoutes.Get("/", h.HandleList)
	userRoutes.Post("/", h.HandleCreate)
	userRoutes.Get("/:username", h.HandleGet)
	userRoutes.Patch("/:username", h.HandleUpdate)
	userRoutes.Delete("/:username", h.HandleDelete)
}

// UserRequest represents a user write. Absent fields leave the target
// unchanged on PATCH.
type UserRequest struct {
	Username  *string `json:"username" validate:"omitempty,max=150,username"`
	Email     *string `json:"email" validate:"omitempty,email,max=254"`
	Role      *string `json:"role" validate:"omitempty,oneof=user moderator admin"`
	Bio       *string `json:"bio"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
}

func (r *UserRequest) input() services.UserInput {
	return services.UserInput{
		Username:  r.Username,
		Email:     r.Email,
		Role:      r.Role,
		Bio:       r.Bio,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

// HandleList returns accounts; superuser/admin only. ?search= matches a
// username exactly.
func (h *UserHandler) HandleList(c *fiber.Ctx) error {
	users, err := h.userService.List(middleware.CurrentUser(c), c.Query("search"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// HandleGet returns one account by username; superuser/admin only.
func (h *UserHandler) HandleGet(c *fiber.Ctx) error {
	user, err := h.userService.Get(middleware.CurrentUser(c), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleCreate registers an account with an explicit role; superuser/admin
// only.
func (h *UserHandler) HandleCreate(c *fiber.Ctx) error {
	req, ok := h.parseUser(c)
	if !ok {
		return nil
	}
	user, err := h.userService.Create(middleware.CurrentUser(c), req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleUpdate applies a partial patch to an account; superuser/admin only.
func (h *UserHandler) HandleUpdate(c *fiber.Ctx) error {
	req, ok := h.parseUser(c)
	if !ok {
		return nil
	}
	user, err := h.userService.Update(middleware.CurrentUser(c), c.Params("username"), req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleDelete removes an account; superuser/admin only.
func (h *UserHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.userService.Delete(middleware.CurrentUser(c), c.Params("username")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleGetProfile returns the authenticated user's own profile.
func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return respondError(c, services.ErrUnauthenticated)
	}
	return c.JSON(user)
}

// HandleUpdateProfile patches the authenticated user's own profile. Role is
// read-only here for non-admins: a role value in the patch is dropped.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	req, ok := h.parseUser(c)
	if !ok {
		return nil
	}
	user, err := h.userService.UpdateProfile(middleware.CurrentUser(c), req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// parseUser decodes and validates a user write. On failure the error
// response has already been written and ok is false.
func (h *UserHandler) parseUser(c *fiber.Ctx) (*UserRequest, bool) {
	var req UserRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing user request body: %v", err)
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
