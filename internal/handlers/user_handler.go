package handlers

import (
	"log"

	"wishwell/internal/middleware"
	"wishwell/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user profiles.
type UserHandler struct {
	service     *services.UserService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService, authService *services.AuthService) *UserHandler {
	return &UserHandler{
		service:     service,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app. The /me
// routes operate on the authenticated caller; profile mutations only exist
// on /me because accounts are self-managed.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	auth := middleware.AuthRequired(h.authService)

	userRoutes.Get("/search", h.HandleSearch)
	userRoutes.Get("/me", auth, h.HandleGetMe)
	userRoutes.Patch("/me", auth, h.HandleUpdateMe)
	userRoutes.Delete("/me", auth, h.HandleDeleteMe)
	userRoutes.Get("/:id", h.HandleGetByID)
	userRoutes.Get("/:id/wishes", h.HandleGetWishes)
	userRoutes.Get("/:id/wishlists", h.HandleGetWishlists)
	userRoutes.Get("/:id/offers", h.HandleGetOffers)
}

// HandleSearch finds users by username or email substring.
func (h *UserHandler) HandleSearch(c *fiber.Ctx) error {
	users, err := h.service.Search(c.Query("query"))
	if err != nil {
		log.Printf("Error searching users: %v", err)
		return respondError(c, "Could not search users", err)
	}
	return c.JSON(users)
}

// HandleGetMe returns the authenticated user's own profile.
func (h *UserHandler) HandleGetMe(c *fiber.Ctx) error {
	user, err := h.service.GetByID(currentUserID(c))
	if err != nil {
		return respondError(c, "Could not retrieve profile", err)
	}
	return c.JSON(user)
}

// HandleUpdateMe applies a profile patch to the authenticated user.
func (h *UserHandler) HandleUpdateMe(c *fiber.Ctx) error {
	var patch services.UserPatch
	if err := c.BodyParser(&patch); err != nil {
		log.Printf("Error parsing profile patch: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(patch); err != nil {
		return respondValidationError(c, err)
	}

	userID := currentUserID(c)
	user, err := h.service.UpdateSafely(userID, userID, patch)
	if err != nil {
		log.Printf("Error updating user %d: %v", userID, err)
		return respondError(c, "Could not update profile", err)
	}
	return c.JSON(user)
}

// HandleDeleteMe deletes the authenticated user's account.
func (h *UserHandler) HandleDeleteMe(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if err := h.service.DeleteSafely(userID, userID); err != nil {
		log.Printf("Error deleting user %d: %v", userID, err)
		return respondError(c, "Could not delete profile", err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile deleted successfully",
	})
}

// HandleGetByID returns a user's public profile.
func (h *UserHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	user, err := h.service.GetByID(id)
	if err != nil {
		return respondError(c, "Could not retrieve user", err)
	}
	return c.JSON(user)
}

// HandleGetWishes returns the wishes owned by a user.
func (h *UserHandler) HandleGetWishes(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	wishes, err := h.service.GetWishes(id)
	if err != nil {
		return respondError(c, "Could not retrieve wishes", err)
	}
	return c.JSON(wishes)
}

// HandleGetWishlists returns the wishlists owned by a user.
func (h *UserHandler) HandleGetWishlists(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	wishlists, err := h.service.GetWishlists(id)
	if err != nil {
		return respondError(c, "Could not retrieve wishlists", err)
	}
	return c.JSON(wishlists)
}

// HandleGetOffers returns the offers made by a user.
func (h *UserHandler) HandleGetOffers(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	offers, err := h.service.GetOffers(id)
	if err != nil {
		return respondError(c, "Could not retrieve offers", err)
	}
	return c.JSON(offers)
}
