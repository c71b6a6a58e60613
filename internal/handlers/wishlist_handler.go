package handlers

import (
	"log"

	"wishwell/internal/middleware"
	"wishwell/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// WishlistHandler handles HTTP requests for wishlists.
type WishlistHandler struct {
	service     *services.WishlistService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewWishlistHandler creates a new WishlistHandler.
func NewWishlistHandler(service *services.WishlistService, authService *services.AuthService) *WishlistHandler {
	return &WishlistHandler{
		service:     service,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the wishlist routes with the Fiber app.
func (h *WishlistHandler) RegisterRoutes(router fiber.Router) {
	wishlistRoutes := router.Group("/wishlists")
	auth := middleware.AuthRequired(h.authService)

	wishlistRoutes.Get("/", h.HandleGetAll)
	wishlistRoutes.Get("/:id", h.HandleGetByID)
	wishlistRoutes.Post("/", auth, h.HandleCreate)
	wishlistRoutes.Patch("/:id", auth, h.HandleUpdate)
	wishlistRoutes.Delete("/:id", auth, h.HandleDelete)
}

// HandleGetAll retrieves all wishlists, optionally filtered by owner.
func (h *WishlistHandler) HandleGetAll(c *fiber.Ctx) error {
	if ownerID := c.QueryInt("owner_id"); ownerID > 0 {
		wishlists, err := h.service.GetByOwner(uint(ownerID))
		if err != nil {
			return respondError(c, "Could not retrieve wishlists", err)
		}
		return c.JSON(wishlists)
	}

	wishlists, err := h.service.GetAll()
	if err != nil {
		log.Printf("Error getting all wishlists: %v", err)
		return respondError(c, "Could not retrieve wishlists", err)
	}
	return c.JSON(wishlists)
}

// HandleGetByID retrieves a single wishlist with its items.
func (h *WishlistHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	wishlist, err := h.service.GetByID(id)
	if err != nil {
		return respondError(c, "Could not retrieve wishlist", err)
	}
	return c.JSON(wishlist)
}

// HandleCreate creates a new wishlist owned by the authenticated caller.
func (h *WishlistHandler) HandleCreate(c *fiber.Ctx) error {
	var input services.CreateWishlistInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing wishlist request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(input); err != nil {
		return respondValidationError(c, err)
	}

	wishlist, err := h.service.Create(currentUserID(c), input)
	if err != nil {
		log.Printf("Error creating wishlist: %v", err)
		return respondError(c, "Could not create wishlist", err)
	}
	return c.Status(fiber.StatusCreated).JSON(wishlist)
}

// HandleUpdate applies a patch to a wishlist owned by the caller.
func (h *WishlistHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var patch services.WishlistPatch
	if err := c.BodyParser(&patch); err != nil {
		log.Printf("Error parsing wishlist patch: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(patch); err != nil {
		return respondValidationError(c, err)
	}

	wishlist, err := h.service.UpdateSafely(id, currentUserID(c), patch)
	if err != nil {
		log.Printf("Error updating wishlist %d: %v", id, err)
		return respondError(c, "Could not update wishlist", err)
	}
	return c.JSON(wishlist)
}

// HandleDelete removes a wishlist owned by the caller.
func (h *WishlistHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.service.DeleteSafely(id, currentUserID(c)); err != nil {
		log.Printf("Error deleting wishlist %d: %v", id, err)
		return respondError(c, "Could not delete wishlist", err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Wishlist deleted successfully",
	})
}
