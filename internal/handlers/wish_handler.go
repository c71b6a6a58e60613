package handlers

import (
	"log"

	"wishwell/internal/middleware"
	"wishwell/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// WishHandler handles HTTP requests for wishes.
type WishHandler struct {
	service     *services.WishService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewWishHandler creates a new WishHandler.
func NewWishHandler(service *services.WishService, authService *services.AuthService) *WishHandler {
	return &WishHandler{
		service:     service,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the wish routes with the Fiber app.
func (h *WishHandler) RegisterRoutes(router fiber.Router) {
	wishRoutes := router.Group("/wishes")
	auth := middleware.AuthRequired(h.authService)

	wishRoutes.Get("/", h.HandleGetAll)
	wishRoutes.Get("/:id", h.HandleGetByID)
	wishRoutes.Get("/:id/raised", h.HandleGetRaised)
	wishRoutes.Post("/", auth, h.HandleCreate)
	wishRoutes.Post("/:id/copy", auth, h.HandleCopy)
	wishRoutes.Patch("/:id", auth, h.HandleUpdate)
	wishRoutes.Delete("/:id", auth, h.HandleDelete)
}

// HandleGetAll retrieves all wishes, optionally filtered by owner or
// wishlist.
func (h *WishHandler) HandleGetAll(c *fiber.Ctx) error {
	if ownerID := c.QueryInt("owner_id"); ownerID > 0 {
		wishes, err := h.service.GetByOwner(uint(ownerID))
		if err != nil {
			return respondError(c, "Could not retrieve wishes", err)
		}
		return c.JSON(wishes)
	}
	if wishlistID := c.QueryInt("wishlist_id"); wishlistID > 0 {
		wishes, err := h.service.GetByWishlist(uint(wishlistID))
		if err != nil {
			return respondError(c, "Could not retrieve wishes", err)
		}
		return c.JSON(wishes)
	}

	wishes, err := h.service.GetAll()
	if err != nil {
		log.Printf("Error getting all wishes: %v", err)
		return respondError(c, "Could not retrieve wishes", err)
	}
	return c.JSON(wishes)
}

// HandleGetByID retrieves a single wish with its offers.
func (h *WishHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	wish, err := h.service.GetByID(id)
	if err != nil {
		return respondError(c, "Could not retrieve wish", err)
	}
	return c.JSON(wish)
}

// HandleGetRaised returns the exact pledged total for a wish.
func (h *WishHandler) HandleGetRaised(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	raised, err := h.service.CalculateTotalRaised(id)
	if err != nil {
		return respondError(c, "Could not calculate raised amount", err)
	}
	return c.JSON(fiber.Map{
		"wish_id": id,
		"raised":  raised,
	})
}

// HandleCreate creates a new wish owned by the authenticated caller.
func (h *WishHandler) HandleCreate(c *fiber.Ctx) error {
	var input services.CreateWishInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing wish request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(input); err != nil {
		return respondValidationError(c, err)
	}

	wish, err := h.service.Create(currentUserID(c), input)
	if err != nil {
		log.Printf("Error creating wish: %v", err)
		return respondError(c, "Could not create wish", err)
	}
	return c.Status(fiber.StatusCreated).JSON(wish)
}

// CopyWishRequest selects the caller's wishlist that receives the copy.
type CopyWishRequest struct {
	WishlistID uint `json:"wishlist_id" validate:"required"`
}

// HandleCopy clones another user's wish into one of the caller's wishlists.
func (h *WishHandler) HandleCopy(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var req CopyWishRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing copy request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	clone, err := h.service.Copy(id, currentUserID(c), req.WishlistID)
	if err != nil {
		log.Printf("Error copying wish %d: %v", id, err)
		return respondError(c, "Could not copy wish", err)
	}
	return c.Status(fiber.StatusCreated).JSON(clone)
}

// HandleUpdate applies a patch to a wish owned by the caller.
func (h *WishHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var patch services.WishPatch
	if err := c.BodyParser(&patch); err != nil {
		log.Printf("Error parsing wish patch: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(patch); err != nil {
		return respondValidationError(c, err)
	}

	wish, err := h.service.UpdateSafely(id, currentUserID(c), patch)
	if err != nil {
		log.Printf("Error updating wish %d: %v", id, err)
		return respondError(c, "Could not update wish", err)
	}
	return c.JSON(wish)
}

// HandleDelete removes a wish owned by the caller.
func (h *WishHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.service.DeleteSafely(id, currentUserID(c)); err != nil {
		log.Printf("Error deleting wish %d: %v", id, err)
		return respondError(c, "Could not delete wish", err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Wish deleted successfully",
	})
}
