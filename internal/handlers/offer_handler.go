package handlers

import (
	"log"

	"wishwell/internal/middleware"
	"wishwell/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OfferHandler handles HTTP requests for offers.
type OfferHandler struct {
	service     *services.OfferService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewOfferHandler creates a new OfferHandler.
func NewOfferHandler(service *services.OfferService, authService *services.AuthService) *OfferHandler {
	return &OfferHandler{
		service:     service,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the offer routes with the Fiber app.
func (h *OfferHandler) RegisterRoutes(router fiber.Router) {
	offerRoutes := router.Group("/offers")
	auth := middleware.AuthRequired(h.authService)

	offerRoutes.Get("/", h.HandleGetAll)
	offerRoutes.Get("/wish/:wishId", h.HandleGetByWish)
	offerRoutes.Get("/user/:userId", h.HandleGetByUser)
	offerRoutes.Get("/:id", h.HandleGetByID)
	offerRoutes.Post("/", auth, h.HandleCreate)
	offerRoutes.Patch("/:id", auth, h.HandleUpdate)
	offerRoutes.Delete("/:id", auth, h.HandleDelete)
}

// HandleGetAll retrieves all offers.
func (h *OfferHandler) HandleGetAll(c *fiber.Ctx) error {
	offers, err := h.service.GetAll()
	if err != nil {
		log.Printf("Error getting all offers: %v", err)
		return respondError(c, "Could not retrieve offers", err)
	}
	return c.JSON(offers)
}

// HandleGetByID retrieves a single offer by its ID.
func (h *OfferHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	offer, err := h.service.GetByID(id)
	if err != nil {
		return respondError(c, "Could not retrieve offer", err)
	}
	return c.JSON(offer)
}

// HandleGetByWish retrieves all offers pledged toward one wish.
func (h *OfferHandler) HandleGetByWish(c *fiber.Ctx) error {
	wishID, err := parseIDParam(c, "wishId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	offers, err := h.service.GetByWish(wishID)
	if err != nil {
		return respondError(c, "Could not retrieve offers", err)
	}
	return c.JSON(offers)
}

// HandleGetByUser retrieves all offers made by one user.
func (h *OfferHandler) HandleGetByUser(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	offers, err := h.service.GetByUser(userID)
	if err != nil {
		return respondError(c, "Could not retrieve offers", err)
	}
	return c.JSON(offers)
}

// HandleCreate records a pledge by the authenticated caller.
func (h *OfferHandler) HandleCreate(c *fiber.Ctx) error {
	var input services.CreateOfferInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing offer request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(input); err != nil {
		return respondValidationError(c, err)
	}

	offer, err := h.service.Create(currentUserID(c), input)
	if err != nil {
		log.Printf("Error creating offer: %v", err)
		return respondError(c, "Could not create offer", err)
	}
	return c.Status(fiber.StatusCreated).JSON(offer)
}

// HandleUpdate applies a patch to an offer made by the caller.
func (h *OfferHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var patch services.OfferPatch
	if err := c.BodyParser(&patch); err != nil {
		log.Printf("Error parsing offer patch: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(patch); err != nil {
		return respondValidationError(c, err)
	}

	offer, err := h.service.UpdateSafely(id, currentUserID(c), patch)
	if err != nil {
		log.Printf("Error updating offer %d: %v", id, err)
		return respondError(c, "Could not update offer", err)
	}
	return c.JSON(offer)
}

// HandleDelete retracts an offer made by the caller.
func (h *OfferHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.service.DeleteSafely(id, currentUserID(c)); err != nil {
		log.Printf("Error deleting offer %d: %v", id, err)
		return respondError(c, "Could not delete offer", err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Offer deleted successfully",
	})
}
