package services

import (
	"fmt"
	"log"

	"wishwell/internal/apperrors"
	"wishwell/internal/models"
	"wishwell/internal/ownership"
	"wishwell/internal/repositories"
	"wishwell/pkg/events"

	"github.com/shopspring/decimal"
)

// minMoney is the smallest accepted price or pledge amount.
var minMoney = decimal.RequireFromString("0.01")

// CreateWishInput carries the client-supplied fields for a new wish. The
// owner is always the authenticated caller; Raised starts at zero.
type CreateWishInput struct {
	Name        string          `json:"name" validate:"required,min=1,max=250"`
	Description string          `json:"description" validate:"omitempty,max=1024"`
	Link        string          `json:"link" validate:"omitempty,url"`
	Image       string          `json:"image" validate:"omitempty,url"`
	Price       decimal.Decimal `json:"price"`
	WishlistID  uint            `json:"wishlist_id" validate:"required"`
}

// WishPatch is a partial update to a wish. Ownership and relation fields
// are accepted in the request body but never applied; Raised is rejected
// outright because a client supplying it indicates a protocol violation.
type WishPatch struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=250"`
	Description *string          `json:"description" validate:"omitempty,max=1024"`
	Link        *string          `json:"link" validate:"omitempty,url"`
	Image       *string          `json:"image" validate:"omitempty,url"`
	Price       *decimal.Decimal `json:"price"`

	Raised     *decimal.Decimal `json:"raised"`
	Copied     *int             `json:"copied"`
	OwnerID    *uint            `json:"owner_id"`
	WishlistID *uint            `json:"wishlist_id"`
	Offers     *[]models.Offer  `json:"offers"`
}

// WishService handles business logic for wishes: ownership-guarded
// mutation, the price lock, and keeping the derived Raised total consistent
// with the wish's offers.
type WishService struct {
	wishRepo     repositories.WishRepository
	wishlistRepo repositories.WishlistRepository
	publisher    events.Publisher
	guard        ownership.Guard[models.Wish]
}

// NewWishService creates a new WishService. publisher may be nil, in which
// case events are skipped.
func NewWishService(wishRepo repositories.WishRepository, wishlistRepo repositories.WishlistRepository, publisher events.Publisher) *WishService {
	return &WishService{
		wishRepo:     wishRepo,
		wishlistRepo: wishlistRepo,
		publisher:    publisher,
		guard: ownership.NewGuard("wish", wishRepo.GetByID, func(w *models.Wish) uint {
			return w.OwnerID
		}),
	}
}

// Create creates a new wish owned by ownerID. The target wishlist must
// exist and belong to the same user.
func (s *WishService) Create(ownerID uint, input CreateWishInput) (*models.Wish, error) {
	if input.Price.LessThan(minMoney) {
		return nil, fmt.Errorf("price must be at least %s: %w", minMoney, apperrors.ErrInvalidOperation)
	}

	wishlist, err := s.wishlistRepo.GetByID(input.WishlistID)
	if err != nil {
		return nil, err
	}
	if wishlist.OwnerID != ownerID {
		return nil, fmt.Errorf("wishlist %d: %w", input.WishlistID, apperrors.ErrForbidden)
	}

	wish := &models.Wish{
		Name:        input.Name,
		Description: input.Description,
		Link:        input.Link,
		Image:       input.Image,
		Price:       input.Price,
		Raised:      decimal.Zero,
		OwnerID:     ownerID,
		WishlistID:  input.WishlistID,
	}
	if err := s.wishRepo.Create(wish); err != nil {
		return nil, err
	}
	return wish, nil
}

// GetAll retrieves all wishes.
func (s *WishService) GetAll() ([]models.Wish, error) {
	return s.wishRepo.GetAll()
}

// GetByID retrieves a single wish with its offers.
func (s *WishService) GetByID(id uint) (*models.Wish, error) {
	return s.wishRepo.GetByID(id)
}

// GetByOwner retrieves all wishes owned by one user.
func (s *WishService) GetByOwner(ownerID uint) ([]models.Wish, error) {
	return s.wishRepo.GetByOwner(ownerID)
}

// GetByWishlist retrieves all wishes in one wishlist.
func (s *WishService) GetByWishlist(wishlistID uint) ([]models.Wish, error) {
	return s.wishRepo.GetByWishlist(wishlistID)
}

// CalculateTotalRaised sums the amounts of all offers against the wish
// using exact decimal arithmetic.
func (s *WishService) CalculateTotalRaised(id uint) (decimal.Decimal, error) {
	wish, err := s.wishRepo.GetByID(id)
	if err != nil {
		return decimal.Zero, err
	}
	return sumOfferAmounts(wish.Offers), nil
}

// RecalculateRaised recomputes the wish's Raised total from its offers and
// persists the correction only when the stored value is stale, so a second
// consecutive call performs no write. Returns the wish with a consistent
// Raised.
func (s *WishService) RecalculateRaised(id uint) (*models.Wish, error) {
	wish, err := s.wishRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	total := sumOfferAmounts(wish.Offers)
	if !wish.Raised.Equal(total) {
		wish.Raised = total
		if err := s.wishRepo.Update(wish); err != nil {
			return nil, err
		}
	}
	return wish, nil
}

// UpdateSafely applies a patch after verifying ownership. An explicit
// Raised fails the whole update; a price change is rejected once any offer
// exists, even when the value is unchanged. The Raised total is recomputed
// after the write so the returned wish is always consistent.
func (s *WishService) UpdateSafely(id, actingUserID uint, patch WishPatch) (*models.Wish, error) {
	wish, err := s.guard.Check(id, actingUserID)
	if err != nil {
		return nil, err
	}

	if patch.Raised != nil {
		return nil, fmt.Errorf("raised is computed from offers and cannot be set directly: %w", apperrors.ErrInvalidOperation)
	}

	if patch.Price != nil {
		if patch.Price.LessThan(minMoney) {
			return nil, fmt.Errorf("price must be at least %s: %w", minMoney, apperrors.ErrInvalidOperation)
		}
		if len(wish.Offers) > 0 {
			return nil, fmt.Errorf("price is frozen once pledges exist: %w", apperrors.ErrInvalidOperation)
		}
		wish.Price = *patch.Price
	}
	if patch.Name != nil {
		wish.Name = *patch.Name
	}
	if patch.Description != nil {
		wish.Description = *patch.Description
	}
	if patch.Link != nil {
		wish.Link = *patch.Link
	}
	if patch.Image != nil {
		wish.Image = *patch.Image
	}

	if err := s.wishRepo.Update(wish); err != nil {
		return nil, err
	}
	return s.RecalculateRaised(id)
}

// DeleteSafely removes a wish after verifying ownership. Deletion is
// rejected while pledges exist; offerers must retract them first.
func (s *WishService) DeleteSafely(id, actingUserID uint) error {
	wish, err := s.guard.Check(id, actingUserID)
	if err != nil {
		return err
	}
	if len(wish.Offers) > 0 {
		return fmt.Errorf("wish %d still has pledges against it: %w", id, apperrors.ErrInvalidOperation)
	}
	return s.wishRepo.Delete(id)
}

// Copy clones another user's wish into one of the caller's own wishlists
// and increments the source wish's copied counter. The clone starts with a
// zero Raised and no offers.
func (s *WishService) Copy(id, actingUserID, targetWishlistID uint) (*models.Wish, error) {
	source, err := s.wishRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	wishlist, err := s.wishlistRepo.GetByID(targetWishlistID)
	if err != nil {
		return nil, err
	}
	if wishlist.OwnerID != actingUserID {
		return nil, fmt.Errorf("wishlist %d: %w", targetWishlistID, apperrors.ErrForbidden)
	}

	clone := &models.Wish{
		Name:        source.Name,
		Description: source.Description,
		Link:        source.Link,
		Image:       source.Image,
		Price:       source.Price,
		Raised:      decimal.Zero,
		OwnerID:     actingUserID,
		WishlistID:  targetWishlistID,
	}
	if err := s.wishRepo.Create(clone); err != nil {
		return nil, err
	}

	source.Copied++
	if err := s.wishRepo.Update(source); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		payload := map[string]interface{}{
			"wish_id": source.ID,
			"copy_id": clone.ID,
			"user_id": actingUserID,
		}
		if err := s.publisher.PublishGiftEvent(events.WishCopied, payload); err != nil {
			log.Printf("Warning: Failed to publish %s event for wish %d: %v", events.WishCopied, source.ID, err)
		}
	}
	return clone, nil
}

func sumOfferAmounts(offers []models.Offer) decimal.Decimal {
	total := decimal.Zero
	for _, offer := range offers {
		total = total.Add(offer.Amount)
	}
	return total
}
