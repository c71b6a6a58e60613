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

// CreateOfferInput carries the client-supplied fields for a new offer. The
// pledging user is always the authenticated caller.
type CreateOfferInput struct {
	Amount decimal.Decimal `json:"amount"`
	Hidden bool            `json:"hidden"`
	ItemID uint            `json:"item_id" validate:"required"`
}

// OfferPatch is a partial update to an offer. UserID and ItemID are
// accepted in the request body but never applied.
type OfferPatch struct {
	Amount *decimal.Decimal `json:"amount"`
	Hidden *bool            `json:"hidden"`

	UserID *uint `json:"user_id"`
	ItemID *uint `json:"item_id"`
}

// OfferService handles business logic for offers. Every offer mutation ends
// with a recalculation of the target wish's Raised total, and publishes an
// event when an events client is configured.
type OfferService struct {
	offerRepo repositories.OfferRepository
	wishes    *WishService
	publisher events.Publisher
	guard     ownership.Guard[models.Offer]
}

// NewOfferService creates a new OfferService. publisher may be nil, in
// which case events are skipped.
func NewOfferService(offerRepo repositories.OfferRepository, wishes *WishService, publisher events.Publisher) *OfferService {
	return &OfferService{
		offerRepo: offerRepo,
		wishes:    wishes,
		publisher: publisher,
		guard: ownership.NewGuard("offer", offerRepo.GetByID, func(o *models.Offer) uint {
			return o.UserID
		}),
	}
}

// Create records a pledge by userID toward a wish. Pledging toward your own
// wish is rejected, as is an amount that would push the raised total past
// the wish's price. The wish's Raised is recalculated afterwards.
func (s *OfferService) Create(userID uint, input CreateOfferInput) (*models.Offer, error) {
	if input.Amount.LessThan(minMoney) {
		return nil, fmt.Errorf("amount must be at least %s: %w", minMoney, apperrors.ErrInvalidOperation)
	}

	wish, err := s.wishes.GetByID(input.ItemID)
	if err != nil {
		return nil, err
	}
	if wish.OwnerID == userID {
		return nil, fmt.Errorf("cannot pledge toward your own wish: %w", apperrors.ErrInvalidOperation)
	}
	if wish.Raised.Add(input.Amount).GreaterThan(wish.Price) {
		return nil, fmt.Errorf("pledge exceeds the remaining %s: %w",
			wish.Price.Sub(wish.Raised), apperrors.ErrInvalidOperation)
	}

	offer := &models.Offer{
		Amount: input.Amount,
		Hidden: input.Hidden,
		UserID: userID,
		ItemID: input.ItemID,
	}
	if err := s.offerRepo.Create(offer); err != nil {
		return nil, err
	}

	if _, err := s.wishes.RecalculateRaised(input.ItemID); err != nil {
		return nil, err
	}

	s.publish(events.OfferCreated, offer)
	return offer, nil
}

// GetAll retrieves all offers.
func (s *OfferService) GetAll() ([]models.Offer, error) {
	return s.offerRepo.GetAll()
}

// GetByID retrieves a single offer by its ID.
func (s *OfferService) GetByID(id uint) (*models.Offer, error) {
	return s.offerRepo.GetByID(id)
}

// GetByWish retrieves all offers pledged toward one wish.
func (s *OfferService) GetByWish(wishID uint) ([]models.Offer, error) {
	return s.offerRepo.GetByWish(wishID)
}

// GetByUser retrieves all offers made by one user.
func (s *OfferService) GetByUser(userID uint) ([]models.Offer, error) {
	return s.offerRepo.GetByUser(userID)
}

// UpdateSafely applies a patch after verifying the acting user is the
// original offerer. An amount change is checked against the wish's
// remaining headroom and followed by a Raised recalculation.
func (s *OfferService) UpdateSafely(id, actingUserID uint, patch OfferPatch) (*models.Offer, error) {
	offer, err := s.guard.Check(id, actingUserID)
	if err != nil {
		return nil, err
	}

	amountChanged := false
	if patch.Amount != nil && !patch.Amount.Equal(offer.Amount) {
		if patch.Amount.LessThan(minMoney) {
			return nil, fmt.Errorf("amount must be at least %s: %w", minMoney, apperrors.ErrInvalidOperation)
		}
		wish, err := s.wishes.GetByID(offer.ItemID)
		if err != nil {
			return nil, err
		}
		// Headroom excludes this offer's current amount.
		remaining := wish.Price.Sub(wish.Raised).Add(offer.Amount)
		if patch.Amount.GreaterThan(remaining) {
			return nil, fmt.Errorf("pledge exceeds the remaining %s: %w", remaining, apperrors.ErrInvalidOperation)
		}
		offer.Amount = *patch.Amount
		amountChanged = true
	}
	if patch.Hidden != nil {
		offer.Hidden = *patch.Hidden
	}

	if err := s.offerRepo.Update(offer); err != nil {
		return nil, err
	}

	if amountChanged {
		if _, err := s.wishes.RecalculateRaised(offer.ItemID); err != nil {
			return nil, err
		}
	}

	s.publish(events.OfferUpdated, offer)
	return offer, nil
}

// DeleteSafely removes an offer after verifying the acting user is the
// original offerer, then recalculates the wish's Raised total.
func (s *OfferService) DeleteSafely(id, actingUserID uint) error {
	offer, err := s.guard.Check(id, actingUserID)
	if err != nil {
		return err
	}

	if err := s.offerRepo.Delete(id); err != nil {
		return err
	}

	if _, err := s.wishes.RecalculateRaised(offer.ItemID); err != nil {
		return err
	}

	s.publish(events.OfferDeleted, offer)
	return nil
}

// publish sends an offer event; failures are logged, never surfaced, so a
// broker outage cannot fail a committed mutation.
func (s *OfferService) publish(event string, offer *models.Offer) {
	if s.publisher == nil {
		return
	}
	payload := map[string]interface{}{
		"offer_id": offer.ID,
		"user_id":  offer.UserID,
		"item_id":  offer.ItemID,
		"amount":   offer.Amount.String(),
	}
	if err := s.publisher.PublishGiftEvent(event, payload); err != nil {
		log.Printf("Warning: Failed to publish %s event for offer %d: %v", event, offer.ID, err)
	}
}
