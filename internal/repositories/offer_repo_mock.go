package repositories

import (
	"fmt"
	"sync"
	"time"

	"wishwell/internal/apperrors"
	"wishwell/internal/models"
)

// MockOfferRepository is an in-memory implementation of OfferRepository.
type MockOfferRepository struct {
	offers map[uint]models.Offer
	nextID uint
	mu     sync.RWMutex
}

// NewMockOfferRepository creates a new instance of MockOfferRepository.
func NewMockOfferRepository() *MockOfferRepository {
	return &MockOfferRepository{
		offers: make(map[uint]models.Offer),
		nextID: 1,
	}
}

// GetAll returns all offers.
func (r *MockOfferRepository) GetAll() ([]models.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Offer, 0, len(r.offers))
	for _, o := range r.offers {
		list = append(list, o)
	}
	return list, nil
}

// GetByID returns an offer by its ID.
func (r *MockOfferRepository) GetByID(id uint) (*models.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	offer, ok := r.offers[id]
	if !ok {
		return nil, fmt.Errorf("offer with ID %d: %w", id, apperrors.ErrNotFound)
	}
	return &offer, nil
}

// GetByWish returns all offers pledged toward one wish.
func (r *MockOfferRepository) GetByWish(wishID uint) ([]models.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Offer, 0)
	for _, o := range r.offers {
		if o.ItemID == wishID {
			list = append(list, o)
		}
	}
	return list, nil
}

// GetByUser returns all offers made by one user.
func (r *MockOfferRepository) GetByUser(userID uint) ([]models.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Offer, 0)
	for _, o := range r.offers {
		if o.UserID == userID {
			list = append(list, o)
		}
	}
	return list, nil
}

// Create adds a new offer.
func (r *MockOfferRepository) Create(offer *models.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if offer.ID == 0 {
		offer.ID = r.nextID
		r.nextID++
	} else if offer.ID >= r.nextID {
		r.nextID = offer.ID + 1
	}
	offer.CreatedAt = time.Now()
	offer.UpdatedAt = time.Now()
	r.offers[offer.ID] = *offer
	return nil
}

// Update modifies an existing offer.
func (r *MockOfferRepository) Update(offer *models.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.offers[offer.ID]; !ok {
		return fmt.Errorf("offer with ID %d: %w", offer.ID, apperrors.ErrNotFound)
	}
	offer.UpdatedAt = time.Now()
	r.offers[offer.ID] = *offer
	return nil
}

// Delete removes an offer by its ID.
func (r *MockOfferRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.offers[id]; !ok {
		return fmt.Errorf("offer with ID %d: %w", id, apperrors.ErrNotFound)
	}
	delete(r.offers, id)
	return nil
}
