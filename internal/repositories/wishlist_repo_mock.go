package repositories

import (
	"fmt"
	"sync"
	"time"

	"wishwell/internal/apperrors"
	"wishwell/internal/models"
)

// MockWishlistRepository is an in-memory implementation of WishlistRepository.
type MockWishlistRepository struct {
	wishlists map[uint]models.Wishlist
	nextID    uint
	mu        sync.RWMutex
}

// NewMockWishlistRepository creates a new instance of MockWishlistRepository.
func NewMockWishlistRepository() *MockWishlistRepository {
	return &MockWishlistRepository{
		wishlists: make(map[uint]models.Wishlist),
		nextID:    1,
	}
}

// GetAll returns all wishlists.
func (r *MockWishlistRepository) GetAll() ([]models.Wishlist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Wishlist, 0, len(r.wishlists))
	for _, w := range r.wishlists {
		list = append(list, w)
	}
	return list, nil
}

// GetByID returns a wishlist by its ID.
func (r *MockWishlistRepository) GetByID(id uint) (*models.Wishlist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wishlist, ok := r.wishlists[id]
	if !ok {
		return nil, fmt.Errorf("wishlist with ID %d: %w", id, apperrors.ErrNotFound)
	}
	return &wishlist, nil
}

// GetByOwner returns all wishlists belonging to one user.
func (r *MockWishlistRepository) GetByOwner(ownerID uint) ([]models.Wishlist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Wishlist, 0)
	for _, w := range r.wishlists {
		if w.OwnerID == ownerID {
			list = append(list, w)
		}
	}
	return list, nil
}

// Create adds a new wishlist.
func (r *MockWishlistRepository) Create(wishlist *models.Wishlist) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if wishlist.ID == 0 {
		wishlist.ID = r.nextID
		r.nextID++
	} else if wishlist.ID >= r.nextID {
		r.nextID = wishlist.ID + 1
	}
	wishlist.CreatedAt = time.Now()
	wishlist.UpdatedAt = time.Now()
	r.wishlists[wishlist.ID] = *wishlist
	return nil
}

// Update modifies an existing wishlist.
func (r *MockWishlistRepository) Update(wishlist *models.Wishlist) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.wishlists[wishlist.ID]; !ok {
		return fmt.Errorf("wishlist with ID %d: %w", wishlist.ID, apperrors.ErrNotFound)
	}
	wishlist.UpdatedAt = time.Now()
	r.wishlists[wishlist.ID] = *wishlist
	return nil
}

// Delete removes a wishlist by its ID.
func (r *MockWishlistRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.wishlists[id]; !ok {
		return fmt.Errorf("wishlist with ID %d: %w", id, apperrors.ErrNotFound)
	}
	delete(r.wishlists, id)
	return nil
}
