package repositories

import (
	"fmt"
	"sync"
	"time"

	"wishwell/internal/apperrors"
	"wishwell/internal/models"
)

// MockWishRepository is an in-memory implementation of WishRepository.
// Reads return wishes with their offers attached, mirroring the Preload
// the GORM implementation performs.
type MockWishRepository struct {
	wishes map[uint]models.Wish
	offers *MockOfferRepository
	nextID uint
	mu     sync.RWMutex
}

// NewMockWishRepository creates a new instance of MockWishRepository.
// offers may be nil when offer loading is not needed.
func NewMockWishRepository(offers *MockOfferRepository) *MockWishRepository {
	return &MockWishRepository{
		wishes: make(map[uint]models.Wish),
		offers: offers,
		nextID: 1,
	}
}

func (r *MockWishRepository) withOffers(wish models.Wish) models.Wish {
	if r.offers == nil {
		return wish
	}
	loaded, _ := r.offers.GetByWish(wish.ID)
	wish.Offers = loaded
	return wish
}

// GetAll returns all wishes.
func (r *MockWishRepository) GetAll() ([]models.Wish, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Wish, 0, len(r.wishes))
	for _, w := range r.wishes {
		list = append(list, r.withOffers(w))
	}
	return list, nil
}

// GetByID returns a wish by its ID with offers attached.
func (r *MockWishRepository) GetByID(id uint) (*models.Wish, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wish, ok := r.wishes[id]
	if !ok {
		return nil, fmt.Errorf("wish with ID %d: %w", id, apperrors.ErrNotFound)
	}
	wish = r.withOffers(wish)
	return &wish, nil
}

// GetByOwner returns all wishes owned by one user.
func (r *MockWishRepository) GetByOwner(ownerID uint) ([]models.Wish, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Wish, 0)
	for _, w := range r.wishes {
		if w.OwnerID == ownerID {
			list = append(list, r.withOffers(w))
		}
	}
	return list, nil
}

// GetByWishlist returns all wishes in one wishlist.
func (r *MockWishRepository) GetByWishlist(wishlistID uint) ([]models.Wish, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Wish, 0)
	for _, w := range r.wishes {
		if w.WishlistID == wishlistID {
			list = append(list, r.withOffers(w))
		}
	}
	return list, nil
}

// Create adds a new wish.
func (r *MockWishRepository) Create(wish *models.Wish) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if wish.ID == 0 {
		wish.ID = r.nextID
		r.nextID++
	} else if wish.ID >= r.nextID {
		r.nextID = wish.ID + 1
	}
	wish.CreatedAt = time.Now()
	wish.UpdatedAt = time.Now()
	stored := *wish
	stored.Offers = nil
	r.wishes[wish.ID] = stored
	return nil
}

// Update modifies an existing wish.
func (r *MockWishRepository) Update(wish *models.Wish) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.wishes[wish.ID]; !ok {
		return fmt.Errorf("wish with ID %d: %w", wish.ID, apperrors.ErrNotFound)
	}
	wish.UpdatedAt = time.Now()
	stored := *wish
	stored.Offers = nil
	r.wishes[wish.ID] = stored
	return nil
}

// Delete removes a wish by its ID.
func (r *MockWishRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.wishes[id]; !ok {
		return fmt.Errorf("wish with ID %d: %w", id, apperrors.ErrNotFound)
	}
	delete(r.wishes, id)
	return nil
}
