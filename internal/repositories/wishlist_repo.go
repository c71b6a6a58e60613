package repositories

import "wishwell/internal/models"

// WishlistRepository defines the interface for wishlist data access.
// GetByID loads the wishlist with its items.
type WishlistRepository interface {
	GetAll() ([]models.Wishlist, error)
	GetByID(id uint) (*models.Wishlist, error)
	GetByOwner(ownerID uint) ([]models.Wishlist, error)
	Create(wishlist *models.Wishlist) error
	Update(wishlist *models.Wishlist) error
	Delete(id uint) error
}
