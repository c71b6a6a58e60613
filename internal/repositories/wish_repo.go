package repositories

import "wishwell/internal/models"

// WishRepository defines the interface for wish data access. GetByID loads
// the wish together with its offers so callers can check the price lock and
// recompute the raised amount without a second fetch.
type WishRepository interface {
	GetAll() ([]models.Wish, error)
	GetByID(id uint) (*models.Wish, error)
	GetByOwner(ownerID uint) ([]models.Wish, error)
	GetByWishlist(wishlistID uint) ([]models.Wish, error)
	Create(wish *models.Wish) error
	Update(wish *models.Wish) error
	Delete(id uint) error
}
