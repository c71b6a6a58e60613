package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wishwell/internal/apperrors"
	"wishwell/internal/models"
)

// GORMWishlistRepository is a GORM implementation of WishlistRepository.
type GORMWishlistRepository struct {
	db *gorm.DB
}

// NewGORMWishlistRepository creates a new instance of GORMWishlistRepository.
func NewGORMWishlistRepository(db *gorm.DB) *GORMWishlistRepository {
	return &GORMWishlistRepository{
		db: db,
	}
}

// GetAll retrieves all wishlists with their items.
func (r *GORMWishlistRepository) GetAll() ([]models.Wishlist, error) {
	var wishlists []models.Wishlist
	if err := r.db.Preload("Items").Find(&wishlists).Error; err != nil {
		return nil, fmt.Errorf("failed to get all wishlists: %w", err)
	}
	return wishlists, nil
}

// GetByID retrieves a single wishlist with its items.
func (r *GORMWishlistRepository) GetByID(id uint) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	if err := r.db.Preload("Items").First(&wishlist, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("wishlist with ID %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get wishlist by ID %d: %w", id, err)
	}
	return &wishlist, nil
}

// GetByOwner retrieves all wishlists belonging to one user.
func (r *GORMWishlistRepository) GetByOwner(ownerID uint) ([]models.Wishlist, error) {
	var wishlists []models.Wishlist
	if err := r.db.Preload("Items").Where("owner_id = ?", ownerID).Find(&wishlists).Error; err != nil {
		return nil, fmt.Errorf("failed to get wishlists for owner %d: %w", ownerID, err)
	}
	return wishlists, nil
}

// Create creates a new wishlist in the database.
func (r *GORMWishlistRepository) Create(wishlist *models.Wishlist) error {
	if err := r.db.Create(wishlist).Error; err != nil {
		return fmt.Errorf("failed to create wishlist: %w", err)
	}
	return nil
}

// Update saves all fields of an existing wishlist. Loaded associations are
// not written back.
func (r *GORMWishlistRepository) Update(wishlist *models.Wishlist) error {
	res := r.db.Omit(clause.Associations).Save(wishlist)
	if res.Error != nil {
		return fmt.Errorf("failed to update wishlist: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("wishlist with ID %d: %w", wishlist.ID, apperrors.ErrNotFound)
	}
	return nil
}

// Delete deletes a wishlist by its ID from the database.
func (r *GORMWishlistRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Wishlist{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete wishlist: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("wishlist with ID %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
