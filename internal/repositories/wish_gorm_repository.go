package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wishwell/internal/apperrors"
	"wishwell/internal/models"
)

// GORMWishRepository is a GORM implementation of WishRepository.
type GORMWishRepository struct {
	db *gorm.DB
}

// NewGORMWishRepository creates a new instance of GORMWishRepository.
func NewGORMWishRepository(db *gorm.DB) *GORMWishRepository {
	return &GORMWishRepository{
		db: db,
	}
}

// GetAll retrieves all wishes with their offers.
func (r *GORMWishRepository) GetAll() ([]models.Wish, error) {
	var wishes []models.Wish
	if err := r.db.Preload("Offers").Find(&wishes).Error; err != nil {
		return nil, fmt.Errorf("failed to get all wishes: %w", err)
	}
	return wishes, nil
}

// GetByID retrieves a single wish with its offers.
func (r *GORMWishRepository) GetByID(id uint) (*models.Wish, error) {
	var wish models.Wish
	if err := r.db.Preload("Offers").First(&wish, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("wish with ID %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get wish by ID %d: %w", id, err)
	}
	return &wish, nil
}

// GetByOwner retrieves all wishes owned by one user.
func (r *GORMWishRepository) GetByOwner(ownerID uint) ([]models.Wish, error) {
	var wishes []models.Wish
	if err := r.db.Preload("Offers").Where("owner_id = ?", ownerID).Find(&wishes).Error; err != nil {
		return nil, fmt.Errorf("failed to get wishes for owner %d: %w", ownerID, err)
	}
	return wishes, nil
}

// GetByWishlist retrieves all wishes in one wishlist.
func (r *GORMWishRepository) GetByWishlist(wishlistID uint) ([]models.Wish, error) {
	var wishes []models.Wish
	if err := r.db.Preload("Offers").Where("wishlist_id = ?", wishlistID).Find(&wishes).Error; err != nil {
		return nil, fmt.Errorf("failed to get wishes for wishlist %d: %w", wishlistID, err)
	}
	return wishes, nil
}

// Create creates a new wish in the database.
func (r *GORMWishRepository) Create(wish *models.Wish) error {
	if err := r.db.Create(wish).Error; err != nil {
		return fmt.Errorf("failed to create wish: %w", err)
	}
	return nil
}

// Update saves all fields of an existing wish. Loaded associations are not
// written back.
func (r *GORMWishRepository) Update(wish *models.Wish) error {
	res := r.db.Omit(clause.Associations).Save(wish)
	if res.Error != nil {
		return fmt.Errorf("failed to update wish: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("wish with ID %d: %w", wish.ID, apperrors.ErrNotFound)
	}
	return nil
}

// Delete deletes a wish by its ID from the database.
func (r *GORMWishRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Wish{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete wish: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("wish with ID %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
