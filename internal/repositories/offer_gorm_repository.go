package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"wishwell/internal/apperrors"
	"wishwell/internal/models"
)

// GORMOfferRepository is a GORM implementation of OfferRepository.
type GORMOfferRepository struct {
	db *gorm.DB
}

// NewGORMOfferRepository creates a new instance of GORMOfferRepository.
func NewGORMOfferRepository(db *gorm.DB) *GORMOfferRepository {
	return &GORMOfferRepository{
		db: db,
	}
}

// GetAll retrieves all offers.
func (r *GORMOfferRepository) GetAll() ([]models.Offer, error) {
	var offers []models.Offer
	if err := r.db.Find(&offers).Error; err != nil {
		return nil, fmt.Errorf("failed to get all offers: %w", err)
	}
	return offers, nil
}

// GetByID retrieves a single offer by its ID.
func (r *GORMOfferRepository) GetByID(id uint) (*models.Offer, error) {
	var offer models.Offer
	if err := r.db.First(&offer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("offer with ID %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get offer by ID %d: %w", id, err)
	}
	return &offer, nil
}

// GetByWish retrieves all offers pledged toward one wish.
func (r *GORMOfferRepository) GetByWish(wishID uint) ([]models.Offer, error) {
	var offers []models.Offer
	if err := r.db.Where("item_id = ?", wishID).Find(&offers).Error; err != nil {
		return nil, fmt.Errorf("failed to get offers for wish %d: %w", wishID, err)
	}
	return offers, nil
}

// GetByUser retrieves all offers made by one user.
func (r *GORMOfferRepository) GetByUser(userID uint) ([]models.Offer, error) {
	var offers []models.Offer
	if err := r.db.Where("user_id = ?", userID).Find(&offers).Error; err != nil {
		return nil, fmt.Errorf("failed to get offers for user %d: %w", userID, err)
	}
	return offers, nil
}

// Create creates a new offer in the database.
func (r *GORMOfferRepository) Create(offer *models.Offer) error {
	if err := r.db.Create(offer).Error; err != nil {
		return fmt.Errorf("failed to create offer: %w", err)
	}
	return nil
}

// Update saves all fields of an existing offer.
func (r *GORMOfferRepository) Update(offer *models.Offer) error {
	res := r.db.Save(offer)
	if res.Error != nil {
		return fmt.Errorf("failed to update offer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("offer with ID %d: %w", offer.ID, apperrors.ErrNotFound)
	}
	return nil
}

// Delete deletes an offer by its ID from the database.
func (r *GORMOfferRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Offer{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete offer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("offer with ID %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
