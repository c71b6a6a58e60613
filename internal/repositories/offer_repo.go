package repositories

import "wishwell/internal/models"

// OfferRepository defines the interface for offer data access.
type OfferRepository interface {
	GetAll() ([]models.Offer, error)
	GetByID(id uint) (*models.Offer, error)
	GetByWish(wishID uint) ([]models.Offer, error)
	GetByUser(userID uint) ([]models.Offer, error)
	Create(offer *models.Offer) error
	Update(offer *models.Offer) error
	Delete(id uint) error
}
