package services

import (
	"wishwell/internal/models"
	"wishwell/internal/ownership"
	"wishwell/internal/repositories"
)

// CreateWishlistInput carries the client-supplied fields for a new
// wishlist. The owner is always the authenticated caller.
type CreateWishlistInput struct {
	Name        string `json:"name" validate:"required,min=1,max=250"`
	Description string `json:"description" validate:"omitempty,max=1500"`
	Image       string `json:"image" validate:"omitempty,url"`
}

// WishlistPatch is a partial update to a wishlist. OwnerID and Items are
// accepted in the request body but never applied.
type WishlistPatch struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=250"`
	Description *string `json:"description" validate:"omitempty,max=1500"`
	Image       *string `json:"image" validate:"omitempty,url"`

	OwnerID *uint          `json:"owner_id"`
	Items   *[]models.Wish `json:"items"`
}

// WishlistService handles business logic for wishlists.
type WishlistService struct {
	wishlistRepo repositories.WishlistRepository
	guard        ownership.Guard[models.Wishlist]
}

// NewWishlistService creates a new WishlistService.
func NewWishlistService(wishlistRepo repositories.WishlistRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		guard: ownership.NewGuard("wishlist", wishlistRepo.GetByID, func(w *models.Wishlist) uint {
			return w.OwnerID
		}),
	}
}

// Create creates a new wishlist owned by ownerID.
func (s *WishlistService) Create(ownerID uint, input CreateWishlistInput) (*models.Wishlist, error) {
	wishlist := &models.Wishlist{
		Name:        input.Name,
		Description: input.Description,
		Image:       input.Image,
		OwnerID:     ownerID,
	}
	if err := s.wishlistRepo.Create(wishlist); err != nil {
		return nil, err
	}
	return wishlist, nil
}

// GetAll retrieves all wishlists.
func (s *WishlistService) GetAll() ([]models.Wishlist, error) {
	return s.wishlistRepo.GetAll()
}

// GetByID retrieves a single wishlist by its ID.
func (s *WishlistService) GetByID(id uint) (*models.Wishlist, error) {
	return s.wishlistRepo.GetByID(id)
}

// GetByOwner retrieves all wishlists owned by one user.
func (s *WishlistService) GetByOwner(ownerID uint) ([]models.Wishlist, error) {
	return s.wishlistRepo.GetByOwner(ownerID)
}

// UpdateSafely applies a patch after verifying ownership. Ownership and
// relation fields in the patch are stripped, everything else is applied.
func (s *WishlistService) UpdateSafely(id, actingUserID uint, patch WishlistPatch) (*models.Wishlist, error) {
	wishlist, err := s.guard.Check(id, actingUserID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		wishlist.Name = *patch.Name
	}
	if patch.Description != nil {
		wishlist.Description = *patch.Description
	}
	if patch.Image != nil {
		wishlist.Image = *patch.Image
	}

	if err := s.wishlistRepo.Update(wishlist); err != nil {
		return nil, err
	}
	return wishlist, nil
}

// DeleteSafely removes a wishlist after verifying ownership.
func (s *WishlistService) DeleteSafely(id, actingUserID uint) error {
	if _, err := s.guard.Check(id, actingUserID); err != nil {
		return err
	}
	return s.wishlistRepo.Delete(id)
}
