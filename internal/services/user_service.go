package services

import (
	"fmt"

	"wishwell/internal/models"
	"wishwell/internal/ownership"
	"wishwell/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// UserPatch is a partial update to a user's profile. Nil fields are left
// unchanged. Identity and relation fields deliberately have no counterpart
// here: a user record can only ever change its own mutable profile fields.
type UserPatch struct {
	Username *string `json:"username" validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Avatar   *string `json:"avatar" validate:"omitempty,url"`
	About    *string `json:"about" validate:"omitempty,max=500"`
}

// UserService handles business logic for user profiles. Profile mutations
// are self-only: a user may update or delete nobody's account but their own.
type UserService struct {
	userRepo     repositories.UserRepository
	wishRepo     repositories.WishRepository
	wishlistRepo repositories.WishlistRepository
	offerRepo    repositories.OfferRepository
	guard        ownership.Guard[models.User]
}

// NewUserService creates a new UserService.
func NewUserService(
	userRepo repositories.UserRepository,
	wishRepo repositories.WishRepository,
	wishlistRepo repositories.WishlistRepository,
	offerRepo repositories.OfferRepository,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		wishRepo:     wishRepo,
		wishlistRepo: wishlistRepo,
		offerRepo:    offerRepo,
		guard: ownership.NewGuard("user", userRepo.GetByID, func(u *models.User) uint {
			return u.ID
		}),
	}
}

// GetByID retrieves a single user by their ID.
func (s *UserService) GetByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// GetByUsername retrieves a single user by their username.
func (s *UserService) GetByUsername(username string) (*models.User, error) {
	return s.userRepo.GetByUsername(username)
}

// Search returns users whose username or email contains the query.
func (s *UserService) Search(query string) ([]models.User, error) {
	return s.userRepo.Search(query)
}

// GetWishes returns all wishes owned by the user.
func (s *UserService) GetWishes(userID uint) ([]models.Wish, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, err
	}
	return s.wishRepo.GetByOwner(userID)
}

// GetWishlists returns all wishlists owned by the user.
func (s *UserService) GetWishlists(userID uint) ([]models.Wishlist, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, err
	}
	return s.wishlistRepo.GetByOwner(userID)
}

// GetOffers returns all offers made by the user.
func (s *UserService) GetOffers(userID uint) ([]models.Offer, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, err
	}
	return s.offerRepo.GetByUser(userID)
}

// UpdateSafely applies a profile patch after verifying the acting user is
// the account holder. A password in the patch is stored as a fresh bcrypt
// hash. Duplicate username or email surfaces as apperrors.ErrConflict from
// the repository.
func (s *UserService) UpdateSafely(id, actingUserID uint, patch UserPatch) (*models.User, error) {
	user, err := s.guard.Check(id, actingUserID)
	if err != nil {
		return nil, err
	}

	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashed)
	}
	if patch.Avatar != nil {
		user.Avatar = *patch.Avatar
	}
	if patch.About != nil {
		user.About = *patch.About
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteSafely removes the account after verifying the acting user is the
// account holder.
func (s *UserService) DeleteSafely(id, actingUserID uint) error {
	if _, err := s.guard.Check(id, actingUserID); err != nil {
		return err
	}
	return s.userRepo.Delete(id)
}
