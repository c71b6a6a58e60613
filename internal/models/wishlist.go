package models

import "time"

// Wishlist is a named collection of wishes owned by a single user.
// OwnerID is stamped from the authenticated caller at creation and never
// changes afterwards.
type Wishlist struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"type:varchar(250)" validate:"required,min=1,max=250"`
	Description string `json:"description" gorm:"type:varchar(1500)" validate:"omitempty,max=1500"`
	Image       string `json:"image" gorm:"type:varchar(500)" validate:"omitempty,url"`
	OwnerID     uint   `json:"owner_id" gorm:"index;not null"`

	Items []Wish `json:"items,omitempty" gorm:"foreignKey:WishlistID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
