package models

import "time"

// User represents a registered user of the gift registry.
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=2,max=100"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password string `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash, never serialized
	Avatar   string `json:"avatar" gorm:"type:varchar(500)" validate:"omitempty,url"`
	About    string `json:"about" gorm:"type:varchar(500)" validate:"omitempty,max=500"`

	Wishlists []Wishlist `json:"wishlists,omitempty" gorm:"foreignKey:OwnerID"`
	Wishes    []Wish     `json:"wishes,omitempty" gorm:"foreignKey:OwnerID"`
	Offers    []Offer    `json:"offers,omitempty" gorm:"foreignKey:UserID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
