package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wish is a desired item on a wishlist. Price and Raised are money values
// and use exact decimal arithmetic. Raised is derived from the wish's
// offers and is never writable by clients; Price freezes once the first
// offer exists.
type Wish struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"type:varchar(250)" validate:"required,min=1,max=250"`
	Description string          `json:"description" gorm:"type:varchar(1024)" validate:"omitempty,max=1024"`
	Link        string          `json:"link" gorm:"type:varchar(500)" validate:"omitempty,url"`
	Image       string          `json:"image" gorm:"type:varchar(500)" validate:"omitempty,url"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Raised      decimal.Decimal `json:"raised" gorm:"type:decimal(10,2)"`
	Copied      int             `json:"copied" gorm:"default:0"`
	OwnerID     uint            `json:"owner_id" gorm:"index;not null"`
	WishlistID  uint            `json:"wishlist_id" gorm:"index;not null"`

	Offers []Offer `json:"offers,omitempty" gorm:"foreignKey:ItemID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
