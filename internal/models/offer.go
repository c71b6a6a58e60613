package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Offer is a pledge of money by one user toward another user's wish.
// UserID is the pledging user, ItemID the wish; both are stamped at
// creation and immutable. Hidden controls visibility to the wish owner.
type Offer struct {
	ID     uint            `json:"id" gorm:"primaryKey"`
	Amount decimal.Decimal `json:"amount" gorm:"type:decimal(10,2)"`
	Hidden bool            `json:"hidden" gorm:"default:false"`
	UserID uint            `json:"user_id" gorm:"index;not null"`
	ItemID uint            `json:"item_id" gorm:"index;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
