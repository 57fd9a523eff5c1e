package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "PERCENTAGE"
	DiscountTypeFixed      DiscountType = "FIXED"
)

// CartDiscount holds an applied code. Percentage amounts are evaluated against
// the cart's pre-discount subtotal at aggregation time, not stored as a fixed
// absolute value.
type CartDiscount struct {
	ID      string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	CartID  string          `gorm:"size:36;index;not null"`
	Code    string          `gorm:"size:100;not null"`
	Type    DiscountType    `gorm:"size:20;not null"`
	Amount  decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	Applied bool            `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (d *CartDiscount) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return
}
