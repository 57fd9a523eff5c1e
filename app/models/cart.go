package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartStatus string

const (
	CartStatusActive    CartStatus = "ACTIVE"
	CartStatusAbandoned CartStatus = "ABANDONED"
	CartStatusConverted CartStatus = "CONVERTED"
	CartStatusExpired   CartStatus = "EXPIRED"
)

// Cart is the pre-purchase aggregate. Totals are recomputed after every item
// or discount mutation, never derived lazily at read time:
// TotalAmount == SubtotalAmount - DiscountAmount + TaxAmount + ShippingAmount.
type Cart struct {
	ID         string     `gorm:"size:36;not null;uniqueIndex;primary_key"`
	StoreID    string     `gorm:"size:36;index;not null"`
	Store      Store      `gorm:"foreignKey:StoreID"`
	CustomerID *string    `gorm:"size:36;index"`
	Customer   *Customer  `gorm:"foreignKey:CustomerID"`
	Status     CartStatus `gorm:"size:20;not null;default:'ACTIVE'"`
	Email      string     `gorm:"size:255"`
	Phone      string     `gorm:"size:50"`

	Items     []CartItem     `gorm:"constraint:OnDelete:CASCADE"`
	Discounts []CartDiscount `gorm:"constraint:OnDelete:CASCADE"`

	SubtotalAmount decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0"`
	ShippingAmount decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0"`

	LastActivityAt time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (c *Cart) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
