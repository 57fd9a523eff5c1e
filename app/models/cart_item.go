package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItem snapshots the chosen variant at add time. Title, variant name, sku
// and preview image are denormalized, not live-joined.
type CartItem struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	CartID    string `gorm:"size:36;index;not null"`
	Cart      *Cart  `gorm:"foreignKey:CartID"`
	ProductID string `gorm:"size:36;index;not null"`
	VariantID string `gorm:"size:36;index;not null"`

	Title           string `gorm:"size:255;not null"`
	VariantName     string `gorm:"size:255"`
	Sku             string `gorm:"size:100"`
	PreviewImageURL string `gorm:"type:text"`

	UnitPrice decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	Quantity  int             `gorm:"not null"`

	SubtotalAmount decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0"`
	ShippingAmount decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) (err error) {
	if ci.ID == "" {
		ci.ID = uuid.New().String()
	}
	return
}
