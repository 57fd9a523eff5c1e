package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem is a priced line permanently bound to its order. Immutable once
// the order leaves DRAFT, except through the explicit item update paths which
// are gated by order status.
type OrderItem struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	OrderID   string `gorm:"size:36;index;not null"`
	Order     Order  `gorm:"foreignKey:OrderID"`
	ProductID string `gorm:"size:36;index;not null"`
	VariantID string `gorm:"size:36;index;not null"`

	Title       string `gorm:"size:255;not null"`
	VariantName string `gorm:"size:255"`
	Sku         string `gorm:"size:100"`

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

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}
