package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultCombination is the sentinel combination given to the single variant
// of a product that declares no options.
var DefaultCombination = StringList{"Default"}

// ProductVariant is a purchasable SKU. Variants referenced by order lines are
// never hard-deleted; they are archived and revived so order items keep a
// stable foreign key.
type ProductVariant struct {
	ID                string     `gorm:"size:36;not null;uniqueIndex;primary_key"`
	ProductID         string     `gorm:"size:36;index;not null"`
	Product           Product    `gorm:"foreignKey:ProductID"`
	OptionCombination StringList `gorm:"type:json;not null"`
	Sku               string     `gorm:"size:100;index"`
	Price             decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	CompareAtPrice    decimal.Decimal `gorm:"type:decimal(16,2)"`
	AvailableQuantity int             `gorm:"not null;default:0"`
	IsArchived        bool            `gorm:"not null;default:false;index"`
	ArchivedAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (v *ProductVariant) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return
}

// DisplayName joins the option combination for denormalized line snapshots,
// e.g. "M / Red".
func (v *ProductVariant) DisplayName() string {
	return strings.Join(v.OptionCombination, " / ")
}
