package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID          string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	StoreID     string `gorm:"size:36;index;not null"`
	Store       Store  `gorm:"foreignKey:StoreID"`
	Title       string `gorm:"size:255;not null"`
	Slug        string `gorm:"size:255;not null;index"`
	Description string `gorm:"type:text"`

	Options  []ProductOption  `gorm:"constraint:OnDelete:CASCADE"`
	Variants []ProductVariant `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

// ProductOption is a named axis of variation, e.g. Size with values [S, M, L].
// Option names are unique per product; Position keeps declaration order.
type ProductOption struct {
	ID        string     `gorm:"size:36;not null;uniqueIndex;primary_key"`
	ProductID string     `gorm:"size:36;not null;uniqueIndex:idx_product_option_name"`
	Name      string     `gorm:"size:100;not null;uniqueIndex:idx_product_option_name"`
	Values    StringList `gorm:"type:json;not null"`
	Position  int        `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o *ProductOption) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}
