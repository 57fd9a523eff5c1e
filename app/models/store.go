package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Store struct {
	ID             string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name           string `gorm:"size:255;not null"`
	Slug           string `gorm:"size:255;not null;uniqueIndex"`
	Currency       string `gorm:"size:10;not null;default:'UGX'"`
	CurrencySymbol string `gorm:"size:10;not null;default:'USh'"`
	OrderPrefix    string `gorm:"size:20"`
	OrderSuffix    string `gorm:"size:20"`

	Products  []Product
	Orders    []Order
	Carts     []Cart
	Customers []Customer

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (s *Store) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}
