package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MediaOwnerType tags which entity a media record belongs to.
type MediaOwnerType string

const (
	MediaOwnerProduct        MediaOwnerType = "PRODUCT"
	MediaOwnerProductVariant MediaOwnerType = "PRODUCT_VARIANT"
	MediaOwnerStore          MediaOwnerType = "STORE"
	MediaOwnerUser           MediaOwnerType = "USER"
)

// MediaOwnerTypes lists every owner type a media row may carry.
var MediaOwnerTypes = []MediaOwnerType{
	MediaOwnerProduct,
	MediaOwnerProductVariant,
	MediaOwnerStore,
	MediaOwnerUser,
}

type Media struct {
	ID        string         `gorm:"size:36;not null;uniqueIndex;primary_key"`
	OwnerType MediaOwnerType `gorm:"size:30;not null;index:idx_media_owner"`
	OwnerID   string         `gorm:"size:36;not null;index:idx_media_owner"`
	URL       string         `gorm:"type:text;not null"`
	AltText   string         `gorm:"size:255"`
	Position  int            `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (m *Media) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}
