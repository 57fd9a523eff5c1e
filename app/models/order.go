package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusDraft      OrderStatus = "DRAFT"
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	OrderStatusRefunded   OrderStatus = "REFUNDED"
	// PAID and FULFILLED exist for historical rows; no transition reaches them.
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusFulfilled OrderStatus = "FULFILLED"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

type ShipmentStatus string

const (
	ShipmentStatusPending    ShipmentStatus = "PENDING"
	ShipmentStatusProcessing ShipmentStatus = "PROCESSING"
	ShipmentStatusShipped    ShipmentStatus = "SHIPPED"
	ShipmentStatusDelivered  ShipmentStatus = "DELIVERED"
	ShipmentStatusFailed     ShipmentStatus = "FAILED"
)

// Order is the durable purchase record. Currency and symbol are snapshotted
// from the store at creation so later store changes never alter history. The
// four lifecycle timestamps are each set exactly once, on first entry into
// the corresponding state.
type Order struct {
	ID          string    `gorm:"size:36;not null;uniqueIndex;primary_key"`
	StoreID     string    `gorm:"size:36;not null;uniqueIndex:idx_store_order_number"`
	Store       Store     `gorm:"foreignKey:StoreID"`
	CustomerID  *string   `gorm:"size:36;index"`
	Customer    *Customer `gorm:"foreignKey:CustomerID"`
	OrderNumber string    `gorm:"size:20;not null;uniqueIndex:idx_store_order_number"`

	Status         OrderStatus    `gorm:"size:20;not null;default:'DRAFT'"`
	PaymentStatus  PaymentStatus  `gorm:"size:20;not null;default:'PENDING'"`
	ShipmentStatus ShipmentStatus `gorm:"size:20;not null;default:'PENDING'"`

	Currency       string `gorm:"size:10;not null"`
	CurrencySymbol string `gorm:"size:10;not null"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE"`

	SubtotalAmount decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0"`
	ShippingAmount decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0"`

	CustomerNote   string `gorm:"type:text"`
	PrivateNote    string `gorm:"type:text"`
	TrackingNumber string `gorm:"size:255"`
	TrackingURL    string `gorm:"type:text"`

	PaidAt      *time.Time
	ShippedAt   *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}
