package services

import (
	"fmt"
	"time"

	"github.com/kasumba/go-storefront/app/models"
)

// orderStatusTransitions is the explicit-status-set table. Absent pairs are
// rejected. PAID and FULFILLED have no incoming edge; CANCELLED and REFUNDED
// are terminal.
var orderStatusTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusDraft:      {models.OrderStatusPending, models.OrderStatusCancelled},
	models.OrderStatusPending:    {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusDelivered, models.OrderStatusCancelled},
	models.OrderStatusDelivered:  {models.OrderStatusCancelled},
	models.OrderStatusCancelled:  {},
	models.OrderStatusRefunded:   {},
}

// CanTransition reports whether from -> to is in the table.
func CanTransition(from, to models.OrderStatus) bool {
	for _, allowed := range orderStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// DeriveStatus maps payment/shipment sub-states onto an order status. Orders
// in DRAFT or REFUNDED never auto-transition; for them, and when no sub-state
// implies anything, the current status is returned. Shipment checks run after
// payment so a shipped/delivered parcel outranks a merely completed payment.
func DeriveStatus(current models.OrderStatus, payment models.PaymentStatus, shipment models.ShipmentStatus) models.OrderStatus {
	if current == models.OrderStatusDraft || current == models.OrderStatusRefunded {
		return current
	}
	derived := current
	switch payment {
	case models.PaymentStatusCompleted:
		derived = models.OrderStatusProcessing
	case models.PaymentStatusPending:
		derived = models.OrderStatusPending
	}
	switch shipment {
	case models.ShipmentStatusShipped:
		derived = models.OrderStatusShipped
	case models.ShipmentStatusDelivered:
		derived = models.OrderStatusDelivered
	}
	return derived
}

// applyStatusChange resolves the target status (explicit wins over derived),
// validates explicit targets against the table and stamps lifecycle
// timestamps. Each
// timestamp is set once, on first entry into its state; a second arrival
// leaves the original value. Setting payment back to PENDING clears paidAt to
// support retry flows.
func applyStatusChange(order *models.Order, explicit *models.OrderStatus, payment *models.PaymentStatus, shipment *models.ShipmentStatus, now time.Time) error {
	if payment != nil {
		order.PaymentStatus = *payment
		switch *payment {
		case models.PaymentStatusCompleted:
			if order.PaidAt == nil {
				order.PaidAt = &now
			}
		case models.PaymentStatusPending:
			order.PaidAt = nil
		}
	}
	if shipment != nil {
		order.ShipmentStatus = *shipment
		switch *shipment {
		case models.ShipmentStatusShipped:
			if order.ShippedAt == nil {
				order.ShippedAt = &now
			}
		case models.ShipmentStatusDelivered:
			if order.DeliveredAt == nil {
				order.DeliveredAt = &now
			}
		}
	}

	target := order.Status
	derived := false
	if explicit != nil {
		target = *explicit
	} else if payment != nil || shipment != nil {
		target = DeriveStatus(order.Status, order.PaymentStatus, order.ShipmentStatus)
		derived = true
	}
	if target == order.Status {
		return nil
	}
	// The table binds explicit sets only. A derived target tracks the
	// payment/shipment truth, so a payment falling back to PENDING may move a
	// PROCESSING order back to PENDING even though no explicit edge exists.
	if !derived && !CanTransition(order.Status, target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, target)
	}
	order.Status = target
	if target == models.OrderStatusCancelled && order.CancelledAt == nil {
		order.CancelledAt = &now
	}
	return nil
}
