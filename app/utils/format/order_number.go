package format

import (
	"fmt"

	"github.com/kasumba/go-storefront/app/models"
)

// OrderNumberWidth is the zero-padding width of raw order numbers.
const OrderNumberWidth = 6

// OrderNumber zero-pads a store-scoped sequence number, e.g. 42 -> "000042".
// Numbers past the padding width keep all their digits.
func OrderNumber(sequence int64) string {
	return fmt.Sprintf("%0*d", OrderNumberWidth, sequence)
}

// DisplayOrderNumber wraps the raw number in the store's configured prefix and
// suffix. Unset prefix/suffix default to the empty string.
func DisplayOrderNumber(order *models.Order, store *models.Store) string {
	return store.OrderPrefix + order.OrderNumber + store.OrderSuffix
}
