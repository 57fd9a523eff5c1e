package middlewares

import (
	"context"
	"log"
	"net/http"

	"github.com/kasumba/go-storefront/app/utils/sessions"
)

type contextKey string

const SessionCartIDKey contextKey = "session_cart_id"

// CartSessionMiddleware resolves (or mints) the caller's cart id from the
// session cookie and exposes it on the request context.
func CartSessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cartID, err := sessions.GetCartID(w, r)
		if err != nil {
			log.Printf("CartSessionMiddleware: error resolving cart session: %v", err)
			next.ServeHTTP(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), SessionCartIDKey, cartID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionCartID reads the cart id placed on the context by the middleware.
func SessionCartID(ctx context.Context) (string, bool) {
	cartID, ok := ctx.Value(SessionCartIDKey).(string)
	return cartID, ok && cartID != ""
}
