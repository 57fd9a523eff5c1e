package sessions

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/kasumba/go-storefront/app/configs"
)

const (
	SessionCartKey   = "cart_session"
	CartSessionIDKey = "cart_id"
)

var Store = sessions.NewCookieStore([]byte(configs.LoadENV.SessionKey))

func init() {
	Store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   false,
	}
}

// GetCartID returns the cart id bound to the caller's session cookie, minting
// and saving a fresh one for first-time visitors.
func GetCartID(w http.ResponseWriter, r *http.Request) (string, error) {
	session, err := Store.Get(r, SessionCartKey)
	if err != nil {
		return "", err
	}

	if cartID, ok := session.Values[CartSessionIDKey].(string); ok && cartID != "" {
		return cartID, nil
	}

	newCartID := uuid.New().String()
	session.Values[CartSessionIDKey] = newCartID
	if err := session.Save(r, w); err != nil {
		return "", err
	}
	return newCartID, nil
}

// BindCartID stores an explicit cart id in the session, used after cart
// creation so later requests resolve the same cart.
func BindCartID(w http.ResponseWriter, r *http.Request, cartID string) error {
	session, err := Store.Get(r, SessionCartKey)
	if err != nil {
		return err
	}
	session.Values[CartSessionIDKey] = cartID
	return session.Save(r, w)
}
