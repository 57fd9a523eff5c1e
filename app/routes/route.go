package routes

import (
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/kasumba/go-storefront/app/configs"
	"github.com/kasumba/go-storefront/app/handlers"
	"github.com/kasumba/go-storefront/app/middlewares"
	"github.com/kasumba/go-storefront/app/repositories"
	"github.com/kasumba/go-storefront/app/services"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB) *mux.Router {
	rnd := render.New()
	validate := validator.New()

	repos := repositories.NewRepositories(db)
	uow := repositories.NewUnitOfWork(db)

	cartSvc := services.NewCartService(uow, repos)
	orderSvc := services.NewOrderService(uow, repos)
	variantSvc := services.NewVariantService(uow, repos)

	cartHandler := handlers.NewCartHandler(rnd, validate, cartSvc, orderSvc)
	orderHandler := handlers.NewOrderHandler(rnd, validate, orderSvc)
	productHandler := handlers.NewProductHandler(rnd, validate, variantSvc)

	router := mux.NewRouter()

	storefront := router.PathPrefix("/carts").Subrouter()
	storefront.Use(middlewares.CartSessionMiddleware)
	storefront.Use(csrf.Protect([]byte(configs.LoadENV.CSRFKey), csrf.Secure(false)))
	storefront.HandleFunc("", cartHandler.CreateCart).Methods("POST")
	storefront.HandleFunc("/{id}", cartHandler.GetCart).Methods("GET")
	storefront.HandleFunc("/{id}/items", cartHandler.AddItem).Methods("POST")
	storefront.HandleFunc("/{id}/items/{itemId}", cartHandler.UpdateItem).Methods("PATCH")
	storefront.HandleFunc("/{id}/items/{itemId}", cartHandler.RemoveItem).Methods("DELETE")
	storefront.HandleFunc("/{id}/discounts", cartHandler.ApplyDiscount).Methods("POST")
	storefront.HandleFunc("/{id}/checkout", cartHandler.Checkout).Methods("POST")

	admin := router.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/stores/{storeId}/orders", orderHandler.CreateDraftOrder).Methods("POST")
	admin.HandleFunc("/orders/{id}", orderHandler.GetOrder).Methods("GET")
	admin.HandleFunc("/orders/{id}", orderHandler.UpdateOrder).Methods("PATCH")
	admin.HandleFunc("/products/{id}/options/preview", productHandler.PreviewCombinations).Methods("POST")
	admin.HandleFunc("/products/{id}/options", productHandler.SyncVariants).Methods("PUT")

	return router
}
