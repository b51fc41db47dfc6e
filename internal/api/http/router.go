package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"retail-pos-backend/internal/domain"
	"retail-pos-backend/internal/security"
	"retail-pos-backend/internal/service"
)

// Services bundles everything the router needs.
type Services struct {
	Auth      service.AuthService
	Inventory service.InventoryService
	Coupon    service.CouponService
	Customer  service.CustomerService
	Sale      service.SaleService
	Rental    service.RentalService
	Employee  service.EmployeeService
	Tokens    security.TokenManager
}

// NewRouter builds the full API route table. Fixed paths (low-stock, search,
// check-overdue) are registered before their {id} siblings so mux does not
// swallow them as path variables.
func NewRouter(svcs Services) *mux.Router {
	router := mux.NewRouter()

	authHandler := NewAuthHandler(svcs.Auth)
	itemHandler := NewItemHandler(svcs.Inventory)
	customerHandler := NewCustomerHandler(svcs.Customer, svcs.Rental)
	saleHandler := NewSaleHandler(svcs.Sale)
	rentalHandler := NewRentalHandler(svcs.Rental)
	couponHandler := NewCouponHandler(svcs.Coupon)
	employeeHandler := NewEmployeeHandler(svcs.Employee)

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	auth := newAuthMiddleware(svcs.Tokens, svcs.Employee)
	protected := api.NewRoute().Subrouter()
	protected.Use(auth.Authenticate)

	adminManager := []domain.Position{domain.PositionAdmin, domain.PositionManager}
	cashierAdmin := []domain.Position{domain.PositionCashier, domain.PositionAdmin}
	adminOnly := []domain.Position{domain.PositionAdmin}

	protected.HandleFunc("/auth/me", authHandler.Me).Methods(http.MethodGet)

	protected.HandleFunc("/items/low-stock", itemHandler.LowStock).Methods(http.MethodGet)
	protected.HandleFunc("/items/inventory-value",
		requirePosition(itemHandler.InventoryValue, adminManager...)).Methods(http.MethodGet)
	protected.HandleFunc("/items", itemHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/items",
		requirePosition(itemHandler.Create, adminManager...)).Methods(http.MethodPost)
	protected.HandleFunc("/items/{id}", itemHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/items/{id}",
		requirePosition(itemHandler.Update, adminManager...)).Methods(http.MethodPut)
	protected.HandleFunc("/items/{id}",
		requirePosition(itemHandler.Delete, adminManager...)).Methods(http.MethodDelete)

	protected.HandleFunc("/customers/search", customerHandler.SearchByPhone).Methods(http.MethodGet)
	protected.HandleFunc("/customers", customerHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/customers", customerHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/customers/{id}", customerHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/customers/{id}", customerHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/customers/{id}/rentals", customerHandler.OutstandingRentals).Methods(http.MethodGet)

	protected.HandleFunc("/sales/calculate-totals", saleHandler.CalculateTotals).Methods(http.MethodPost)
	protected.HandleFunc("/sales", saleHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/sales",
		requirePosition(saleHandler.Create, cashierAdmin...)).Methods(http.MethodPost)
	protected.HandleFunc("/sales/{id}", saleHandler.Get).Methods(http.MethodGet)

	protected.HandleFunc("/rentals/check-overdue", rentalHandler.CheckOverdue).Methods(http.MethodGet)
	protected.HandleFunc("/rentals/customer/{id}", rentalHandler.ByCustomer).Methods(http.MethodGet)
	protected.HandleFunc("/rentals", rentalHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/rentals",
		requirePosition(rentalHandler.Create, cashierAdmin...)).Methods(http.MethodPost)
	protected.HandleFunc("/rentals/{id}/return",
		requirePosition(rentalHandler.Return, cashierAdmin...)).Methods(http.MethodPost)
	protected.HandleFunc("/rentals/{id}", rentalHandler.Get).Methods(http.MethodGet)

	protected.HandleFunc("/coupons", couponHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/coupons",
		requirePosition(couponHandler.Create, adminManager...)).Methods(http.MethodPost)
	protected.HandleFunc("/coupons/{code}", couponHandler.GetByCode).Methods(http.MethodGet)
	protected.HandleFunc("/coupons/{id}",
		requirePosition(couponHandler.Update, adminManager...)).Methods(http.MethodPut)
	protected.HandleFunc("/coupons/{id}",
		requirePosition(couponHandler.Delete, adminOnly...)).Methods(http.MethodDelete)

	protected.HandleFunc("/employees", employeeHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/employees",
		requirePosition(employeeHandler.Create, adminOnly...)).Methods(http.MethodPost)
	protected.HandleFunc("/employees/{id}", employeeHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/employees/{id}",
		requirePosition(employeeHandler.Update, adminOnly...)).Methods(http.MethodPut)
	protected.HandleFunc("/employees/{id}",
		requirePosition(employeeHandler.Delete, adminOnly...)).Methods(http.MethodDelete)

	return router
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
