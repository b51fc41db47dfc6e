package http

import (
	"errors"
	"net/http"

	"retail-pos-backend/internal/domain"
	"retail-pos-backend/internal/service"
)

type CustomerHandler struct {
	customerSvc service.CustomerService
	rentalSvc   service.RentalService
}

func NewCustomerHandler(customerSvc service.CustomerService, rentalSvc service.RentalService) *CustomerHandler {
	return &CustomerHandler{customerSvc: customerSvc, rentalSvc: rentalSvc}
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var customer domain.Customer
	if err := decodeJSON(r, &customer); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.customerSvc.CreateCustomer(r.Context(), &customer); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, customer)
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	customer, err := h.customerSvc.GetCustomer(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customerSvc.ListCustomers(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, customers)
}

func (h *CustomerHandler) SearchByPhone(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phoneNumber")
	if phone == "" {
		respondError(w, http.StatusBadRequest, "phoneNumber is required")
		return
	}
	customer, err := h.customerSvc.FindByPhoneNumber(r.Context(), phone)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			// The register treats a miss as "start a new customer", so the
			// body carries an explicit null rather than just an error line.
			respondJSON(w, http.StatusNotFound, map[string]any{
				"message":  "customer not found",
				"customer": nil,
			})
			return
		}
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	var customer domain.Customer
	if err := decodeJSON(r, &customer); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	customer.ID = id
	if err := h.customerSvc.UpdateCustomer(r.Context(), &customer); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) OutstandingRentals(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	rentals, err := h.rentalSvc.GetOutstandingRentals(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rentals)
}
