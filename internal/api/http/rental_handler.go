package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"retail-pos-backend/internal/domain"
	"retail-pos-backend/internal/repository"
	"retail-pos-backend/internal/service"
)

type RentalHandler struct {
	rentalSvc service.RentalService
}

func NewRentalHandler(rentalSvc service.RentalService) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc}
}

type createRentalRequest struct {
	Items      []service.LineInput `json:"items"`
	CustomerID int64               `json:"customerId"`
	DueDate    time.Time           `json:"dueDate"`
	TotalCost  float64             `json:"totalCost"`
	Notes      string              `json:"notes"`
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	employee, ok := EmployeeFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req createRentalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rental, err := h.rentalSvc.CreateRental(r.Context(), service.CreateRentalInput{
		Items:      req.Items,
		CustomerID: req.CustomerID,
		CashierID:  employee.ID,
		DueDate:    req.DueDate,
		TotalCost:  req.TotalCost,
		Notes:      req.Notes,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rental)
}

type returnRentalRequest struct {
	Items []service.LineInput `json:"items"`
}

func (h *RentalHandler) Return(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid rental id")
		return
	}
	// A missing body means a full return; only a malformed one is rejected.
	var req returnRentalRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rental, err := h.rentalSvc.ReturnRental(r.Context(), id, req.Items)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid rental id")
		return
	}
	rental, err := h.rentalSvc.GetRental(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	var filters repository.RentalFilters
	q := r.URL.Query()
	if raw := q.Get("customerId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid query parameter: customerId")
			return
		}
		filters.CustomerID = id
	}
	filters.Status = domain.RentalStatus(q.Get("status"))

	rentals, err := h.rentalSvc.ListRentals(r.Context(), filters)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rentals)
}

func (h *RentalHandler) ByCustomer(w http.ResponseWriter, r *http.Request) {
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

func (h *RentalHandler) CheckOverdue(w http.ResponseWriter, r *http.Request) {
	updated, err := h.rentalSvc.CheckOverdueRentals(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"markedOverdue": updated})
}
