package http

import (
	"net/http"
	"strconv"
	"time"

	"retail-pos-backend/internal/domain"
	"retail-pos-backend/internal/repository"
	"retail-pos-backend/internal/service"
)

type SaleHandler struct {
	saleSvc service.SaleService
}

func NewSaleHandler(saleSvc service.SaleService) *SaleHandler {
	return &SaleHandler{saleSvc: saleSvc}
}

type createSaleRequest struct {
	Items           []service.LineInput  `json:"items"`
	CustomerID      *int64               `json:"customerId"`
	CouponID        *int64               `json:"couponId"`
	DiscountPercent float64              `json:"discountPercent"`
	PaymentMethod   domain.PaymentMethod `json:"paymentMethod"`
	Notes           string               `json:"notes"`
}

func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	employee, ok := EmployeeFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req createSaleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sale, err := h.saleSvc.CreateSale(r.Context(), service.CreateSaleInput{
		Items:           req.Items,
		CashierID:       employee.ID,
		CustomerID:      req.CustomerID,
		CouponID:        req.CouponID,
		DiscountPercent: req.DiscountPercent,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, sale)
}

func (h *SaleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sale id")
		return
	}
	sale, err := h.saleSvc.GetSale(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sale)
}

func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, err := saleFiltersFromQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	sales, err := h.saleSvc.ListSales(r.Context(), filters)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sales)
}

type calculateTotalsRequest struct {
	Items           []service.LineInput `json:"items"`
	DiscountPercent float64             `json:"discountPercent"`
	CouponID        *int64              `json:"couponId"`
}

func (h *SaleHandler) CalculateTotals(w http.ResponseWriter, r *http.Request) {
	var req calculateTotalsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	totals, err := h.saleSvc.CalculateTotals(r.Context(), req.Items, req.DiscountPercent, req.CouponID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, totals)
}

func saleFiltersFromQuery(r *http.Request) (repository.SaleFilters, error) {
	var filters repository.SaleFilters
	q := r.URL.Query()

	if raw := q.Get("cashierId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filters, errInvalidQuery("cashierId")
		}
		filters.CashierID = id
	}
	if raw := q.Get("customerId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filters, errInvalidQuery("customerId")
		}
		filters.CustomerID = id
	}
	if raw := q.Get("dateFrom"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			t, err = time.Parse("2006-01-02", raw)
		}
		if err != nil {
			return filters, errInvalidQuery("dateFrom")
		}
		filters.DateFrom = &t
	}
	if raw := q.Get("dateTo"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			t, err = time.Parse("2006-01-02", raw)
		}
		if err != nil {
			return filters, errInvalidQuery("dateTo")
		}
		filters.DateTo = &t
	}
	return filters, nil
}

type queryError string

func (e queryError) Error() string { return "invalid query parameter: " + string(e) }

func errInvalidQuery(name string) error { return queryError(name) }
