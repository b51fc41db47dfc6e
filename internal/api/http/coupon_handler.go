package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"retail-pos-backend/internal/domain"
	"retail-pos-backend/internal/service"
)

type CouponHandler struct {
	couponSvc service.CouponService
}

func NewCouponHandler(couponSvc service.CouponService) *CouponHandler {
	return &CouponHandler{couponSvc: couponSvc}
}

func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request) {
	var coupon domain.Coupon
	if err := decodeJSON(r, &coupon); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.couponSvc.CreateCoupon(r.Context(), &coupon); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, coupon)
}

// GetByCode returns 404 for unknown codes and 400 for codes that exist but
// are expired, inactive, or used up, so the register can tell the cashier
// which case it is.
func (h *CouponHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	coupon, err := h.couponSvc.GetCouponByCode(r.Context(), code)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, coupon)
}

func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.couponSvc.ListCoupons(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, coupons)
}

func (h *CouponHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid coupon id")
		return
	}
	var coupon domain.Coupon
	if err := decodeJSON(r, &coupon); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	coupon.ID = id
	if err := h.couponSvc.UpdateCoupon(r.Context(), &coupon); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, coupon)
}

func (h *CouponHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid coupon id")
		return
	}
	if err := h.couponSvc.DeactivateCoupon(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "coupon deactivated"})
}
