package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"retail-pos-backend/internal/domain"
	"retail-pos-backend/internal/repository"
	"retail-pos-backend/internal/service"
)

type ItemHandler struct {
	inventorySvc service.InventoryService
}

func NewItemHandler(inventorySvc service.InventoryService) *ItemHandler {
	return &ItemHandler{inventorySvc: inventorySvc}
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var item domain.Item
	if err := decodeJSON(r, &item); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.inventorySvc.AddItem(r.Context(), &item); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	item, err := h.inventorySvc.GetItem(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := repository.ItemFilters{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}
	items, err := h.inventorySvc.ListItems(r.Context(), filters)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	threshold := int32(10)
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed < 0 {
			respondError(w, http.StatusBadRequest, "invalid threshold")
			return
		}
		threshold = int32(parsed)
	}
	items, err := h.inventorySvc.ListLowStock(r.Context(), threshold)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) InventoryValue(w http.ResponseWriter, r *http.Request) {
	value, err := h.inventorySvc.InventoryValue(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]float64{"inventoryValue": value})
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	var item domain.Item
	if err := decodeJSON(r, &item); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	item.ID = id
	if err := h.inventorySvc.UpdateItem(r.Context(), &item); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	if err := h.inventorySvc.DeactivateItem(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "item deactivated"})
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}
