package http

import (
	"net/http"

	"retail-pos-backend/internal/domain"
	"retail-pos-backend/internal/service"
)

type EmployeeHandler struct {
	employeeSvc service.EmployeeService
}

func NewEmployeeHandler(employeeSvc service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeSvc: employeeSvc}
}

type createEmployeeRequest struct {
	Username string          `json:"username"`
	Name     string          `json:"name"`
	Password string          `json:"password"`
	Position domain.Position `json:"position"`
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	employee, err := h.employeeSvc.CreateEmployee(r.Context(), service.CreateEmployeeInput{
		Username: req.Username,
		Name:     req.Name,
		Password: req.Password,
		Position: req.Position,
		IsActive: true,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, employee)
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid employee id")
		return
	}
	employee, err := h.employeeSvc.GetEmployee(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, employee)
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeSvc.ListEmployees(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, employees)
}

type updateEmployeeRequest struct {
	Name     string          `json:"name"`
	Password string          `json:"password"`
	Position domain.Position `json:"position"`
	IsActive *bool           `json:"isActive"`
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid employee id")
		return
	}
	var req updateEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	employee, err := h.employeeSvc.UpdateEmployee(r.Context(), id, service.UpdateEmployeeInput{
		Name:     req.Name,
		Password: req.Password,
		Position: req.Position,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, employee)
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid employee id")
		return
	}
	if err := h.employeeSvc.DeactivateEmployee(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "employee deactivated"})
}
