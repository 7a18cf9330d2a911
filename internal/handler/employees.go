package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/planning-aidant/backend/internal/domain"
)

type employeeRequest struct {
	Name         string   `json:"name" validate:"required,max=200"`
	Phone        string   `json:"phone" validate:"max=50"`
	Availability []string `json:"availability" validate:"dive,oneof=Lundi Mardi Mercredi Jeudi Vendredi Samedi Dimanche"`
	Notes        string   `json:"notes"`
}

func (req employeeRequest) employee(id string) *domain.Employee {
	availability := req.Availability
	if availability == nil {
		availability = []string{}
	}
	return &domain.Employee{
		ID:           id,
		Name:         req.Name,
		Phone:        req.Phone,
		Availability: availability,
		Notes:        req.Notes,
	}
}

func (h *Handler) GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.repository.GetAllEmployees(r.Context())
	if err != nil {
		h.storeError(w, r, err, "")
		return
	}

	h.successResponse(w, r, "liste des employés récupérée", employees)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateEmployee(r.Context(), req.employee("")); err != nil {
		h.storeError(w, r, err, "")
		return
	}

	h.reloadEmployees(w, r, "employé créé")
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateEmployee(r.Context(), req.employee(chi.URLParam(r, "id"))); err != nil {
		h.storeError(w, r, err, "employé introuvable")
		return
	}

	h.reloadEmployees(w, r, "employé mis à jour")
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.repository.DeleteEmployee(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.storeError(w, r, err, "employé introuvable")
		return
	}

	h.reloadEmployees(w, r, "employé supprimé")
}

func (h *Handler) reloadEmployees(w http.ResponseWriter, r *http.Request, msg string) {
	employees, err := h.repository.GetAllEmployees(r.Context())
	if err != nil {
		h.storeError(w, r, err, "")
		return
	}

	h.successResponse(w, r, msg, employees)
}
