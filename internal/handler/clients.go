package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/planning-aidant/backend/internal/domain"
)

type clientRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Phone   string `json:"phone" validate:"max=50"`
	Address string `json:"address" validate:"max=500"`
	Notes   string `json:"notes"`
}

func (req clientRequest) client(id string) *domain.Client {
	return &domain.Client{
		ID:      id,
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	}
}

func (h *Handler) GetAllClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.repository.GetAllClients(r.Context())
	if err != nil {
		h.storeError(w, r, err, "")
		return
	}

	h.successResponse(w, r, "liste des clients récupérée", clients)
}

func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateClient(r.Context(), req.client("")); err != nil {
		h.storeError(w, r, err, "")
		return
	}

	h.reloadClients(w, r, "client créé")
}

func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateClient(r.Context(), req.client(chi.URLParam(r, "id"))); err != nil {
		h.storeError(w, r, err, "client introuvable")
		return
	}

	h.reloadClients(w, r, "client mis à jour")
}

// DeleteClient leaves the client's appointments in place. They are shown
// with a placeholder name and excluded from the client recap.
func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	if err := h.repository.DeleteClient(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.storeError(w, r, err, "client introuvable")
		return
	}

	h.reloadClients(w, r, "client supprimé")
}

func (h *Handler) reloadClients(w http.ResponseWriter, r *http.Request, msg string) {
	clients, err := h.repository.GetAllClients(r.Context())
	if err != nil {
		h.storeError(w, r, err, "")
		return
	}

	h.successResponse(w, r, msg, clients)
}
