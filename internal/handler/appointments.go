package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/planning-aidant/backend/internal/domain"
	"github.com/planning-aidant/backend/internal/recurring"
)

type appointmentRequest struct {
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime  string `json:"startTime" validate:"required,hhmm"`
	EndTime    string `json:"endTime" validate:"required,hhmm"`
	ClientID   string `json:"clientId" validate:"required"`
	EmployeeID string `json:"employeeId" validate:"required"`
	Type       string `json:"type" validate:"max=100"`
}

func (req appointmentRequest) appointment(id string) *domain.Appointment {
	return &domain.Appointment{
		ID:         id,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		ClientID:   req.ClientID,
		EmployeeID: req.EmployeeID,
		Type:       req.Type,
	}
}

func (h *Handler) GetAllAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.repository.GetAllAppointments(r.Context())
	if err != nil {
		h.storeError(w, r, err, "")
		return
	}

	h.successResponse(w, r, "liste des rendez-vous récupérée", appointments)
}

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req appointmentRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateAppointment(r.Context(), req.appointment("")); err != nil {
		h.storeError(w, r, err, "")
		return
	}

	h.reloadAppointments(w, r, "rendez-vous créé")
}

func (h *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	var req appointmentRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateAppointment(r.Context(), req.appointment(chi.URLParam(r, "id"))); err != nil {
		h.storeError(w, r, err, "rendez-vous introuvable")
		return
	}

	h.reloadAppointments(w, r, "rendez-vous mis à jour")
}

func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	if err := h.repository.DeleteAppointment(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.storeError(w, r, err, "rendez-vous introuvable")
		return
	}

	h.reloadAppointments(w, r, "rendez-vous supprimé")
}

type failedAppointment struct {
	Date  string `json:"date"`
	Error string `json:"error"`
}

type recurringResult struct {
	Created      []domain.Appointment  `json:"created"`
	Failed       []failedAppointment   `json:"failed"`
	Appointments []*domain.Appointment `json:"appointments"`
}

// CreateRecurringAppointments creates one appointment per matching weekday of
// the chosen month of the current year. Creations are independent: the ones
// that succeeded stay even when others fail.
func (h *Handler) CreateRecurringAppointments(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Weekday    *int   `json:"weekday" validate:"required,gte=0,lte=6"`
		Month      *int   `json:"month" validate:"required,gte=0,lte=11"`
		StartTime  string `json:"startTime" validate:"required,hhmm"`
		EndTime    string `json:"endTime" validate:"required,hhmm"`
		ClientID   string `json:"clientId" validate:"required"`
		EmployeeID string `json:"employeeId" validate:"required"`
		Type       string `json:"type" validate:"max=100"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	appointments := recurring.Expand(recurring.Template{
		Weekday:    time.Weekday(*req.Weekday),
		Month:      *req.Month,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		ClientID:   req.ClientID,
		EmployeeID: req.EmployeeID,
		Type:       req.Type,
	}, h.now().In(h.location).Year())

	result := recurringResult{
		Created: []domain.Appointment{},
		Failed:  []failedAppointment{},
	}
	for _, res := range h.repository.CreateAppointments(r.Context(), appointments) {
		if res.Err != nil {
			result.Failed = append(result.Failed, failedAppointment{Date: res.Appointment.Date, Error: res.Err.Error()})
			continue
		}
		result.Created = append(result.Created, res.Appointment)
	}

	all, err := h.repository.GetAllAppointments(r.Context())
	if err != nil {
		h.storeError(w, r, err, "")
		return
	}
	result.Appointments = all

	msg := fmt.Sprintf("%d rendez-vous créés", len(result.Created))
	if len(result.Failed) > 0 {
		msg = fmt.Sprintf("%d rendez-vous créés, %d échecs", len(result.Created), len(result.Failed))
	}
	h.successResponse(w, r, msg, result)
}

func (h *Handler) reloadAppointments(w http.ResponseWriter, r *http.Request, msg string) {
	appointments, err := h.repository.GetAllAppointments(r.Context())
	if err != nil {
		h.storeError(w, r, err, "")
		return
	}

	h.successResponse(w, r, msg, appointments)
}
