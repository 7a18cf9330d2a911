package handler

import (
	"bytes"
	"net/http"

	"github.com/planning-aidant/backend/internal/calendar"
)

func (h *Handler) GetPlanningEvents(w http.ResponseWriter, r *http.Request) {
	s, err := h.loadSnapshot(r.Context())
	if err != nil {
		h.storeError(w, r, err, "")
		return
	}

	h.successResponse(w, r, "planning récupéré", calendar.Project(s.appointments, s.clients, s.employees))
}

func (h *Handler) GetPlanningCalendar(w http.ResponseWriter, r *http.Request) {
	s, err := h.loadSnapshot(r.Context())
	if err != nil {
		h.storeError(w, r, err, "")
		return
	}

	events := calendar.Project(s.appointments, s.clients, s.employees)

	var buf bytes.Buffer
	if err := calendar.WriteICS(&buf, events, h.config.Calendar.ProductID, h.location, h.now()); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="planning.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
