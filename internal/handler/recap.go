package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/planning-aidant/backend/internal/domain"
	"github.com/planning-aidant/backend/internal/recap"
)

var errInvalidMonth = errors.New("mois invalide")

func (h *Handler) monthFilter(r *http.Request) (string, error) {
	month := r.URL.Query().Get("month")
	if err := h.validate.Var(month, monthFilterTag); err != nil {
		return "", errInvalidMonth
	}
	return month, nil
}

func (h *Handler) buildReport(ctx context.Context, year int, month string, rates recap.Rates) (recap.Report, error) {
	s, err := h.loadSnapshot(ctx)
	if err != nil {
		return recap.Report{}, err
	}

	return recap.Build(recap.Input{
		Appointments: s.appointments,
		Employees:    s.employees,
		Clients:      s.clients,
		Year:         year,
		Month:        month,
		Rates:        rates,
	}), nil
}

func (h *Handler) sessionReport(w http.ResponseWriter, r *http.Request) (recap.Report, bool) {
	month, err := h.monthFilter(r)
	if err != nil {
		h.badRequest(w, r, err)
		return recap.Report{}, false
	}

	rates, err := h.rates.Rates(r.Context(), sessionFrom(r.Context()))
	if err != nil {
		h.internalServerError(w, r, err)
		return recap.Report{}, false
	}

	report, err := h.buildReport(r.Context(), h.now().In(h.location).Year(), month, rates)
	if err != nil {
		h.storeError(w, r, err, "")
		return recap.Report{}, false
	}
	return report, true
}

func (h *Handler) GetRecap(w http.ResponseWriter, r *http.Request) {
	report, ok := h.sessionReport(w, r)
	if !ok {
		return
	}

	h.successResponse(w, r, "récapitulatif calculé", report)
}

func (h *Handler) ExportRecap(w http.ResponseWriter, r *http.Request) {
	report, ok := h.sessionReport(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := recap.WriteXLSX(&buf, report); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="recap-%d.xlsx"`, report.Year))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// SendRecap mails the recap of one month, the current one by default, with
// the session's rates.
func (h *Handler) SendRecap(w http.ResponseWriter, r *http.Request) {
	month, err := h.monthFilter(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	now := h.now().In(h.location)
	m := now.Month()
	if month != recap.AllMonths {
		m, _ = recap.ParseMonth(month)
	}

	rates, err := h.rates.Rates(r.Context(), sessionFrom(r.Context()))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.PublishMonthlyRecap(r.Context(), now.Year(), m, rates); err != nil {
		h.storeError(w, r, err, "")
		return
	}

	h.successResponse(w, r, "récapitulatif envoyé", nil)
}

// PublishMonthlyRecap queues the recap mail of (year, month) for the mail worker.
func (h *Handler) PublishMonthlyRecap(ctx context.Context, year int, month time.Month, rates recap.Rates) error {
	report, err := h.buildReport(ctx, year, recap.MonthName(month), rates)
	if err != nil {
		return err
	}

	body, err := json.Marshal(domain.MailMessage{
		Type: domain.MailTypeMonthlyRecap,
		To:   h.config.Email.RecapRecipient,
		Data: MailData(report),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.publisher.PublishWithContext(
		ctx,
		"",
		h.config.RabbitMQ.Queue,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		return err
	}

	slog.Info("récapitulatif mis en file", "year", year, "month", report.Month)
	return nil
}

// MailData flattens a single-month report into the mail template payload.
func MailData(report recap.Report) domain.RecapMailData {
	return domain.RecapMailData{
		Year:      report.Year,
		Month:     report.Month,
		Employees: mailSection(report.Employees),
		Clients:   mailSection(report.Clients),
	}
}

func mailSection(section recap.Section) domain.RecapMailSection {
	out := domain.RecapMailSection{
		Lines:       make([]domain.RecapMailLine, 0, len(section.Lines)),
		TotalHours:  recap.Format2(0),
		TotalBilled: recap.Format2(0),
	}
	for _, line := range section.Lines {
		out.Lines = append(out.Lines, domain.RecapMailLine{
			Name:   line.Name,
			Hours:  recap.Format2(line.Hours),
			Rate:   recap.Format2(line.Rate),
			Billed: recap.Format2(line.Billed),
		})
	}
	if len(section.Subtotals) > 0 {
		out.TotalHours = recap.Format2(section.Subtotals[0].TotalHours)
		out.TotalBilled = recap.Format2(section.Subtotals[0].TotalBilled)
	}
	return out
}

func (h *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.rates.Rates(r.Context(), sessionFrom(r.Context()))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "taux horaires récupérés", rates)
}

type rateRequest struct {
	Rate *float64 `json:"rate" validate:"required,gte=0"`
}

func (h *Handler) readRate(w http.ResponseWriter, r *http.Request) (float64, bool) {
	var req rateRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return 0, false
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return 0, false
	}
	return *req.Rate, true
}

func (h *Handler) SetEmployeeRate(w http.ResponseWriter, r *http.Request) {
	rate, ok := h.readRate(w, r)
	if !ok {
		return
	}

	session := sessionFrom(r.Context())
	if err := h.rates.SetEmployeeRate(r.Context(), session, chi.URLParam(r, "id"), rate); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.GetRates(w, r)
}

func (h *Handler) SetClientRate(w http.ResponseWriter, r *http.Request) {
	rate, ok := h.readRate(w, r)
	if !ok {
		return
	}

	session := sessionFrom(r.Context())
	if err := h.rates.SetClientRate(r.Context(), session, chi.URLParam(r, "id"), rate); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.GetRates(w, r)
}

func (h *Handler) ResetRates(w http.ResponseWriter, r *http.Request) {
	if err := h.rates.Reset(r.Context(), sessionFrom(r.Context())); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "taux horaires réinitialisés", recap.Rates{
		Employees: map[string]float64{},
		Clients:   map[string]float64{},
	})
}
