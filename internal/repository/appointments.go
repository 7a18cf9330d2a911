package repository

import (
	"context"
	"sync"

	"github.com/planning-aidant/backend/internal/domain"
)

func appointmentFromDocument(doc Document) *domain.Appointment {
	return &domain.Appointment{
		ID:         doc.ID,
		Date:       stringField(doc.Fields, fieldDate),
		StartTime:  stringField(doc.Fields, fieldStartTime),
		EndTime:    stringField(doc.Fields, fieldEndTime),
		ClientID:   stringField(doc.Fields, fieldClientID),
		EmployeeID: stringField(doc.Fields, fieldEmployeeID),
		Type:       stringField(doc.Fields, fieldType),
	}
}

func appointmentFields(a *domain.Appointment) map[string]any {
	return map[string]any{
		fieldDate:       a.Date,
		fieldStartTime:  a.StartTime,
		fieldEndTime:    a.EndTime,
		fieldClientID:   a.ClientID,
		fieldEmployeeID: a.EmployeeID,
		fieldType:       a.Type,
	}
}

func (r *Repository) GetAllAppointments(ctx context.Context) ([]*domain.Appointment, error) {
	docs, err := r.ListAll(ctx, Appointments)
	if err != nil {
		return nil, err
	}

	appointments := make([]*domain.Appointment, 0, len(docs))
	for _, doc := range docs {
		appointments = append(appointments, appointmentFromDocument(doc))
	}
	return appointments, nil
}

func (r *Repository) CreateAppointment(ctx context.Context, a *domain.Appointment) error {
	id, err := r.Create(ctx, Appointments, appointmentFields(a))
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

func (r *Repository) UpdateAppointment(ctx context.Context, a *domain.Appointment) error {
	return r.Update(ctx, Appointments, a.ID, appointmentFields(a))
}

func (r *Repository) DeleteAppointment(ctx context.Context, id string) error {
	return r.Delete(ctx, Appointments, id)
}

// BatchResult is the outcome of one creation inside CreateAppointments.
type BatchResult struct {
	Appointment domain.Appointment
	Err         error
}

// CreateAppointments issues every creation concurrently. There is no rollback:
// the results report which appointments were stored and which failed.
func (r *Repository) CreateAppointments(ctx context.Context, appointments []domain.Appointment) []BatchResult {
	results := make([]BatchResult, len(appointments))

	var wg sync.WaitGroup
	for i := range appointments {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a := appointments[i]
			err := r.CreateAppointment(ctx, &a)
			results[i] = BatchResult{Appointment: a, Err: err}
		}(i)
	}
	wg.Wait()

	return results
}
