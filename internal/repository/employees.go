package repository

import (
	"context"

	"github.com/planning-aidant/backend/internal/domain"
)

func employeeFromDocument(doc Document) *domain.Employee {
	return &domain.Employee{
		ID:           doc.ID,
		Name:         stringField(doc.Fields, fieldName),
		Phone:        stringField(doc.Fields, fieldPhone),
		Availability: stringsField(doc.Fields, fieldAvailability),
		Notes:        stringField(doc.Fields, fieldNotes),
	}
}

func employeeFields(e *domain.Employee) map[string]any {
	availability := e.Availability
	if availability == nil {
		availability = []string{}
	}
	return map[string]any{
		fieldName:         e.Name,
		fieldPhone:        e.Phone,
		fieldAvailability: availability,
		fieldNotes:        e.Notes,
	}
}

func (r *Repository) GetAllEmployees(ctx context.Context) ([]*domain.Employee, error) {
	docs, err := r.ListAll(ctx, Employees)
	if err != nil {
		return nil, err
	}

	employees := make([]*domain.Employee, 0, len(docs))
	for _, doc := range docs {
		employees = append(employees, employeeFromDocument(doc))
	}
	return employees, nil
}

func (r *Repository) CreateEmployee(ctx context.Context, e *domain.Employee) error {
	id, err := r.Create(ctx, Employees, employeeFields(e))
	if err != nil {
		return err
	}
	e.ID = id
	return nil
}

func (r *Repository) UpdateEmployee(ctx context.Context, e *domain.Employee) error {
	return r.Update(ctx, Employees, e.ID, employeeFields(e))
}

func (r *Repository) DeleteEmployee(ctx context.Context, id string) error {
	return r.Delete(ctx, Employees, id)
}
