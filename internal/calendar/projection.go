// Package calendar turns stored appointments into display events and iCalendar feeds.
package calendar

import (
	"fmt"

	"github.com/planning-aidant/backend/internal/domain"
	"github.com/planning-aidant/backend/internal/hours"
)

const (
	// Placeholder stands in for a client or employee that no longer resolves.
	Placeholder = "…"
	// NeutralColor is used when the employee of an appointment is unknown.
	NeutralColor = "#999"
)

// Color derives the event color from the employee position in the loaded list.
func Color(index int) string {
	if index < 0 {
		return NeutralColor
	}
	return fmt.Sprintf("hsl(%d,70%%,60%%)", (index*60)%360)
}

// Project maps every appointment to an event. It has no side effects and must be
// recomputed whenever one of the three lists changes.
func Project(appointments []*domain.Appointment, clients []*domain.Client, employees []*domain.Employee) []domain.Event {
	clientNames := make(map[string]string, len(clients))
	for _, c := range clients {
		if _, ok := clientNames[c.ID]; !ok {
			clientNames[c.ID] = c.Name
		}
	}
	employeeIndex := make(map[string]int, len(employees))
	for i, e := range employees {
		if _, ok := employeeIndex[e.ID]; !ok {
			employeeIndex[e.ID] = i
		}
	}

	events := make([]domain.Event, 0, len(appointments))
	for _, a := range appointments {
		clientName, ok := clientNames[a.ClientID]
		if !ok {
			clientName = Placeholder
		}

		index, ok := employeeIndex[a.EmployeeID]
		employeeName := Placeholder
		if ok {
			employeeName = employees[index].Name
		} else {
			index = -1
		}

		events = append(events, domain.Event{
			ID:       a.ID,
			Title:    fmt.Sprintf("%s pour %s", employeeName, clientName),
			Start:    a.Date + "T" + hours.PadTime(a.StartTime),
			End:      a.Date + "T" + hours.PadTime(a.EndTime),
			Color:    Color(index),
			Original: *a,
		})
	}
	return events
}
