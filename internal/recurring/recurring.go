// Package recurring expands a weekly appointment template into dated appointments for one month.
package recurring

import (
	"time"

	"github.com/teambition/rrule-go"

	"github.com/planning-aidant/backend/internal/domain"
)

const dateLayout = "2006-01-02"

var rruleWeekdays = []rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

type Template struct {
	Weekday    time.Weekday // 0 = Sunday
	Month      int          // 0 = January
	StartTime  string
	EndTime    string
	ClientID   string
	EmployeeID string
	Type       string
}

// Dates returns every day of (year, month) falling on weekday, in order.
func Dates(weekday time.Weekday, year int, month time.Month) []time.Time {
	if weekday < time.Sunday || weekday > time.Saturday || month < time.January || month > time.December {
		return nil
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   first,
		Until:     last,
		Byweekday: []rrule.Weekday{rruleWeekdays[weekday]},
	})
	if err != nil {
		return nil
	}

	return r.All()
}

// Expand produces one appointment per matching weekday of the template month.
// A month index outside 0..11 yields no appointment.
func Expand(tpl Template, year int) []domain.Appointment {
	if tpl.Month < 0 || tpl.Month > 11 {
		return []domain.Appointment{}
	}

	dates := Dates(tpl.Weekday, year, time.Month(tpl.Month+1))
	appointments := make([]domain.Appointment, 0, len(dates))
	for _, d := range dates {
		appointments = append(appointments, domain.Appointment{
			Date:       d.Format(dateLayout),
			StartTime:  tpl.StartTime,
			EndTime:    tpl.EndTime,
			ClientID:   tpl.ClientID,
			EmployeeID: tpl.EmployeeID,
			Type:       tpl.Type,
		})
	}
	return appointments
}
