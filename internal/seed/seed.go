// Package seed loads demonstration data into the document store.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/planning-aidant/backend/internal/domain"
	"github.com/planning-aidant/backend/internal/recap"
	"github.com/planning-aidant/backend/internal/recurring"
	"github.com/planning-aidant/backend/internal/repository"
)

// Fixture references people by name; ids are assigned by the store.
type Fixture struct {
	Clients      []FixtureClient      `yaml:"clients"`
	Employees    []FixtureEmployee    `yaml:"employees"`
	Appointments []FixtureAppointment `yaml:"appointments"`
	Recurring    []FixtureRecurring   `yaml:"recurring"`
}

type FixtureClient struct {
	Name    string `yaml:"name"`
	Phone   string `yaml:"phone"`
	Address string `yaml:"address"`
	Notes   string `yaml:"notes"`
}

type FixtureEmployee struct {
	Name         string   `yaml:"name"`
	Phone        string   `yaml:"phone"`
	Availability []string `yaml:"availability"`
	Notes        string   `yaml:"notes"`
}

type FixtureAppointment struct {
	Date      string `yaml:"date"`
	StartTime string `yaml:"start"`
	EndTime   string `yaml:"end"`
	Client    string `yaml:"client"`
	Employee  string `yaml:"employee"`
	Type      string `yaml:"type"`
}

// FixtureRecurring expands like the recurring form: every Weekday of Month in
// the seeding year.
type FixtureRecurring struct {
	Weekday   string `yaml:"weekday"` // Lundi .. Dimanche
	Month     string `yaml:"month"`   // Janvier .. Décembre
	StartTime string `yaml:"start"`
	EndTime   string `yaml:"end"`
	Client    string `yaml:"client"`
	Employee  string `yaml:"employee"`
	Type      string `yaml:"type"`
}

type Summary struct {
	Clients      int
	Employees    int
	Appointments int
	Skipped      int
}

func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	return &f, nil
}

// weekday maps a French day name to time.Weekday.
func weekday(name string) (time.Weekday, bool) {
	for i, day := range domain.Weekdays {
		if day == name {
			// Weekdays starts on Monday
			return time.Weekday((i + 1) % 7), true
		}
	}
	return 0, false
}

// Apply stores the fixture. Appointments naming an unknown client or employee
// are skipped and counted; store errors abort.
func Apply(ctx context.Context, repo *repository.Repository, f *Fixture, year int) (Summary, error) {
	var summary Summary

	clientIDs := make(map[string]string, len(f.Clients))
	for _, fc := range f.Clients {
		c := &domain.Client{Name: fc.Name, Phone: fc.Phone, Address: fc.Address, Notes: fc.Notes}
		if err := repo.CreateClient(ctx, c); err != nil {
			return summary, err
		}
		clientIDs[fc.Name] = c.ID
		summary.Clients++
	}

	employeeIDs := make(map[string]string, len(f.Employees))
	for _, fe := range f.Employees {
		availability := fe.Availability
		if availability == nil {
			availability = []string{}
		}
		e := &domain.Employee{Name: fe.Name, Phone: fe.Phone, Availability: availability, Notes: fe.Notes}
		if err := repo.CreateEmployee(ctx, e); err != nil {
			return summary, err
		}
		employeeIDs[fe.Name] = e.ID
		summary.Employees++
	}

	resolve := func(client, employee string) (string, string, bool) {
		clientID, ok := clientIDs[client]
		if !ok {
			slog.Warn("client inconnu dans la fixture", "client", client)
			return "", "", false
		}
		employeeID, ok := employeeIDs[employee]
		if !ok {
			slog.Warn("employé inconnu dans la fixture", "employee", employee)
			return "", "", false
		}
		return clientID, employeeID, true
	}

	for _, fa := range f.Appointments {
		clientID, employeeID, ok := resolve(fa.Client, fa.Employee)
		if !ok {
			summary.Skipped++
			continue
		}
		a := &domain.Appointment{
			Date:       fa.Date,
			StartTime:  fa.StartTime,
			EndTime:    fa.EndTime,
			ClientID:   clientID,
			EmployeeID: employeeID,
			Type:       fa.Type,
		}
		if err := repo.CreateAppointment(ctx, a); err != nil {
			return summary, err
		}
		summary.Appointments++
	}

	for _, fr := range f.Recurring {
		clientID, employeeID, ok := resolve(fr.Client, fr.Employee)
		if !ok {
			summary.Skipped++
			continue
		}
		day, ok := weekday(fr.Weekday)
		if !ok {
			slog.Warn("jour inconnu dans la fixture", "weekday", fr.Weekday)
			summary.Skipped++
			continue
		}
		month, ok := recap.ParseMonth(fr.Month)
		if !ok {
			slog.Warn("mois inconnu dans la fixture", "month", fr.Month)
			summary.Skipped++
			continue
		}

		appointments := recurring.Expand(recurring.Template{
			Weekday:    day,
			Month:      int(month) - 1,
			StartTime:  fr.StartTime,
			EndTime:    fr.EndTime,
			ClientID:   clientID,
			EmployeeID: employeeID,
			Type:       fr.Type,
		}, year)
		for _, res := range repo.CreateAppointments(ctx, appointments) {
			if res.Err != nil {
				return summary, res.Err
			}
			summary.Appointments++
		}
	}

	return summary, nil
}
