// Package recap derives the monthly hours and billing report from appointments.
//
// Every function here is pure: the same appointments, people, year, filter and
// rates always give the same report. Orphan references, dates outside the year,
// unparsable dates and malformed times contribute nothing; none of them is an error.
package recap

import (
	"time"

	"github.com/planning-aidant/backend/internal/domain"
	"github.com/planning-aidant/backend/internal/hours"
)

const dateLayout = "2006-01-02"

// Row holds the hours of one entity for the twelve months of a year.
type Row struct {
	ID    string             `json:"id"`
	Name  string             `json:"name"`
	Hours map[string]float64 `json:"hours"`
}

type Entity struct {
	ID   string
	Name string
}

// Line is one (entity, displayed month) cell pair of the report.
type Line struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Month  string  `json:"month"`
	Hours  float64 `json:"hours"`
	Rate   float64 `json:"rate"`
	Billed float64 `json:"billedAmount"`
}

// Subtotal is the synthetic total row of a displayed month.
type Subtotal struct {
	Month       string  `json:"month"`
	TotalHours  float64 `json:"totalHours"`
	TotalBilled float64 `json:"totalBilled"`
}

type Section struct {
	Rows      []Row      `json:"rows"`
	Lines     []Line     `json:"lines"`
	Subtotals []Subtotal `json:"subtotals"`
}

type Report struct {
	Year      int     `json:"year"`
	Month     string  `json:"month"`
	Employees Section `json:"employees"`
	Clients   Section `json:"clients"`
}

// Rates maps entity ids to an hourly rate. A missing entry is a rate of 0.
type Rates struct {
	Employees map[string]float64 `json:"employees"`
	Clients   map[string]float64 `json:"clients"`
}

type Input struct {
	Appointments []*domain.Appointment
	Employees    []*domain.Employee
	Clients      []*domain.Client
	Year         int
	Month        string // AllMonths or one label of Months
	Rates        Rates
}

// Aggregate sums, per entity and month of year, the duration of the appointments
// whose reference (as returned by ref) equals the entity id.
func Aggregate(appointments []*domain.Appointment, entities []Entity, year int, ref func(*domain.Appointment) string) []Row {
	rows := make([]Row, len(entities))
	byID := make(map[string][]int, len(entities))
	for i, e := range entities {
		rows[i] = Row{ID: e.ID, Name: e.Name, Hours: emptyMonths()}
		byID[e.ID] = append(byID[e.ID], i)
	}

	for _, a := range appointments {
		indexes, ok := byID[ref(a)]
		if !ok {
			continue
		}
		date, err := time.Parse(dateLayout, a.Date)
		if err != nil || date.Year() != year {
			continue
		}
		d, err := hours.DurationHours(a.StartTime, a.EndTime)
		if err != nil {
			continue
		}
		month := MonthName(date.Month())
		for _, i := range indexes {
			rows[i].Hours[month] += d
		}
	}

	return rows
}

func EmployeeRows(appointments []*domain.Appointment, employees []*domain.Employee, year int) []Row {
	entities := make([]Entity, 0, len(employees))
	for _, e := range employees {
		entities = append(entities, Entity{ID: e.ID, Name: e.Name})
	}
	return Aggregate(appointments, entities, year, func(a *domain.Appointment) string { return a.EmployeeID })
}

func ClientRows(appointments []*domain.Appointment, clients []*domain.Client, year int) []Row {
	entities := make([]Entity, 0, len(clients))
	for _, c := range clients {
		entities = append(entities, Entity{ID: c.ID, Name: c.Name})
	}
	return Aggregate(appointments, entities, year, func(a *domain.Appointment) string { return a.ClientID })
}

// Pivot expands rows into one line per displayed month and entity, month first,
// and computes the subtotal of each displayed month. Rates never alter hours.
func Pivot(rows []Row, months []string, rates map[string]float64) Section {
	section := Section{
		Rows:      rows,
		Lines:     make([]Line, 0, len(rows)*len(months)),
		Subtotals: make([]Subtotal, 0, len(months)),
	}

	for _, month := range months {
		subtotal := Subtotal{Month: month}
		for _, row := range rows {
			rate := rates[row.ID]
			h := row.Hours[month]
			billed := h * rate

			section.Lines = append(section.Lines, Line{
				ID:     row.ID,
				Name:   row.Name,
				Month:  month,
				Hours:  h,
				Rate:   rate,
				Billed: billed,
			})
			subtotal.TotalHours += h
			subtotal.TotalBilled += billed
		}
		section.Subtotals = append(section.Subtotals, subtotal)
	}

	return section
}

// Build computes both tables. All twelve months are aggregated whatever the
// filter; the filter only selects which months are pivoted into lines.
func Build(in Input) Report {
	months := DisplayedMonths(in.Month)

	return Report{
		Year:      in.Year,
		Month:     in.Month,
		Employees: Pivot(EmployeeRows(in.Appointments, in.Employees, in.Year), months, in.Rates.Employees),
		Clients:   Pivot(ClientRows(in.Appointments, in.Clients, in.Year), months, in.Rates.Clients),
	}
}

func emptyMonths() map[string]float64 {
	m := make(map[string]float64, len(Months))
	for _, month := range Months {
		m[month] = 0
	}
	return m
}
