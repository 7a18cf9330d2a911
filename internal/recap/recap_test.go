package recap

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/planning-aidant/backend/internal/domain"
)

func appointment(date, start, end, clientID, employeeID string) *domain.Appointment {
	return &domain.Appointment{Date: date, StartTime: start, EndTime: end, ClientID: clientID, EmployeeID: employeeID}
}

func sampleInput() Input {
	return Input{
		Appointments: []*domain.Appointment{
			appointment("2024-02-10", "08:00", "10:30", "c1", "e1"),
			appointment("2024-02-20", "09:00", "09:45", "c1", "e1"),
			appointment("2024-03-01", "14:00", "16:00", "c2", "e2"),
			appointment("2023-02-10", "08:00", "18:00", "c1", "e1"), // previous year
			appointment("10/02/2024", "08:00", "18:00", "c1", "e1"), // unparsable date
			appointment("2024-02-12", "huit", "10:00", "c1", "e1"),  // malformed time
			appointment("2024-02-14", "08:00", "09:00", "gone", "gone"),
		},
		Employees: []*domain.Employee{{ID: "e1", Name: "Julie"}, {ID: "e2", Name: "Sarah"}},
		Clients:   []*domain.Client{{ID: "c1", Name: "Mme Durand"}, {ID: "c2", Name: "M. Petit"}},
		Year:      2024,
		Month:     AllMonths,
	}
}

func TestEmployeeRows(t *testing.T) {
	in := sampleInput()
	rows := EmployeeRows(in.Appointments, in.Employees, 2024)
	require.Len(t, rows, 2)

	julie := rows[0]
	assert.Equal(t, "e1", julie.ID)
	assert.Len(t, julie.Hours, 12)
	assert.InDelta(t, 3.25, julie.Hours["Février"], 1e-9)
	for _, m := range Months {
		if m != "Février" {
			assert.Zero(t, julie.Hours[m], m)
		}
	}

	assert.InDelta(t, 2.0, rows[1].Hours["Mars"], 1e-9)
}

func TestClientRows(t *testing.T) {
	in := sampleInput()
	rows := ClientRows(in.Appointments, in.Clients, 2024)
	require.Len(t, rows, 2)
	assert.InDelta(t, 3.25, rows[0].Hours["Février"], 1e-9)
	assert.InDelta(t, 2.0, rows[1].Hours["Mars"], 1e-9)
}

func TestOrphanContributesNothing(t *testing.T) {
	in := sampleInput()
	in.Appointments = []*domain.Appointment{appointment("2024-02-14", "08:00", "09:00", "gone", "gone")}

	report := Build(in)
	for _, line := range report.Employees.Lines {
		assert.Zero(t, line.Hours)
	}
	for _, sub := range report.Employees.Subtotals {
		assert.Zero(t, sub.TotalHours)
	}
}

func TestNegativeDurationIsKept(t *testing.T) {
	rows := EmployeeRows([]*domain.Appointment{appointment("2024-05-02", "12:00", "10:30", "c1", "e1")},
		[]*domain.Employee{{ID: "e1"}}, 2024)
	assert.InDelta(t, -1.5, rows[0].Hours["Mai"], 1e-9)
}

func TestBuildBilling(t *testing.T) {
	in := sampleInput()
	in.Rates = Rates{
		Employees: map[string]float64{"e1": 20},
		Clients:   map[string]float64{"c1": 30, "c2": 25},
	}

	report := Build(in)
	require.Len(t, report.Employees.Lines, 24)
	require.Len(t, report.Employees.Subtotals, 12)

	// month first, then entity
	feb := report.Employees.Lines[2]
	assert.Equal(t, "Février", feb.Month)
	assert.Equal(t, "e1", feb.ID)
	assert.InDelta(t, 3.25, feb.Hours, 1e-9)
	assert.Equal(t, 20.0, feb.Rate)
	assert.InDelta(t, 65.0, feb.Billed, 1e-9)

	sarahFeb := report.Employees.Lines[3]
	assert.Equal(t, "e2", sarahFeb.ID)
	assert.Zero(t, sarahFeb.Rate)
	assert.Zero(t, sarahFeb.Billed)

	assert.InDelta(t, 3.25*30, report.Clients.Subtotals[1].TotalBilled, 1e-9)
	assert.InDelta(t, 2*25.0, report.Clients.Subtotals[2].TotalBilled, 1e-9)
}

func TestRateChangeOnlyTouchesBilledAmounts(t *testing.T) {
	in := sampleInput()
	before := Build(in)

	in.Rates = Rates{Employees: map[string]float64{"e1": 12.5}}
	after := Build(in)

	require.Equal(t, len(before.Employees.Lines), len(after.Employees.Lines))
	for i := range before.Employees.Lines {
		b, a := before.Employees.Lines[i], after.Employees.Lines[i]
		assert.Equal(t, b.Hours, a.Hours)
		if a.ID == "e1" {
			assert.Equal(t, a.Hours*12.5, a.Billed)
		} else {
			assert.Equal(t, b.Billed, a.Billed)
		}
	}
	assert.Equal(t, before.Clients, after.Clients)
}

func TestSubtotalsIndependentOfFilter(t *testing.T) {
	in := sampleInput()
	in.Rates = Rates{Employees: map[string]float64{"e1": 20, "e2": 15}}
	all := Build(in)

	for i, month := range Months {
		in.Month = month
		single := Build(in)
		require.Len(t, single.Employees.Subtotals, 1)
		assert.Equal(t, all.Employees.Subtotals[i], single.Employees.Subtotals[0])

		var sum float64
		for _, line := range single.Employees.Lines {
			sum += line.Hours
		}
		assert.Equal(t, sum, single.Employees.Subtotals[0].TotalHours)

		// the filter never changes what is aggregated
		assert.Equal(t, all.Employees.Rows, single.Employees.Rows)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	in := sampleInput()
	in.Rates = Rates{Employees: map[string]float64{"e1": 17.3}}
	assert.Equal(t, Build(in), Build(in))
}

func TestUnknownMonthDisplaysNothing(t *testing.T) {
	in := sampleInput()
	in.Month = "Brumaire"
	report := Build(in)
	assert.Empty(t, report.Employees.Lines)
	assert.Empty(t, report.Employees.Subtotals)
	assert.Len(t, report.Employees.Rows, 2)
}

func TestMonthHelpers(t *testing.T) {
	m, ok := ParseMonth("Août")
	assert.True(t, ok)
	assert.Equal(t, 8, int(m))
	assert.Equal(t, "Décembre", MonthName(12))
	assert.Equal(t, "", MonthName(13))
	assert.Len(t, DisplayedMonths(AllMonths), 12)
}

func TestPreviousMonth(t *testing.T) {
	tests := []struct {
		now   time.Time
		year  int
		month time.Month
	}{
		{time.Date(2024, time.March, 31, 7, 0, 0, 0, time.UTC), 2024, time.February},
		{time.Date(2024, time.May, 31, 7, 0, 0, 0, time.UTC), 2024, time.April},
		{time.Date(2024, time.January, 1, 7, 0, 0, 0, time.UTC), 2023, time.December},
		{time.Date(2024, time.July, 15, 7, 0, 0, 0, time.UTC), 2024, time.June},
	}

	for _, tt := range tests {
		year, month := PreviousMonth(tt.now)
		assert.Equal(t, tt.year, year, tt.now.String())
		assert.Equal(t, tt.month, month, tt.now.String())
	}
}

func TestFormat2(t *testing.T) {
	assert.Equal(t, "3.25", Format2(3.25))
	assert.Equal(t, "0.00", Format2(0))
	assert.Equal(t, "0.33", Format2(1.0/3))
	assert.Equal(t, "-1.50", Format2(-1.5))
	assert.Equal(t, "12.00", Format2(12))

	// the stored binary value decides, not its shortest decimal form
	assert.Equal(t, "1.00", Format2(1.005))
	assert.Equal(t, "2.67", Format2(2.675))
	// exact ties round away from zero
	assert.Equal(t, "0.13", Format2(0.125))
	assert.Equal(t, "-0.13", Format2(-0.125))
}

func TestWriteXLSX(t *testing.T) {
	in := sampleInput()
	in.Month = "Février"
	in.Rates = Rates{Employees: map[string]float64{"e1": 20}}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, Build(in)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Employés", "Clients"}, f.GetSheetList())

	name, err := f.GetCellValue("Employés", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Julie", name)

	total, err := f.GetCellValue("Employés", "A4")
	require.NoError(t, err)
	assert.Equal(t, "Total", total)

	billed, err := f.GetCellValue("Employés", "E4")
	require.NoError(t, err)
	assert.Equal(t, "65.00", billed)
}
