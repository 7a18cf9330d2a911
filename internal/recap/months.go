package recap

import "time"

// Months are the column labels of the recap, January first.
var Months = []string{
	"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
	"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
}

// AllMonths is the filter value that displays the twelve months.
const AllMonths = ""

func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return Months[m-1]
}

// ParseMonth resolves a French month label.
func ParseMonth(name string) (time.Month, bool) {
	for i, m := range Months {
		if m == name {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

// DisplayedMonths expands a filter into the month labels to present.
// An unknown label displays nothing.
func DisplayedMonths(filter string) []string {
	if filter == AllMonths {
		return Months
	}
	if _, ok := ParseMonth(filter); ok {
		return []string{filter}
	}
	return []string{}
}

// PreviousMonth returns the calendar month before the one containing t.
func PreviousMonth(t time.Time) (int, time.Month) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	prev := first.AddDate(0, -1, 0)
	return prev.Year(), prev.Month()
}
