package domain

// Appointment links one client and one employee on a calendar day.
// ClientID and EmployeeID are weak references: nothing guarantees they still resolve.
type Appointment struct {
	ID         string `json:"id"`
	Date       string `json:"date"`      // YYYY-MM-DD, no timezone
	StartTime  string `json:"startTime"` // HH:MM
	EndTime    string `json:"endTime"`   // HH:MM
	ClientID   string `json:"clientId"`
	EmployeeID string `json:"employeeId"`
	Type       string `json:"type"`
}

// Event is the display form of an appointment for the calendar widget.
type Event struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Start    string      `json:"start"`
	End      string      `json:"end"`
	Color    string      `json:"color"`
	Original Appointment `json:"original"`
}
