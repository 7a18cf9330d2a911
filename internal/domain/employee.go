package domain

// Weekdays lists the availability labels an employee can carry, Monday first.
var Weekdays = []string{"Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi", "Dimanche"}

type Employee struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Phone        string   `json:"phone"`
	Availability []string `json:"availability"`
	Notes        string   `json:"notes"`
}
