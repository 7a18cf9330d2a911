package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/planning-aidant/backend/internal/domain"
)

var firstNames = []string{
	"Marie", "Jean", "Camille", "Louis", "Chloé", "Hugo", "Léa", "Lucas", "Manon", "Nathan",
	"Inès", "Paul", "Sarah", "Jules", "Emma", "Arthur", "Julie", "Thomas", "Claire", "Antoine",
}

var lastNames = []string{
	"Martin", "Bernard", "Dubois", "Thomas", "Robert", "Richard", "Petit", "Durand", "Leroy", "Moreau",
	"Simon", "Laurent", "Lefebvre", "Michel", "Garcia", "David", "Bertrand", "Roux", "Vincent", "Fournier",
}

var streets = []string{
	"rue de la République", "avenue Jean Jaurès", "rue Victor Hugo", "boulevard Pasteur",
	"rue des Lilas", "place de la Mairie", "chemin des Vignes", "rue du Moulin",
}

var cities = []string{
	"69003 Lyon", "13001 Marseille", "31000 Toulouse", "33000 Bordeaux", "44000 Nantes", "67000 Strasbourg",
}

var appointmentTypes = []string{"Ménage", "Courses", "Aide au repas", "Toilette", "Accompagnement", "Repassage"}

func GenerateRandomName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

func GenerateRandomPhone() string {
	return fmt.Sprintf("0%d %02d %02d %02d %02d", 6+rand.Intn(2), rand.Intn(100), rand.Intn(100), rand.Intn(100), rand.Intn(100))
}

func GenerateRandomAddress() string {
	return fmt.Sprintf("%d %s, %s", rand.Intn(120)+1, streets[rand.Intn(len(streets))], cities[rand.Intn(len(cities))])
}

func GenerateRandomClient() *domain.Client {
	return &domain.Client{
		Name:    GenerateRandomName(),
		Phone:   GenerateRandomPhone(),
		Address: GenerateRandomAddress(),
	}
}

// GenerateRandomEmployee picks each weekday with probability one half.
func GenerateRandomEmployee() *domain.Employee {
	availability := []string{}
	for _, day := range domain.Weekdays {
		if rand.Intn(2) == 0 {
			availability = append(availability, day)
		}
	}

	return &domain.Employee{
		Name:         GenerateRandomName(),
		Phone:        GenerateRandomPhone(),
		Availability: availability,
	}
}

// GenerateRandomAppointment places an appointment on a random day of the month
// of now, starting on a quarter hour between 08:00 and 17:45 and lasting one to
// three hours.
func GenerateRandomAppointment(now time.Time, clientID, employeeID string) *domain.Appointment {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	days := firstOfMonth.AddDate(0, 1, -1).Day()
	day := firstOfMonth.AddDate(0, 0, rand.Intn(days))

	start := 8*60 + rand.Intn(40)*15
	end := start + 60 + rand.Intn(9)*15

	return &domain.Appointment{
		Date:       day.Format("2006-01-02"),
		StartTime:  fmt.Sprintf("%02d:%02d", start/60, start%60),
		EndTime:    fmt.Sprintf("%02d:%02d", end/60, end%60),
		ClientID:   clientID,
		EmployeeID: employeeID,
		Type:       appointmentTypes[rand.Intn(len(appointmentTypes))],
	}
}
