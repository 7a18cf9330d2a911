package domain

const MailTypeMonthlyRecap = "monthly_recap"

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type RecapMailLine struct {
	Name   string `json:"name"`
	Hours  string `json:"hours"`
	Rate   string `json:"rate"`
	Billed string `json:"billed"`
}

type RecapMailSection struct {
	Lines       []RecapMailLine `json:"lines"`
	TotalHours  string          `json:"totalHours"`
	TotalBilled string          `json:"totalBilled"`
}

type RecapMailData struct {
	Year      int              `json:"year"`
	Month     string           `json:"month"`
	Employees RecapMailSection `json:"employees"`
	Clients   RecapMailSection `json:"clients"`
}
