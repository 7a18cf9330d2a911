package calendar

import (
	"io"
	"log/slog"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/planning-aidant/backend/internal/domain"
)

const eventLayout = "2006-01-02T15:04"

// WriteICS serializes events as an iCalendar feed. Event times are read in loc;
// events whose start or end cannot be parsed are left out.
func WriteICS(w io.Writer, events []domain.Event, productID string, loc *time.Location, now time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, ev := range events {
		start, err := time.ParseInLocation(eventLayout, ev.Start, loc)
		if err != nil {
			slog.Debug("événement ignoré dans le flux ics", "id", ev.ID, "start", ev.Start)
			continue
		}
		end, err := time.ParseInLocation(eventLayout, ev.End, loc)
		if err != nil {
			slog.Debug("événement ignoré dans le flux ics", "id", ev.ID, "end", ev.End)
			continue
		}

		vev := cal.AddEvent(ev.ID)
		vev.SetDtStampTime(now)
		vev.SetStartAt(start)
		vev.SetEndAt(end)
		vev.SetSummary(ev.Title)
		if ev.Original.Type != "" {
			vev.SetDescription(ev.Original.Type)
		}
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}
