// Package hours converts "HH:MM" wall-clock strings into decimal hours.
package hours

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClock splits "H:MM" or "HH:MM" into hour and minute. A missing minute reads as 0.
func ParseClock(t string) (int, int, error) {
	h, m, found := strings.Cut(strings.TrimSpace(t), ":")
	hour, err := strconv.Atoi(h)
	if err != nil {
		return 0, 0, fmt.Errorf("heure invalide %q", t)
	}
	minute := 0
	if found && m != "" {
		minute, err = strconv.Atoi(m)
		if err != nil {
			return 0, 0, fmt.Errorf("minutes invalides %q", t)
		}
	}
	return hour, minute, nil
}

// Decimal returns hour + minute/60.
func Decimal(t string) (float64, error) {
	hour, minute, err := ParseClock(t)
	if err != nil {
		return 0, err
	}
	return float64(hour) + float64(minute)/60, nil
}

// DurationHours returns end - start in decimal hours. The result is negative
// when end precedes start; callers decide whether that is acceptable.
func DurationHours(start, end string) (float64, error) {
	s, err := Decimal(start)
	if err != nil {
		return 0, err
	}
	e, err := Decimal(end)
	if err != nil {
		return 0, err
	}
	return e - s, nil
}

// PadTime normalizes "9:5" into "09:05" and "9" into "09:00". Empty input stays empty.
func PadTime(t string) string {
	if t == "" {
		return ""
	}
	h, m, _ := strings.Cut(t, ":")
	if m == "" {
		m = "00"
	}
	return leftPad(h) + ":" + leftPad(m)
}

func leftPad(s string) string {
	if len(s) >= 2 {
		return s
	}
	return strings.Repeat("0", 2-len(s)) + s
}
