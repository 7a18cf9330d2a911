package utils

import (
	"regexp"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/planning-aidant/backend/internal/hours"
)

var clockPattern = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

// ValidClock reports whether t is a wall clock time "HH:MM" within a day.
func ValidClock(t string) bool {
	if !clockPattern.MatchString(t) {
		return false
	}
	h, m, err := hours.ParseClock(t)
	if err != nil {
		return false
	}
	return h >= 0 && h < 24 && m >= 0 && m < 60
}

// RegisterValidations adds the "hhmm" tag and its French message.
func RegisterValidations(validate *validator.Validate, trans ut.Translator) error {
	if err := validate.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return ValidClock(fl.Field().String())
	}); err != nil {
		return err
	}

	return validate.RegisterTranslation("hhmm", trans, func(ut ut.Translator) error {
		return ut.Add("hhmm", "{0} doit être une heure au format HH:MM", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("hhmm", fe.Field())
		return t
	})
}
