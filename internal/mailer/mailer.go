// Package mailer turns queued mail messages into ready-to-send emails.
package mailer

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/wneessen/go-mail"

	"github.com/planning-aidant/backend/internal/domain"
)

var ErrUnsupportedType = errors.New("type de courriel non pris en charge")

// envelope mirrors domain.MailMessage with the payload left undecoded.
type envelope struct {
	Type string          `json:"type"`
	To   string          `json:"to"`
	Data json.RawMessage `json:"data"`
}

type Composer struct {
	from        string
	templateDir string
}

func NewComposer(from, templateDir string) *Composer {
	return &Composer{from: from, templateDir: templateDir}
}

// Compose decodes a queued message body and renders the matching template.
// Every error it returns is permanent: retrying the same body cannot succeed.
func (c *Composer) Compose(body []byte) (*mail.Msg, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("décodage du message: %w", err)
	}

	m := mail.NewMsg()
	if err := m.From(c.from); err != nil {
		return nil, err
	}
	if err := m.To(env.To); err != nil {
		return nil, err
	}

	switch env.Type {
	case domain.MailTypeMonthlyRecap:
		var data domain.RecapMailData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("décodage du récapitulatif: %w", err)
		}
		tmpl, err := template.ParseFiles(filepath.Join(c.templateDir, "recap_email.html"))
		if err != nil {
			return nil, err
		}
		if err := m.SetBodyHTMLTemplate(tmpl, data); err != nil {
			return nil, err
		}
		m.Subject(fmt.Sprintf("Planning - récapitulatif %s %d", data.Month, data.Year))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, env.Type)
	}

	return m, nil
}
