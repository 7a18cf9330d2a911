package mailer

import (
	"bytes"
	"encoding/json"
	"mime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"

	"github.com/planning-aidant/backend/internal/domain"
)

func recapBody(t *testing.T) []byte {
	t.Helper()

	body, err := json.Marshal(domain.MailMessage{
		Type: domain.MailTypeMonthlyRecap,
		To:   "compta@example.com",
		Data: domain.RecapMailData{
			Year:  2024,
			Month: "Février",
			Employees: domain.RecapMailSection{
				Lines:       []domain.RecapMailLine{{Name: "Paul", Hours: "3.25", Rate: "20.00", Billed: "65.00"}},
				TotalHours:  "3.25",
				TotalBilled: "65.00",
			},
			Clients: domain.RecapMailSection{TotalHours: "0.00", TotalBilled: "0.00"},
		},
	})
	require.NoError(t, err)
	return body
}

func TestComposeRecap(t *testing.T) {
	c := NewComposer("planning@example.com", "../../templates")

	m, err := c.Compose(recapBody(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"<compta@example.com>"}, m.GetToString())

	// go-mail stores the subject RFC 2047 encoded
	subject := m.GetGenHeader(mail.HeaderSubject)
	require.Len(t, subject, 1)
	decoded, err := new(mime.WordDecoder).DecodeHeader(subject[0])
	require.NoError(t, err)
	assert.Equal(t, "Planning - récapitulatif Février 2024", decoded)

	parts := m.GetParts()
	require.Len(t, parts, 1)
	body, err := parts[0].GetContent()
	require.NoError(t, err)
	assert.Contains(t, string(body), "<td>Paul</td><td>3.25</td><td>20.00</td><td>65.00 €</td>")
	assert.Contains(t, string(body), "Récapitulatif Février 2024")

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "text/html")
}

func TestComposeRejects(t *testing.T) {
	c := NewComposer("planning@example.com", "../../templates")

	_, err := c.Compose([]byte("not json"))
	assert.Error(t, err)

	_, err = c.Compose([]byte(`{"type":"reset_password","to":"a@example.com","data":{}}`))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = c.Compose([]byte(`{"type":"monthly_recap","to":"not an address","data":{}}`))
	assert.Error(t, err)

	missing := NewComposer("planning@example.com", "./nowhere")
	_, err = missing.Compose(recapBody(t))
	assert.Error(t, err)
}
