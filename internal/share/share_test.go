package share

import (
	"io"
	"log/slog"
	"net/smtp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLink(t *testing.T) {
	assert.Equal(t, "https://portfolia.dev/p/abc", Link("https://portfolia.dev/", "abc"))
}

func TestNewToken(t *testing.T) {
	tok := NewToken()
	_, err := uuid.Parse(tok)
	assert.NoError(t, err)
	assert.NotEqual(t, tok, NewToken())
}

func TestIntentsFor(t *testing.T) {
	in := IntentsFor("https://portfolia.dev/p/abc")
	assert.True(t, strings.HasPrefix(in.Twitter, "https://twitter.com/intent/tweet?text=Check+out+my+portfolio"))
	assert.Contains(t, in.LinkedIn, "url=https%3A%2F%2Fportfolia.dev%2Fp%2Fabc")
	assert.True(t, strings.HasPrefix(in.Email, "mailto:?subject=My%20Portfolio"))
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSMTPMailer_RequiresCredentials(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{}, quietLogger())
	err := m.Send("owner@example.com", ContactMessage{Name: "V"})
	assert.True(t, errors.Is(err, ErrNotConfigured))
}

func TestSMTPMailer_Send(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{User: "bot@example.com", Pass: "secret"}, quietLogger())

	var gotAddr string
	var gotTo []string
	var gotMsg []byte
	m.sendMail = func(addr string, _ smtp.Auth, _ string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, msg
		return nil
	}

	err := m.Send("owner@example.com", ContactMessage{Name: "Eve\r\nBcc: x@y", Email: "eve@example.com", Message: "Hello"})
	require.NoError(t, err)
	assert.Equal(t, "smtp.gmail.com:587", gotAddr)
	assert.Equal(t, []string{"owner@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Portfolio Contact: Eve  Bcc: x@y\r\n")
	assert.Contains(t, string(gotMsg), "Reply-To: eve@example.com")
}

func TestSMTPMailer_WrapsFailure(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{User: "u", Pass: "p"}, quietLogger())
	boom := errors.New("boom")
	m.sendMail = func(string, smtp.Auth, string, []string, []byte) error { return boom }

	err := m.Send("owner@example.com", ContactMessage{})
	assert.True(t, errors.Is(err, boom))
}
