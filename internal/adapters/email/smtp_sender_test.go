package email

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"net/smtp"
	"strings"
	"testing"

	"github.com/payzen/payzen_backend/internal/apperrors"
	"github.com/payzen/payzen_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPSender_Send(t *testing.T) {
	sender, err := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: 587, Username: "u", Password: "p", From: "Payzen <no-reply@payzen.test>"})
	require.NoError(t, err)

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	sender.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	err = sender.Send(context.Background(), domain.EmailMessage{
		To:       "client@example.com",
		Subject:  "Invoice PZ-0001",
		HTMLBody: "<p>Hello</p>",
		TextBody: "Hello",
		Attachments: []domain.EmailAttachment{
			{Filename: "PZ-0001.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.3 fake")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "no-reply@payzen.test", gotFrom)
	assert.Equal(t, []string{"client@example.com"}, gotTo)

	parsed, err := mail.ReadMessage(strings.NewReader(string(gotMsg)))
	require.NoError(t, err)
	assert.Equal(t, "client@example.com", parsed.Header.Get("To"))

	mediaType, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/mixed", mediaType)

	reader := multipart.NewReader(parsed.Body, params["boundary"])
	first, err := reader.NextPart()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first.Header.Get("Content-Type"), "multipart/alternative"))
	_, _ = io.Copy(io.Discard, first)

	attachment, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "PZ-0001.pdf", attachment.FileName())
}

func TestSMTPSender_SendFailureIsUpstream(t *testing.T) {
	sender, err := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: 25, From: "no-reply@payzen.test"})
	require.NoError(t, err)
	sender.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	err = sender.Send(context.Background(), domain.EmailMessage{To: "client@example.com", Subject: "x", HTMLBody: "x"})
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}

func TestSMTPSender_InvalidRecipient(t *testing.T) {
	sender, err := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: 25, From: "no-reply@payzen.test"})
	require.NoError(t, err)

	err = sender.Send(context.Background(), domain.EmailMessage{To: "not-an-email", Subject: "x", HTMLBody: "x"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestNewSMTPSender_InvalidFrom(t *testing.T) {
	_, err := NewSMTPSender(SMTPConfig{From: "nope"})
	assert.Error(t, err)
}
