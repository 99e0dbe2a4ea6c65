package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMailSettingsFromEnv(t *testing.T) {
	t.Setenv("SENDGRID_API_KEY", "sg-key")
	t.Setenv("SENDGRID_FROM_EMAIL", "reservas@detallado.cl")
	t.Setenv("SENDGRID_FROM_NAME", "")
	t.Setenv("SENDGRID_REPLY_TO_EMAIL", "contacto@detallado.cl")

	cfg, err := mailSettingsFromEnv()
	require.NoError(t, err)
	require.Equal(t, "Detallado", cfg.fromName, "sender name falls back to the brand")
	require.Equal(t, "contacto@detallado.cl", cfg.replyTo)
}

func TestMailSettingsRequireKeyAndSender(t *testing.T) {
	t.Setenv("SENDGRID_API_KEY", "")
	_, err := mailSettingsFromEnv()
	require.Error(t, err)

	t.Setenv("SENDGRID_API_KEY", "sg-key")
	t.Setenv("SENDGRID_FROM_EMAIL", "")
	_, err = mailSettingsFromEnv()
	require.Error(t, err)
}

func TestSendEmailWithoutConfigFails(t *testing.T) {
	t.Setenv("SENDGRID_API_KEY", "")
	err := SendEmailWithSendGrid("juan@test.com", "Juan", "Asunto", "cuerpo", "")
	require.Error(t, err)
}

func TestSendSMSWithoutConfigFails(t *testing.T) {
	t.Setenv("TWILIO_ACCOUNT_SID", "")
	require.Error(t, SendSMS("+56912345678", "hola"))
}
