package service

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// mailSettings is read from the environment on every send so the shop can
// rotate the SendGrid key without a restart.
type mailSettings struct {
	apiKey    string
	fromEmail string
	fromName  string
	replyTo   string
}

func mailSettingsFromEnv() (mailSettings, error) {
	cfg := mailSettings{
		apiKey:    os.Getenv("SENDGRID_API_KEY"),
		fromEmail: os.Getenv("SENDGRID_FROM_EMAIL"),
		fromName:  os.Getenv("SENDGRID_FROM_NAME"),
		replyTo:   os.Getenv("SENDGRID_REPLY_TO_EMAIL"),
	}
	if cfg.apiKey == "" {
		return cfg, fmt.Errorf("SENDGRID_API_KEY no está configurada")
	}
	if cfg.fromEmail == "" {
		return cfg, fmt.Errorf("SENDGRID_FROM_EMAIL no está configurada")
	}
	if cfg.fromName == "" {
		cfg.fromName = "Detallado"
	}
	return cfg, nil
}

func SendEmailWithSendGrid(toEmailAddress, toName, subject, plainTextContent, htmlContent string) error {
	cfg, err := mailSettingsFromEnv()
	if err != nil {
		log.Printf("ADVERTENCIA: %v. El correo no se enviará.", err)
		return err
	}

	from := mail.NewEmail(cfg.fromName, cfg.fromEmail)
	to := mail.NewEmail(toName, toEmailAddress)
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)
	if cfg.replyTo != "" {
		// Customer replies land in the shop inbox, not the transactional
		// sender address.
		message.SetReplyTo(mail.NewEmail(cfg.fromName, cfg.replyTo))
	}

	response, err := sendgrid.NewSendClient(cfg.apiKey).Send(message)
	if err != nil {
		log.Printf("Error al intentar enviar correo vía SendGrid a %s: %v", toEmailAddress, err)
		return fmt.Errorf("falló el envío del correo a través de SendGrid: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		log.Printf("Correo enviado exitosamente a %s (Asunto: %s). Estado: %d", toEmailAddress, subject, response.StatusCode)
		return nil
	}

	log.Printf("Error al enviar correo a %s vía SendGrid. Estado: %d, Cuerpo: %s",
		toEmailAddress, response.StatusCode, response.Body)
	return fmt.Errorf("SendGrid devolvió un estado no exitoso %d: %s", response.StatusCode, response.Body)
}

func SendSMS(toNumber string, messageBody string) error {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	fromNumber := os.Getenv("TWILIO_FROM_NUMBER")

	if accountSid == "" || authToken == "" || fromNumber == "" {
		log.Println("ADVERTENCIA: Las credenciales de Twilio no están configuradas. El SMS no se enviará.")
		return fmt.Errorf("credenciales de Twilio no configuradas completamente")
	}

	// Chilean mobile numbers must arrive as +569XXXXXXXX.
	if !strings.HasPrefix(toNumber, "+") {
		log.Printf("ADVERTENCIA: El número de destino '%s' no está en formato E.164. El SMS podría fallar.", toNumber)
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   accountSid,
		Password:   authToken,
		AccountSid: accountSid,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(fromNumber)
	params.SetBody(messageBody)

	resp, err := client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Error al enviar SMS a %s vía Twilio: %v", toNumber, err)
		return fmt.Errorf("falló el envío del SMS: %w", err)
	}

	if resp != nil && resp.Sid != nil {
		log.Printf("SMS enviado exitosamente a %s. SID del Mensaje: %s", toNumber, *resp.Sid)
	}
	return nil
}
