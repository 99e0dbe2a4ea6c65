package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"time"

	"detallado/internal/entities"
	"detallado/internal/schedule"
)

// SenderService builds and fires the transactional emails and SMS. Every
// send is best-effort: failures are logged and never surface to the
// booking flow.
type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

func (s *SenderService) SendBookingEmail(data entities.BookingEmailData, toEmail string) {
	var emailSubject, plainTextBody string
	switch data.Language {
	case "en":
		emailSubject = fmt.Sprintf("Your Detallado booking is confirmed - Code: %s", data.BookingCode)
		plainTextBody = fmt.Sprintf(
			"Hello %s,\n\nYour booking at Detallado is confirmed.\n\n"+
				"Booking details:\n"+
				"Code: %s\n"+
				"Service: %s\n"+
				"Vehicle: %s (Plate: %s)\n"+
				"Date: %s at %s\n"+
				"Total: $%d CLP\n\n"+
				"Thank you for choosing Detallado.\n\n"+
				"Detallado. All rights reserved.",
			data.ClientName, data.BookingCode, data.ServiceName, data.VehicleType, data.VehiclePlate,
			data.DateFormatted, data.TimeFormatted, data.TotalPrice,
		)
	default:
		emailSubject = fmt.Sprintf("Tu reserva en Detallado está confirmada - Código: %s", data.BookingCode)
		plainTextBody = fmt.Sprintf(
			"Hola %s,\n\nTu reserva en Detallado está confirmada.\n\n"+
				"Detalles de la reserva:\n"+
				"Código: %s\n"+
				"Servicio: %s\n"+
				"Vehículo: %s (Patente: %s)\n"+
				"Fecha: %s a las %s\n"+
				"Total: $%d CLP\n\n"+
				"Gracias por elegir Detallado.\n\n"+
				"Detallado. Todos los derechos reservados.",
			data.ClientName, data.BookingCode, data.ServiceName, data.VehicleType, data.VehiclePlate,
			data.DateFormatted, data.TimeFormatted, data.TotalPrice,
		)
	}

	htmlBody := renderTemplate("booking_email.html", data)

	go func(toEmail, toName, subject, plainBody, htmlBodyContent string) {
		if err := SendEmailWithSendGrid(toEmail, toName, subject, plainBody, htmlBodyContent); err != nil {
			log.Printf("ALERTA (asíncrono): Falló envío de correo para reserva %s: %v", data.BookingCode, err)
		}
	}(toEmail, data.ClientName, emailSubject, plainTextBody, htmlBody)
}

func (s *SenderService) SendWelcomeEmail(data entities.WelcomeEmailData) {
	var emailSubject, plainTextBody string
	switch data.Language {
	case "en":
		emailSubject = "Welcome to Detallado"
		plainTextBody = fmt.Sprintf("Hello %s,\n\nYour Detallado account is ready. Sign in with %s to manage your vehicles and bookings.\n\nDetallado.",
			data.ClientName, data.Email)
		if data.Password != "" {
			plainTextBody = fmt.Sprintf("Hello %s,\n\nWe created an account for you while confirming your booking.\n\nEmail: %s\nPassword: %s\n\nPlease change the password after your first sign-in.\n\nDetallado.",
				data.ClientName, data.Email, data.Password)
		}
	default:
		emailSubject = "Bienvenido a Detallado"
		plainTextBody = fmt.Sprintf("Hola %s,\n\nTu cuenta en Detallado está lista. Ingresa con %s para administrar tus vehículos y reservas.\n\nDetallado.",
			data.ClientName, data.Email)
		if data.Password != "" {
			plainTextBody = fmt.Sprintf("Hola %s,\n\nCreamos una cuenta para ti al confirmar tu reserva.\n\nCorreo: %s\nContraseña: %s\n\nCambia la contraseña después de tu primer ingreso.\n\nDetallado.",
				data.ClientName, data.Email, data.Password)
		}
	}

	htmlBody := renderTemplate("welcome_email.html", data)

	go func(toEmail, toName, subject, plainBody, htmlBodyContent string) {
		if err := SendEmailWithSendGrid(toEmail, toName, subject, plainBody, htmlBodyContent); err != nil {
			log.Printf("ALERTA (asíncrono): Falló envío de correo de bienvenida a %s: %v", toEmail, err)
		}
	}(data.Email, data.ClientName, emailSubject, plainTextBody, htmlBody)
}

func (s *SenderService) SendPasswordResetEmail(data entities.PasswordResetEmailData, toEmail string) {
	var emailSubject, plainTextBody string
	switch data.Language {
	case "en":
		emailSubject = "Reset your Detallado password"
		plainTextBody = fmt.Sprintf("Hello %s,\n\nUse the link below to reset your password. It expires in 1 hour.\n\n%s\n\nIf you did not request this, ignore this email.\n\nDetallado.",
			data.ClientName, data.ResetLink)
	default:
		emailSubject = "Restablece tu contraseña de Detallado"
		plainTextBody = fmt.Sprintf("Hola %s,\n\nUsa el siguiente enlace para restablecer tu contraseña. Expira en 1 hora.\n\n%s\n\nSi no solicitaste este cambio, ignora este correo.\n\nDetallado.",
			data.ClientName, data.ResetLink)
	}

	htmlBody := renderTemplate("password_reset_email.html", data)

	go func(toEmail, toName, subject, plainBody, htmlBodyContent string) {
		if err := SendEmailWithSendGrid(toEmail, toName, subject, plainBody, htmlBodyContent); err != nil {
			log.Printf("ALERTA (asíncrono): Falló envío de correo de restablecimiento a %s: %v", toEmail, err)
		}
	}(toEmail, data.ClientName, emailSubject, plainTextBody, htmlBody)
}

// SendBookingSMS sends a short confirmation when the customer left a phone
// number. Best-effort, same as the emails.
func (s *SenderService) SendBookingSMS(phone, bookingCode, date, slot, language string) {
	if phone == "" {
		return
	}
	var smsMessage string
	switch language {
	case "en":
		smsMessage = fmt.Sprintf("Detallado: Your booking %s is confirmed!\nDate: %s at %s.\nMore details in your email.",
			bookingCode, date, slot)
	default:
		smsMessage = fmt.Sprintf("Detallado: ¡Tu reserva %s está confirmada!\nFecha: %s a las %s.\nMás detalles en tu correo.",
			bookingCode, date, slot)
	}

	go func(to, body, code string) {
		if err := SendSMS(to, body); err != nil {
			log.Printf("ALERTA: La reserva %s se creó, pero falló el envío del SMS a %s: %v", code, to, err)
		}
	}(phone, smsMessage, bookingCode)
}

// FormatBookingDate renders an ISO date for the email body in the shop's
// timezone-agnostic long form.
func FormatBookingDate(isoDate string) string {
	day, err := time.ParseInLocation(schedule.DateLayout, isoDate, schedule.BusinessLocation())
	if err != nil {
		return isoDate
	}
	return day.Format("02 Jan 2006")
}

func renderTemplate(name string, data interface{}) string {
	tmplPath := filepath.Join("internal", "templates", name)
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("ALERTA: Error al parsear la plantilla de correo HTML (%s): %v", tmplPath, err)
		return ""
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		log.Printf("ALERTA: Error al ejecutar la plantilla de correo HTML (%s): %v", tmplPath, err)
		return ""
	}
	return buf.String()
}
