package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"strconv"

	gomail "gopkg.in/gomail.v2"

	"github.com/wandergo/tripmarket/logger"
	"github.com/wandergo/tripmarket/models/booking_models"
)

const (
	bookingConfirmationTemplate = "templates/email/booking_confirmation.html"
	bookingCancelledTemplate    = "templates/email/booking_cancelled.html"
)

var templateFS fs.FS

// InitTemplates hands the embedded email templates to this package.
func InitTemplates(fsys fs.FS) {
	templateFS = fsys
}

func sendEmail(toEmail, subject, templatePath string, data interface{}) error {
	host := os.Getenv("SMTP_HOST")
	from := os.Getenv("FROM_EMAIL")
	if host == "" || from == "" {
		logger.InfoLogger.Infof("SMTP not configured, skipping email %q to %s", subject, toEmail)
		return nil
	}

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	t, err := template.ParseFS(templateFS, templatePath)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to parse email template %s: %v", templatePath, err)
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		logger.ErrorLogger.Errorf("Failed to execute email template %s: %v", templatePath, err)
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	mailer := gomail.NewMessage()
	mailer.SetHeader("From", from)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body.String())

	dialer := gomail.NewDialer(host, port, os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASS"))
	if err := dialer.DialAndSend(mailer); err != nil {
		logger.ErrorLogger.Errorf("Failed to send email to %s: %v", toEmail, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.InfoLogger.Infof("Email %q sent to %s", subject, toEmail)
	return nil
}

// SendBookingConfirmation emails the traveler after a successful booking.
// Best effort: callers run it in a goroutine and a failure only logs.
func SendBookingConfirmation(toEmail string, booking *booking_models.Booking) {
	if toEmail == "" {
		return
	}
	data := map[string]interface{}{
		"Booking": booking,
		"Trip":    booking.Trip,
	}
	_ = sendEmail(toEmail, "Your trip is booked!", bookingConfirmationTemplate, data)
}

// SendBookingCancelled emails the traveler after a cancellation, including
// the refund amount recorded on the booking.
func SendBookingCancelled(toEmail string, booking *booking_models.Booking) {
	if toEmail == "" {
		return
	}
	var refund float64
	if booking.RefundAmount != nil {
		refund = *booking.RefundAmount
	}
	data := map[string]interface{}{
		"Booking": booking,
		"Trip":    booking.Trip,
		"Refund":  refund,
	}
	_ = sendEmail(toEmail, "Your booking was cancelled", bookingCancelledTemplate, data)
}
