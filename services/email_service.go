package services

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService sends transactional mail through Sendgrid. With no API key
// configured it just logs what it would have sent, which keeps local
// development working without credentials.
type EmailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) *EmailService {
	svc := &EmailService{
		fromEmail: fromEmail,
		fromName:  fromName,
	}
	if apiKey != "" {
		svc.client = sendgrid.NewSendClient(apiKey)
	}
	return svc
}

func (s *EmailService) Send(toEmail, toName, subject, htmlBody string) error {
	if s.client == nil {
		log.Printf("Email not configured. Would have sent to %s: %s", toEmail, subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	resp, err := s.client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func (s *EmailService) SendPasswordReset(toEmail, toName, link string) error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>A password reset was requested for your account. "+
			"Click <a href=%q>here</a> to choose a new password. "+
			"The link expires shortly; if you didn't ask for this, ignore this email.</p>",
		toName, link)
	return s.Send(toEmail, toName, "Password reset", body)
}

func (s *EmailService) SendAnnouncement(toEmail, toName, courseTitle, title, content string) error {
	body := fmt.Sprintf("<p>New announcement in %s:</p><h3>%s</h3><p>%s</p>", courseTitle, title, content)
	return s.Send(toEmail, toName, fmt.Sprintf("[%s] %s", courseTitle, title), body)
}
