package services

import (
	"fmt"
	"log"

	"hadarblog/app/mailer"
	"hadarblog/app/models"
)

const contactSubject = "New Form Submission - Hadar's Blog"

// ContactService turns contact-form submissions into outbound mail.
type ContactService struct {
	mailer mailer.Mailer
	to     string
}

// NewContactService creates a new ContactService
func NewContactService(m mailer.Mailer, to string) *ContactService {
	return &ContactService{mailer: m, to: to}
}

// Submit validates and sends a contact message. Transport failures are
// logged and reported as ErrSendFailed; they never crash a request.
func (s *ContactService) Submit(msg *models.ContactMessage) error {
	if err := asValidationError(msg.Validate()); err != nil {
		return err
	}

	body := fmt.Sprintf("name: %s\nemail: %s\nphone: %s\nmessage: %s",
		msg.Name, msg.Email, msg.Phone, msg.Message)

	if err := s.mailer.Send(s.to, contactSubject, body); err != nil {
		log.Printf("contact mail delivery failed: %v", err)
		return ErrSendFailed
	}
	return nil
}
