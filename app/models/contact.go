package models

// ContactMessage carries a visitor's contact-form submission.
type ContactMessage struct {
	Name    string `json:"name" validate:"required,min=2,max=50"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,il_phone"`
	Message string `json:"message" validate:"required,min=5"`
}

// Validate checks if the message meets all validation requirements
func (m *ContactMessage) Validate() error {
	return validate.Struct(m)
}
