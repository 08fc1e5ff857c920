package models

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

var (
	authorNamePattern = regexp.MustCompile(`^[A-Za-z\s]+$`)
	ilPhonePattern    = regexp.MustCompile(`^05[0-5,8]\d{7}$`)
)

func newValidator() *validator.Validate {
	v := validator.New()
	// Author names carry only letters and spaces.
	v.RegisterValidation("author_name", func(fl validator.FieldLevel) bool {
		return authorNamePattern.MatchString(fl.Field().String())
	})
	// Israeli mobile numbers, the only format the contact form accepts.
	v.RegisterValidation("il_phone", func(fl validator.FieldLevel) bool {
		return ilPhonePattern.MatchString(fl.Field().String())
	})
	return v
}
