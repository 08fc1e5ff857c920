package models

// Validate checks if the user meets all validation requirements
func (u *User) Validate() error {
	return validate.Struct(u)
}

// IsAdmin reports whether the user holds the admin classification.
func (u *User) IsAdmin() bool {
	return u.Classification >= LevelAdmin
}
