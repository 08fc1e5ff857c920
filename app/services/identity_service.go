package services

import (
	"errors"
	"fmt"

	"hadarblog/app/models"
	"hadarblog/app/repositories"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// dummyDigest is compared against when a login names an unknown email, so
// the unknown-email and wrong-password paths cost the same.
var dummyDigest, _ = bcrypt.GenerateFromPassword([]byte("hadarblog.dummy"), bcrypt.DefaultCost)

// IdentityService handles registration, login and the admin bootstrap.
type IdentityService struct {
	users repositories.UserRepository
}

// NewIdentityService creates a new IdentityService
func NewIdentityService(users repositories.UserRepository) *IdentityService {
	return &IdentityService{users: users}
}

// ClassificationOf resolves a caller's classification level. An absent
// identity is a guest.
func (s *IdentityService) ClassificationOf(user *models.User) models.Level {
	if user == nil {
		return models.LevelGuest
	}
	return user.Classification
}

// Register creates a new member account with a hashed password.
func (s *IdentityService) Register(email, password, name string) (*models.User, error) {
	if len(password) < minPasswordLength {
		return nil, NewValidationError("password",
			fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}

	user := &models.User{
		Email:          email,
		Name:           name,
		Classification: models.LevelMember,
	}
	if err := asValidationError(user.Validate()); err != nil {
		return nil, err
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}
	user.Password = string(digest)

	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies a login attempt. Unknown emails and wrong passwords
// fail with the same error.
func (s *IdentityService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(email)
	if errors.Is(err, repositories.ErrNotFound) {
		bcrypt.CompareHashAndPassword(dummyDigest, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// EnsureAdmin seeds the administrator account on startup. It is idempotent:
// an existing admin is left untouched, and a concurrent seed losing the
// uniqueness race counts as success. The configured email belonging to a
// non-admin account is a startup error, never an overwrite.
func (s *IdentityService) EnsureAdmin(email, password, name string) error {
	if email == "" || password == "" {
		return errors.New("admin email and password must be configured")
	}

	existing, err := s.users.GetByEmail(email)
	switch {
	case err == nil:
		if existing.IsAdmin() {
			return nil
		}
		return fmt.Errorf("admin email %q is taken by a non-admin account", email)
	case errors.Is(err, repositories.ErrNotFound):
		// fall through to create
	default:
		return err
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %v", err)
	}

	admin := &models.User{
		Email:          email,
		Password:       string(digest),
		Name:           name,
		Classification: models.LevelAdmin,
	}
	err = s.users.Create(admin)
	if errors.Is(err, repositories.ErrDuplicateEmail) {
		// Lost the race to another seeder; the admin exists.
		return nil
	}
	return err
}
