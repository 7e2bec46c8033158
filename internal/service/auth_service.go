package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/modatienda/boutique_api/internal/models"
	"github.com/modatienda/boutique_api/internal/utils"
)

// CredentialStore is the identity surface: sign-in credentials only.
type CredentialStore interface {
	Create(c *models.Credential) error
	GetByEmail(email string) (*models.Credential, error)
	Delete(id string) error
}

// ProfileStore is the user profile surface.
type ProfileStore interface {
	Create(u *models.User) error
	GetByID(id string) (*models.User, error)
	ListAll() ([]models.User, error)
	ListByRole(role models.Role) ([]models.User, error)
}

// AuthService handles account creation and login. Account creation is two
// separate writes — credential first, then profile keyed by the credential
// id — with a best-effort credential delete if the profile insert fails. A
// double failure leaves an orphaned credential behind.
type AuthService struct {
	credentials CredentialStore
	profiles    ProfileStore
	audit       AuditLog
}

// NewAuthService constructs an AuthService.
func NewAuthService(credentials CredentialStore, profiles ProfileStore, audit AuditLog) *AuthService {
	return &AuthService{credentials: credentials, profiles: profiles, audit: audit}
}

// Register creates a storefront customer account.
func (s *AuthService) Register(email, password, name, phone string) (*models.User, error) {
	return s.signUp(email, password, name, phone, models.RoleUser)
}

// CreateAdmin creates an admin account. Admin-only operation.
func (s *AuthService) CreateAdmin(email, password, name, phone string) (*models.User, error) {
	user, err := s.signUp(email, password, name, phone, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if err := s.audit.Insert("user", fmt.Sprintf("admin created: %s", user.Email)); err != nil {
		log.Warn().Err(err).Str("email", user.Email).Msg("audit log write failed")
	}
	return user, nil
}

func (s *AuthService) signUp(email, password, name, phone string, role models.Role) (*models.User, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)

	existing, err := s.credentials.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	cred := &models.Credential{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.credentials.Create(cred); err != nil {
		return nil, err
	}

	user := &models.User{
		ID:    cred.ID,
		Email: email,
		Name:  name,
		Phone: phone,
		Role:  role,
	}
	if err := s.profiles.Create(user); err != nil {
		// Compensate by deleting the credential just created. Best effort:
		// if this also fails the credential is orphaned.
		if delErr := s.credentials.Delete(cred.ID); delErr != nil {
			log.Warn().Err(delErr).Str("credential_id", cred.ID).Msg("orphaned credential: compensation delete failed")
		}
		return nil, err
	}

	return user, nil
}

// Login verifies the credential and issues a session token carrying the
// profile's role.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	email = strings.TrimSpace(email)

	cred, err := s.credentials.GetByEmail(email)
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("credential lookup failed")
		return "", nil, utils.ErrInvalidCredentials
	}
	if cred == nil {
		return "", nil, utils.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		log.Debug().Str("email", email).Msg("password verification failed")
		return "", nil, utils.ErrInvalidCredentials
	}

	user, err := s.profiles.GetByID(cred.ID)
	if err != nil {
		// Credential without a profile: an orphan from a failed creation.
		log.Warn().Str("credential_id", cred.ID).Msg("login with orphaned credential rejected")
		return "", nil, utils.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, string(user.Role))
	if err != nil {
		return "", nil, err
	}

	log.Info().Str("email", email).Str("role", string(user.Role)).Msg("login successful")
	return token, user, nil
}
