package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modatienda/boutique_api/internal/models"
	"github.com/modatienda/boutique_api/internal/utils"
)

func init() {
	utils.InitJWT("test-signing-secret", time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	creds := newFakeCredentialStore()
	profiles := newFakeProfileStore()
	svc := NewAuthService(creds, profiles, &fakeAuditLog{})

	user, err := svc.Register("ana@example.com", "contrasena123", "Ana", "3001234567")
	require.NoError(t, err)

	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.NotEmpty(t, user.ID)

	// credential and profile share the same id
	cred, err := creds.GetByEmail("ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, cred)
	assert.Equal(t, user.ID, cred.ID)
	assert.NotEqual(t, "contrasena123", cred.PasswordHash)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	creds := newFakeCredentialStore()
	svc := NewAuthService(creds, newFakeProfileStore(), &fakeAuditLog{})

	_, err := svc.Register("ana@example.com", "contrasena123", "Ana", "")
	require.NoError(t, err)

	_, err = svc.Register("ana@example.com", "otra-clave", "Ana B", "")
	assert.ErrorIs(t, err, utils.ErrDuplicateEmail)
}

func TestAuthService_SignUp_ProfileFailureCompensatesCredential(t *testing.T) {
	creds := newFakeCredentialStore()
	profiles := newFakeProfileStore()
	profiles.failCreate = true
	svc := NewAuthService(creds, profiles, &fakeAuditLog{})

	_, err := svc.Register("ana@example.com", "contrasena123", "Ana", "")
	require.Error(t, err)

	// the just-created credential was deleted again
	require.Len(t, creds.deleted, 1)
	cred, err := creds.GetByEmail("ana@example.com")
	require.NoError(t, err)
	assert.Nil(t, cred)
}

func TestAuthService_SignUp_CompensationFailureLeavesOrphan(t *testing.T) {
	creds := newFakeCredentialStore()
	creds.failDelete = true
	profiles := newFakeProfileStore()
	profiles.failCreate = true
	svc := NewAuthService(creds, profiles, &fakeAuditLog{})

	_, err := svc.Register("ana@example.com", "contrasena123", "Ana", "")
	require.Error(t, err)

	// orphaned credential stays behind; login against it is rejected
	cred, err := creds.GetByEmail("ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, cred)

	_, _, err = svc.Login("ana@example.com", "contrasena123")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestAuthService_CreateAdmin(t *testing.T) {
	audit := &fakeAuditLog{}
	svc := NewAuthService(newFakeCredentialStore(), newFakeProfileStore(), audit)

	user, err := svc.CreateAdmin("jefe@example.com", "clave-segura", "Jefa", "")
	require.NoError(t, err)

	assert.Equal(t, models.RoleAdmin, user.Role)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, "user", audit.entries[0].Type)
}

func TestAuthService_Login(t *testing.T) {
	creds := newFakeCredentialStore()
	profiles := newFakeProfileStore()
	svc := NewAuthService(creds, profiles, &fakeAuditLog{})

	registered, err := svc.Register("ana@example.com", "contrasena123", "Ana", "")
	require.NoError(t, err)

	token, user, err := svc.Login("ana@example.com", "contrasena123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, registered.ID, user.ID)

	claims, err := utils.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, string(models.RoleUser), claims.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := NewAuthService(newFakeCredentialStore(), newFakeProfileStore(), &fakeAuditLog{})

	_, err := svc.Register("ana@example.com", "contrasena123", "Ana", "")
	require.NoError(t, err)

	_, _, err = svc.Login("ana@example.com", "clave-equivocada")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := NewAuthService(newFakeCredentialStore(), newFakeProfileStore(), &fakeAuditLog{})

	_, _, err := svc.Login("nadie@example.com", "lo-que-sea")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}
