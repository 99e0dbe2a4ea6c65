package service

import (
	"database/sql"
	"testing"
	"time"

	"detallado/internal/auth"
	"detallado/internal/db"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubUserRepo struct {
	byEmail map[string]*db.User
	byID    map[int]*db.User
	byToken map[string]*db.User
	nextID  int

	lastCreatedPassword string
	updatedPasswords    map[int]string
	resetTokens         map[string]string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byEmail:          map[string]*db.User{},
		byID:             map[int]*db.User{},
		byToken:          map[string]*db.User{},
		updatedPasswords: map[int]string{},
		resetTokens:      map[string]string{},
		nextID:           1,
	}
}

func (m *stubUserRepo) GetByEmail(email string) (*db.User, error) {
	return m.byEmail[email], nil
}

func (m *stubUserRepo) GetByID(id int) (*db.User, error) {
	return m.byID[id], nil
}

func (m *stubUserRepo) Create(name, email, phone, password, language string) (*db.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	u := &db.User{
		ID:           m.nextID,
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Language:     language,
		CreatedAt:    time.Now(),
	}
	if phone != "" {
		u.Phone = sql.NullString{String: phone, Valid: true}
	}
	m.nextID++
	m.byEmail[email] = u
	m.byID[u.ID] = u
	m.lastCreatedPassword = password
	return u, nil
}

func (m *stubUserRepo) SetResetToken(email, token string, expiresAt time.Time) error {
	user, ok := m.byEmail[email]
	if !ok {
		return sql.ErrNoRows
	}
	m.byToken[token] = user
	m.resetTokens[email] = token
	return nil
}

func (m *stubUserRepo) GetByResetToken(token string) (*db.User, error) {
	return m.byToken[token], nil
}

func (m *stubUserRepo) UpdatePassword(userID int, password string) error {
	m.updatedPasswords[userID] = password
	return nil
}

func (m *stubUserRepo) DeleteExpiredResetTokens(before time.Time) (int64, error) {
	return 0, nil
}

func newTestAuthService(t *testing.T) (*AuthService, *stubUserRepo) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	repo := newStubUserRepo()
	return NewAuthService(repo, NewSenderService()), repo
}

func TestSignUpAndSignIn(t *testing.T) {
	svc, _ := newTestAuthService(t)

	user, token, err := svc.SignUp("Juan Pérez", "juan@test.com", "+56912345678", "supersecreta", "es")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, "juan@test.com", user.Email)
	require.Equal(t, "es", user.Language)

	claims, err := auth.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)

	signedIn, token2, err := svc.SignIn("juan@test.com", "supersecreta")
	require.NoError(t, err)
	require.NotEmpty(t, token2)
	require.Equal(t, user.ID, signedIn.ID)
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)
	_, _, err := svc.SignUp("Juan", "juan@test.com", "", "supersecreta", "es")
	require.NoError(t, err)
	_, _, err = svc.SignUp("Otro Juan", "juan@test.com", "", "otraclave123", "es")
	require.Error(t, err)
}

func TestSignInWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)
	_, _, err := svc.SignUp("Juan", "juan@test.com", "", "supersecreta", "es")
	require.NoError(t, err)

	_, _, err = svc.SignIn("juan@test.com", "incorrecta")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.SignIn("nadie@test.com", "loquesea")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProvisionAccountGeneratesRandomPassword(t *testing.T) {
	svc, repo := newTestAuthService(t)

	user, password, token, err := svc.ProvisionAccount("Juan Pérez", "juan@test.com", "", "es")
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotEmpty(t, token)
	require.Len(t, password, 12)
	// The credential must never be derived from booking data like the plate.
	require.NotEqual(t, "ABC123", password)
	require.Equal(t, password, repo.lastCreatedPassword)

	// A second provisioning run yields a different credential.
	_, password2, _, err := svc.ProvisionAccount("María", "maria@test.com", "", "es")
	require.NoError(t, err)
	require.NotEqual(t, password, password2)
}

func TestProvisionAccountRejectsExistingEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)
	_, _, err := svc.SignUp("Juan", "juan@test.com", "", "supersecreta", "es")
	require.NoError(t, err)

	_, _, _, err = svc.ProvisionAccount("Juan", "juan@test.com", "", "es")
	require.Error(t, err)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, repo := newTestAuthService(t)
	_, _, err := svc.SignUp("Juan", "juan@test.com", "", "supersecreta", "es")
	require.NoError(t, err)

	require.NoError(t, svc.RequestPasswordReset("juan@test.com"))
	token := repo.resetTokens["juan@test.com"]
	require.NotEmpty(t, token)

	require.Error(t, svc.ResetPassword(token, "corta"), "short passwords rejected")
	require.NoError(t, svc.ResetPassword(token, "nuevaclave123"))
	require.Equal(t, "nuevaclave123", repo.updatedPasswords[1])
}

func TestPasswordResetUnknownEmailSilent(t *testing.T) {
	svc, repo := newTestAuthService(t)
	require.NoError(t, svc.RequestPasswordReset("nadie@test.com"))
	require.Empty(t, repo.resetTokens)
}

func TestCurrentUserNilClaims(t *testing.T) {
	svc, _ := newTestAuthService(t)
	user, err := svc.CurrentUser(nil)
	require.NoError(t, err)
	require.Nil(t, user)
}
