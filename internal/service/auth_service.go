package service

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"detallado/internal/auth"
	"detallado/internal/db"
	"detallado/internal/entities"
	"detallado/internal/repository"
	"detallado/internal/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const resetTokenTTL = time.Hour

type AuthService struct {
	users  repository.UserRepository
	sender *SenderService
}

func NewAuthService(users repository.UserRepository, sender *SenderService) *AuthService {
	return &AuthService{users: users, sender: sender}
}

// SignUp registers a customer and returns the user plus a session token.
func (s *AuthService) SignUp(name, email, phone, password, language string) (*db.User, string, error) {
	if name == "" || email == "" || password == "" {
		return nil, "", errors.New("name, email and password are required")
	}
	existing, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", fmt.Errorf("an account with email %s already exists", email)
	}

	user, err := s.users.Create(name, email, phone, password, normalizeLanguage(language))
	if err != nil {
		return nil, "", err
	}
	token, err := auth.IssueToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	s.sender.SendWelcomeEmail(entities.WelcomeEmailData{
		ClientName:  user.Name,
		Email:       user.Email,
		CurrentYear: time.Now().Year(),
		Language:    user.Language,
	})
	return user, token, nil
}

// SignIn checks the password and returns the user plus a session token.
func (s *AuthService) SignIn(email, password string) (*db.User, string, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := auth.IssueToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// CurrentUser resolves the session claims to a stored user.
func (s *AuthService) CurrentUser(claims *auth.Claims) (*db.User, error) {
	if claims == nil {
		return nil, nil
	}
	return s.users.GetByID(claims.UserID)
}

// ProvisionAccount creates an account during booking confirmation for a
// customer who has no session. The password is random, never derived from
// booking data, and is returned so the confirmation screen can show it
// exactly once.
func (s *AuthService) ProvisionAccount(name, email, phone, language string) (*db.User, string, string, error) {
	existing, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, "", "", err
	}
	if existing != nil {
		// The email already has an account but the request carried no
		// session. The booking stays anonymous rather than being silently
		// attached to an account the caller did not prove they own.
		return nil, "", "", fmt.Errorf("account for %s already exists", email)
	}

	password, err := utils.GeneratePassword(12)
	if err != nil {
		return nil, "", "", err
	}
	lang := normalizeLanguage(language)
	user, err := s.users.Create(name, email, phone, password, lang)
	if err != nil {
		return nil, "", "", err
	}
	token, err := auth.IssueToken(user.ID, user.Email)
	if err != nil {
		return nil, "", "", err
	}

	s.sender.SendWelcomeEmail(entities.WelcomeEmailData{
		ClientName:  user.Name,
		Email:       user.Email,
		Password:    password,
		CurrentYear: time.Now().Year(),
		Language:    lang,
	})
	return user, password, token, nil
}

// RequestPasswordReset issues a reset token and mails the link. Unknown
// emails are logged but reported as success, so the endpoint does not
// leak which addresses have accounts.
func (s *AuthService) RequestPasswordReset(email string) error {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		log.Printf("Password reset requested for unknown email %s", email)
		return nil
	}

	token := uuid.NewString()
	if err := s.users.SetResetToken(email, token, time.Now().UTC().Add(resetTokenTTL)); err != nil {
		return err
	}

	base := os.Getenv("RESET_URL_BASE")
	if base == "" {
		base = "https://detallado.cl/reset-password"
	}
	s.sender.SendPasswordResetEmail(entities.PasswordResetEmailData{
		ClientName:  user.Name,
		ResetLink:   fmt.Sprintf("%s?token=%s", base, token),
		CurrentYear: time.Now().Year(),
		Language:    user.Language,
	}, user.Email)
	return nil
}

// ResetPassword consumes a reset token and stores the new password.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	if len(newPassword) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	user, err := s.users.GetByResetToken(token)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("invalid or expired reset token")
	}
	return s.users.UpdatePassword(user.ID, newPassword)
}

func normalizeLanguage(lang string) string {
	if lang == "en" {
		return "en"
	}
	return "es"
}
