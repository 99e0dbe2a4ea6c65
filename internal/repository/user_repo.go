package repository

import (
	"database/sql"
	"errors"
	"time"

	"detallado/internal/db"

	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	GetByEmail(email string) (*db.User, error)
	GetByID(id int) (*db.User, error)
	Create(name, email, phone, password, language string) (*db.User, error)
	SetResetToken(email, token string, expiresAt time.Time) error
	GetByResetToken(token string) (*db.User, error)
	UpdatePassword(userID int, password string) error
	DeleteExpiredResetTokens(before time.Time) (int64, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(database *sql.DB) UserRepository {
	return &userRepository{db: database}
}

func (r *userRepository) GetByEmail(email string) (*db.User, error) {
	var u db.User
	err := r.db.QueryRow(
		`SELECT id, name, email, phone, password_hash, language, created_at FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Language, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(id int) (*db.User, error) {
	var u db.User
	err := r.db.QueryRow(
		`SELECT id, name, email, phone, password_hash, language, created_at FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Language, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Create(name, email, phone, password, language string) (*db.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	var u db.User
	u.Name = name
	u.Email = email
	u.Language = language
	if phone != "" {
		u.Phone = sql.NullString{String: phone, Valid: true}
	}
	u.PasswordHash = string(hashedPassword)
	err = r.db.QueryRow(
		`INSERT INTO users (name, email, phone, password_hash, language, created_at)
		 VALUES ($1, $2, $3, $4, $5, NOW())
		 RETURNING id, created_at`,
		u.Name, u.Email, u.Phone, u.PasswordHash, u.Language).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) SetResetToken(email, token string, expiresAt time.Time) error {
	result, err := r.db.Exec(
		`UPDATE users SET reset_token = $1, reset_token_expires_at = $2 WHERE email = $3`,
		token, expiresAt, email)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByResetToken(token string) (*db.User, error) {
	var u db.User
	err := r.db.QueryRow(
		`SELECT id, name, email, phone, password_hash, language, created_at
		 FROM users
		 WHERE reset_token = $1 AND reset_token_expires_at > NOW()`, token).
		Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Language, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) UpdatePassword(userID int, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(
		`UPDATE users SET password_hash = $1, reset_token = NULL, reset_token_expires_at = NULL WHERE id = $2`,
		string(hashedPassword), userID)
	return err
}

func (r *userRepository) DeleteExpiredResetTokens(before time.Time) (int64, error) {
	result, err := r.db.Exec(
		`UPDATE users SET reset_token = NULL, reset_token_expires_at = NULL WHERE reset_token_expires_at < $1`,
		before)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
