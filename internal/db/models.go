package db

import (
	"database/sql"
	"time"
)

type User struct {
	ID           int
	Name         string
	Email        string
	Phone        sql.NullString
	PasswordHash string
	Language     string
	CreatedAt    time.Time
}

type Vehicle struct {
	ID          int
	UserID      int
	Plate       string
	VehicleType string
	Brand       sql.NullString
	Model       sql.NullString
	Nickname    sql.NullString
	IsPrimary   bool
	CreatedAt   time.Time
}

type Booking struct {
	ID           int
	Code         string
	UserID       sql.NullInt64
	VehiclePlate string
	VehicleType  string
	ServiceID    string
	ClientName   string
	ClientEmail  string
	ClientPhone  sql.NullString
	BookingDate  string // YYYY-MM-DD
	BookingTime  string // HH:MM
	TotalPrice   int
	Status       string
	Language     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Review struct {
	ID        int
	UserID    int
	UserName  string
	Rating    int
	Comment   string
	Language  string
	Approved  bool
	CreatedAt time.Time
}
