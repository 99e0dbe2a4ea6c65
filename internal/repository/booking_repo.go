package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"detallado/internal/db"
	"detallado/internal/entities"

	"github.com/lib/pq"
)

// ErrSlotTaken is returned when the partial unique index on
// (booking_date, booking_time) rejects an insert: another customer won the
// slot first. The client-side availability map is only advisory.
var ErrSlotTaken = errors.New("booking slot already taken")

type BookingRepository interface {
	CreateBooking(b *db.Booking) error
	GetBookedSlots(fromDate, toDate string) ([]entities.BookedSlot, error)
	GetBookedSlotsForUser(fromDate, toDate string, userID int) ([]entities.BookedSlot, error)
	GetBookingByCode(code, email string) (*db.Booking, error)
	ListBookingsForUser(userID int) ([]db.Booking, error)
	CancelBooking(code string, userID int) error
}

type bookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) BookingRepository {
	return &bookingRepository{DB: database}
}

func (r *bookingRepository) CreateBooking(b *db.Booking) error {
	query := `
		INSERT INTO bookings
		(code, user_id, vehicle_plate, vehicle_type, service_id, client_name, client_email, client_phone, booking_date, booking_time, total_price, status, language, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at`
	err := r.DB.QueryRow(query,
		b.Code,
		b.UserID,
		b.VehiclePlate,
		b.VehicleType,
		b.ServiceID,
		b.ClientName,
		b.ClientEmail,
		b.ClientPhone,
		b.BookingDate,
		b.BookingTime,
		b.TotalPrice,
		b.Status,
		b.Language,
		b.CreatedAt,
		b.UpdatedAt,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrSlotTaken
		}
		return fmt.Errorf("error inserting booking: %w", err)
	}
	return nil
}

// GetBookedSlots aggregates the (date, time) pairs of every non-cancelled
// booking in the range, across all customers. This is the privileged query
// the calendar needs: a day is only fully booked when ALL customers'
// bookings are counted.
func (r *bookingRepository) GetBookedSlots(fromDate, toDate string) ([]entities.BookedSlot, error) {
	query := `
		SELECT booking_date::text, booking_time
		FROM bookings
		WHERE booking_date BETWEEN $1 AND $2
		  AND status <> 'cancelled'
		ORDER BY booking_date, booking_time`
	rows, err := r.DB.Query(query, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("error querying booked slots: %w", err)
	}
	defer rows.Close()

	var slots []entities.BookedSlot
	for rows.Next() {
		var s entities.BookedSlot
		if err := rows.Scan(&s.Date, &s.Time); err != nil {
			return nil, fmt.Errorf("error scanning booked slot: %w", err)
		}
		slots = append(slots, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating booked slots: %w", err)
	}
	return slots, nil
}

// GetBookedSlotsForUser is the fallback when the aggregate query fails.
// It only sees the given user's rows, so it may under-report load.
func (r *bookingRepository) GetBookedSlotsForUser(fromDate, toDate string, userID int) ([]entities.BookedSlot, error) {
	query := `
		SELECT booking_date::text, booking_time
		FROM bookings
		WHERE booking_date BETWEEN $1 AND $2
		  AND status <> 'cancelled'
		  AND user_id = $3
		ORDER BY booking_date, booking_time`
	rows, err := r.DB.Query(query, fromDate, toDate, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying user booked slots: %w", err)
	}
	defer rows.Close()

	var slots []entities.BookedSlot
	for rows.Next() {
		var s entities.BookedSlot
		if err := rows.Scan(&s.Date, &s.Time); err != nil {
			return nil, fmt.Errorf("error scanning user booked slot: %w", err)
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

func (r *bookingRepository) GetBookingByCode(code, email string) (*db.Booking, error) {
	var b db.Booking
	query := `
		SELECT id, code, user_id, vehicle_plate, vehicle_type, service_id, client_name, client_email, client_phone, booking_date::text, booking_time, total_price, status, language, created_at, updated_at
		FROM bookings
		WHERE code = $1 AND client_email = $2`
	err := r.DB.QueryRow(query, code, email).Scan(
		&b.ID, &b.Code, &b.UserID, &b.VehiclePlate, &b.VehicleType, &b.ServiceID,
		&b.ClientName, &b.ClientEmail, &b.ClientPhone, &b.BookingDate, &b.BookingTime,
		&b.TotalPrice, &b.Status, &b.Language, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking with code '%s' and email '%s' not found: %w", code, email, err)
		}
		return nil, fmt.Errorf("error querying booking: %w", err)
	}
	return &b, nil
}

func (r *bookingRepository) ListBookingsForUser(userID int) ([]db.Booking, error) {
	query := `
		SELECT id, code, user_id, vehicle_plate, vehicle_type, service_id, client_name, client_email, client_phone, booking_date::text, booking_time, total_price, status, language, created_at, updated_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY booking_date DESC, booking_time DESC`
	rows, err := r.DB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	defer rows.Close()

	var bookings []db.Booking
	for rows.Next() {
		var b db.Booking
		err := rows.Scan(
			&b.ID, &b.Code, &b.UserID, &b.VehiclePlate, &b.VehicleType, &b.ServiceID,
			&b.ClientName, &b.ClientEmail, &b.ClientPhone, &b.BookingDate, &b.BookingTime,
			&b.TotalPrice, &b.Status, &b.Language, &b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// CancelBooking flips the status for a booking owned by the user.
func (r *bookingRepository) CancelBooking(code string, userID int) error {
	query := `UPDATE bookings SET status = 'cancelled', updated_at = NOW() WHERE code = $1 AND user_id = $2 AND status <> 'cancelled'`
	result, err := r.DB.Exec(query, code, userID)
	if err != nil {
		log.Printf("Error cancelling booking %s: %v", code, err)
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
