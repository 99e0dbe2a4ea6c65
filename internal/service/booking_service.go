package service

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"detallado/internal/auth"
	"detallado/internal/catalog"
	"detallado/internal/db"
	"detallado/internal/entities"
	httperrors "detallado/internal/errors"
	"detallado/internal/repository"
	"detallado/internal/schedule"
	"detallado/internal/wizard"

	"github.com/google/uuid"
)

const (
	statusConfirmed = "confirmed"
	statusFinished  = "finished"
	statusCancelled = "cancelled"
)

type BookingService struct {
	Repo        repository.BookingRepository
	authService *AuthService
	sender      *SenderService
}

func NewBookingService(repo repository.BookingRepository, authService *AuthService, sender *SenderService) *BookingService {
	return &BookingService{Repo: repo,
		authService: authService,
		sender:      sender}
}

// MonthAvailability builds the calendar for the month containing anchor.
// The privileged aggregate query counts every customer's bookings; when it
// fails the per-user fallback runs instead, which may under-report, and
// when both fail the calendar shows every slot open. Either degraded path
// is flagged as partial.
func (s *BookingService) MonthAvailability(year int, month time.Month, userID int) (*entities.AvailabilityResponse, error) {
	loc := schedule.BusinessLocation()
	anchor := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	from, to := schedule.MonthRange(anchor)

	partial := false
	slots, err := s.Repo.GetBookedSlots(from, to)
	if err != nil {
		log.Printf("Error from GetBookedSlots, trying per-user fallback: %v", err)
		partial = true
		if userID > 0 {
			slots, err = s.Repo.GetBookedSlotsForUser(from, to, userID)
		}
		if err != nil {
			// Fail open: the calendar shows no bookings as taken and the
			// insert-time unique constraint remains the arbiter.
			log.Printf("Error from availability fallback, calendar fails open: %v", err)
			slots = nil
		}
	}

	taken := make(schedule.AvailabilityMap)
	for _, slot := range slots {
		taken.Take(slot.Date, slot.Time)
	}

	now := time.Now().In(loc)
	response := &entities.AvailabilityResponse{From: from, To: to, Partial: partial}
	for day := anchor; day.Month() == month; day = day.AddDate(0, 0, 1) {
		date := day.Format(schedule.DateLayout)
		dayAvail := entities.DayAvailability{
			Date:     date,
			Disabled: schedule.DayDisabled(date, now, taken),
		}
		if !dayAvail.Disabled {
			dayAvail.OpenSlots = schedule.OpenSlots(date, taken)
			for _, slot := range schedule.Slots {
				if taken.Taken(date, slot) {
					dayAvail.TakenSlots = append(dayAvail.TakenSlots, slot)
				}
			}
		}
		response.Days = append(response.Days, dayAvail)
	}
	return response, nil
}

// CreateBooking runs the confirmation algorithm: validate the draft,
// auto-provision an account when there is no session, insert the booking
// with the computed total, then fire the confirmation email and SMS.
// Provisioning failures are logged and leave the booking anonymous; the
// insert failing is terminal.
func (s *BookingService) CreateBooking(req entities.BookingRequest, claims *auth.Claims) (*entities.ConfirmationResponse, error) {
	if err := validateBookingRequest(&req); err != nil {
		return nil, err
	}

	totalPrice, err := catalog.TotalPrice(req.ServiceID, req.VehicleTypeID)
	if err != nil {
		return nil, httperrors.ErrBadRequest(err.Error())
	}

	resp := &entities.ConfirmationResponse{}
	var userID sql.NullInt64
	if claims != nil {
		userID = sql.NullInt64{Int64: int64(claims.UserID), Valid: true}
	} else {
		user, password, token, provErr := s.authService.ProvisionAccount(
			req.ClientName, req.ClientEmail, req.ClientPhone, req.Language)
		if provErr != nil {
			log.Printf("Account auto-provisioning failed for %s, booking proceeds anonymously: %v", req.ClientEmail, provErr)
		} else {
			userID = sql.NullInt64{Int64: int64(user.ID), Valid: true}
			resp.NewAccount = true
			resp.Credentials = &entities.Credentials{Email: user.Email, Password: password}
			resp.Token = token
		}
	}

	now := time.Now().UTC()
	booking := &db.Booking{
		Code:         newBookingCode(),
		UserID:       userID,
		VehiclePlate: req.VehiclePlate,
		VehicleType:  req.VehicleTypeID,
		ServiceID:    req.ServiceID,
		ClientName:   req.ClientName,
		ClientEmail:  req.ClientEmail,
		BookingDate:  req.BookingDate,
		BookingTime:  req.BookingTime,
		TotalPrice:   totalPrice,
		Status:       statusConfirmed,
		Language:     normalizeLanguage(req.Language),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.ClientPhone != "" {
		booking.ClientPhone = sql.NullString{String: req.ClientPhone, Valid: true}
	}

	if err := s.Repo.CreateBooking(booking); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, httperrors.ErrConflict("el horario seleccionado ya fue reservado")
		}
		log.Printf("Error creating booking in repository: %v", err)
		return nil, err
	}

	svc, _ := catalog.ServiceByID(booking.ServiceID)
	vt, _ := catalog.VehicleTypeByID(booking.VehicleType)
	s.sender.SendBookingEmail(entities.BookingEmailData{
		ClientName:    booking.ClientName,
		BookingCode:   booking.Code,
		ServiceName:   svc.Name,
		VehicleType:   vt.Name,
		VehiclePlate:  booking.VehiclePlate,
		DateFormatted: FormatBookingDate(booking.BookingDate),
		TimeFormatted: booking.BookingTime,
		TotalPrice:    booking.TotalPrice,
		CurrentYear:   time.Now().Year(),
		Language:      booking.Language,
	}, booking.ClientEmail)
	s.sender.SendBookingSMS(req.ClientPhone, booking.Code, booking.BookingDate, booking.BookingTime, booking.Language)

	resp.Booking = toBookingResponse(booking)
	resp.Booking.ServiceName = svc.Name
	resp.Message = "Reserva confirmada."
	return resp, nil
}

func (s *BookingService) GetBookingByCode(code, email string) (*entities.BookingResponse, error) {
	booking, err := s.Repo.GetBookingByCode(code, email)
	if err != nil {
		return nil, err
	}
	out := toBookingResponse(booking)
	if svc, err := catalog.ServiceByID(booking.ServiceID); err == nil {
		out.ServiceName = svc.Name
	}
	return &out, nil
}

func (s *BookingService) ListBookingsForUser(userID int) ([]entities.BookingResponse, error) {
	bookings, err := s.Repo.ListBookingsForUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.BookingResponse, 0, len(bookings))
	for i := range bookings {
		resp := toBookingResponse(&bookings[i])
		if svc, err := catalog.ServiceByID(bookings[i].ServiceID); err == nil {
			resp.ServiceName = svc.Name
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *BookingService) CancelBooking(code string, userID int) error {
	return s.Repo.CancelBooking(code, userID)
}

func validateBookingRequest(req *entities.BookingRequest) error {
	req.VehiclePlate = wizard.FormatPlate(req.VehiclePlate)
	fields := []string{}
	if strings.TrimSpace(req.ClientName) == "" {
		fields = append(fields, "client_name")
	}
	if !wizard.ValidEmail(req.ClientEmail) {
		fields = append(fields, "client_email")
	}
	if !wizard.ValidPlate(req.VehiclePlate, req.VehicleTypeID) {
		fields = append(fields, "vehicle_plate")
	}
	if _, err := time.Parse(schedule.DateLayout, req.BookingDate); err != nil {
		fields = append(fields, "booking_date")
	}
	if !schedule.ValidSlot(req.BookingTime) {
		fields = append(fields, "booking_time")
	}
	if len(fields) > 0 {
		return httperrors.ErrBadRequest(fmt.Sprintf("invalid fields: %s", strings.Join(fields, ", ")))
	}
	return nil
}

func toBookingResponse(b *db.Booking) entities.BookingResponse {
	resp := entities.BookingResponse{
		Code:         b.Code,
		VehiclePlate: b.VehiclePlate,
		VehicleType:  b.VehicleType,
		ServiceID:    b.ServiceID,
		ClientName:   b.ClientName,
		ClientEmail:  b.ClientEmail,
		BookingDate:  b.BookingDate,
		BookingTime:  b.BookingTime,
		TotalPrice:   b.TotalPrice,
		Status:       b.Status,
		Language:     b.Language,
	}
	if b.ClientPhone.Valid {
		resp.ClientPhone = b.ClientPhone.String
	}
	return resp
}

func newBookingCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
