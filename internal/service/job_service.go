package service

import (
	"fmt"
	"log"
	"time"

	"detallado/internal/repository"
	"detallado/internal/schedule"
	"detallado/internal/wizard"
)

const wizardSessionTTL = 2 * time.Hour

type JobService struct {
	Repo     *repository.JobRepository
	Users    repository.UserRepository
	Sessions *wizard.Store
}

func NewJobService(repo *repository.JobRepository, users repository.UserRepository, sessions *wizard.Store) *JobService {
	return &JobService{Repo: repo, Users: users, Sessions: sessions}
}

// FinishPastBookings busca reservas confirmadas cuya fecha ya pasó y
// actualiza su estado a "finished".
func (s *JobService) FinishPastBookings() error {
	log.Println("Cron Job: Checking for bookings to mark as 'finished'...")

	today := time.Now().In(schedule.BusinessLocation()).Format(schedule.DateLayout)
	bookingIDs, err := s.Repo.GetConfirmedBookingIDsBefore(today)
	if err != nil {
		return fmt.Errorf("cron job: failed to get confirmed bookings past their date: %w", err)
	}

	if len(bookingIDs) == 0 {
		log.Println("Cron Job: No confirmed bookings found past their date.")
		return nil
	}

	log.Printf("Cron Job: Found %d bookings to mark as 'finished'. IDs: %v", len(bookingIDs), bookingIDs)

	if err := s.Repo.UpdateBookingStatuses(bookingIDs, statusFinished); err != nil {
		return fmt.Errorf("cron job: failed to update booking statuses: %w", err)
	}

	log.Printf("Cron Job: Successfully updated %d bookings to 'finished'.", len(bookingIDs))
	return nil
}

// SweepWizardSessions drops abandoned wizard drafts from memory.
func (s *JobService) SweepWizardSessions() {
	if removed := s.Sessions.Sweep(wizardSessionTTL); removed > 0 {
		log.Printf("Cron Job: Swept %d abandoned wizard sessions", removed)
	}
}

// CleanupResetTokens clears expired password-reset tokens.
func (s *JobService) CleanupResetTokens() error {
	cleared, err := s.Users.DeleteExpiredResetTokens(time.Now().UTC())
	if err != nil {
		return fmt.Errorf("cron job: failed to clear expired reset tokens: %w", err)
	}
	if cleared > 0 {
		log.Printf("Cron Job: Cleared %d expired reset tokens", cleared)
	}
	return nil
}
