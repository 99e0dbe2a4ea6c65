package wizard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func anonymousAtSchedule(t *testing.T) *Session {
	t.Helper()
	s := New("test", false)
	require.NoError(t, s.SelectVehicleType("car"))
	require.NoError(t, s.Next())
	require.NoError(t, s.SelectService("basic"))
	require.NoError(t, s.Next())
	require.NoError(t, s.SetClientInfo(ClientInfo{Name: "Juan Pérez", Email: "juan@test.com", Plate: "abc123"}))
	require.NoError(t, s.Next())
	require.Equal(t, StepSchedule, s.Step)
	return s
}

func TestAnonymousStartsAtVehicleType(t *testing.T) {
	s := New("test", false)
	require.Equal(t, StepVehicleType, s.Step)
	require.Equal(t, StepVehicleType, s.MaxStepReached)
}

func TestAuthenticatedStartsAtSavedVehicle(t *testing.T) {
	s := New("test", true)
	require.Equal(t, StepSavedVehicle, s.Step)
}

func TestNextValidatesOnlyCurrentStep(t *testing.T) {
	s := New("test", false)

	err := s.Next()
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.Fields, "vehicle_type")
	require.Equal(t, StepVehicleType, s.Step)

	require.NoError(t, s.SelectVehicleType("car"))
	require.NoError(t, s.Next())
	require.Equal(t, StepService, s.Step)
}

func TestClientInfoStepValidation(t *testing.T) {
	s := New("test", false)
	require.NoError(t, s.SelectVehicleType("car"))
	require.NoError(t, s.Next())
	require.NoError(t, s.SelectService("basic"))
	require.NoError(t, s.Next())
	require.Equal(t, StepClientInfo, s.Step)

	require.NoError(t, s.SetClientInfo(ClientInfo{Name: "  ", Email: "not-an-email", Plate: "ab"}))
	err := s.Next()
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.Fields, "name")
	require.Contains(t, validationErr.Fields, "email")
	require.Contains(t, validationErr.Fields, "plate")
	require.Equal(t, StepClientInfo, s.Step)
}

func TestSavedVehicleShortcut(t *testing.T) {
	s := New("test", true)
	require.NoError(t, s.SelectSavedVehicle("suv", "XYZ-456"))
	require.True(t, s.UsingExistingVehicle)
	require.Equal(t, StepService, s.Step)

	// Service chosen, contact step is skipped entirely.
	require.NoError(t, s.SelectService("premium"))
	require.NoError(t, s.Next())
	require.Equal(t, StepSchedule, s.Step)

	// Stepping back lands on service selection, never the contact step.
	require.NoError(t, s.Prev())
	require.Equal(t, StepService, s.Step)

	// And back again lands on step 0, not vehicle-type selection.
	require.NoError(t, s.Prev())
	require.Equal(t, StepSavedVehicle, s.Step)
}

func TestPrevExitsForAnonymousUsers(t *testing.T) {
	s := New("test", false)
	require.ErrorIs(t, s.Prev(), ErrExit)
}

func TestPrevReturnsToSavedVehicleForAuthenticated(t *testing.T) {
	s := New("test", true)
	require.NoError(t, s.StartNewVehicle())
	require.Equal(t, StepVehicleType, s.Step)
	require.NoError(t, s.Prev())
	require.Equal(t, StepSavedVehicle, s.Step)
}

func TestJumpRequiresVisitedStep(t *testing.T) {
	s := New("test", false)
	require.ErrorIs(t, s.JumpToStep(StepSchedule), ErrJumpForbidden)

	s = anonymousAtSchedule(t)
	require.NoError(t, s.JumpToStep(StepVehicleType))
	require.Equal(t, StepVehicleType, s.Step)

	// Already-reached steps stay reachable after jumping back.
	require.NoError(t, s.JumpToStep(StepSchedule))
	require.Equal(t, StepSchedule, s.Step)
}

func TestJumpSkippedStepsForbidden(t *testing.T) {
	s := New("test", true)
	require.NoError(t, s.SelectSavedVehicle("car", "ABC-123"))
	require.NoError(t, s.SelectService("basic"))
	require.NoError(t, s.Next())
	require.Equal(t, StepSchedule, s.Step)

	require.ErrorIs(t, s.JumpToStep(StepVehicleType), ErrJumpForbidden)
	require.ErrorIs(t, s.JumpToStep(StepClientInfo), ErrJumpForbidden)
	require.NoError(t, s.JumpToStep(StepService))
}

func TestJumpToSavedVehicleForbiddenForAnonymous(t *testing.T) {
	s := anonymousAtSchedule(t)
	require.ErrorIs(t, s.JumpToStep(StepSavedVehicle), ErrJumpForbidden)
}

func TestVehicleTypeChangeClearsPlateAndRollsBack(t *testing.T) {
	s := anonymousAtSchedule(t)
	require.Equal(t, "ABC-123", s.Draft.Client.Plate)
	require.Equal(t, StepSchedule, s.MaxStepReached)

	require.NoError(t, s.JumpToStep(StepVehicleType))
	require.NoError(t, s.SelectVehicleType("motorcycle"))
	require.Empty(t, s.Draft.Client.Plate)
	require.Equal(t, StepService, s.MaxStepReached)

	// Progress beyond step 2 is no longer jumpable.
	require.ErrorIs(t, s.JumpToStep(StepSchedule), ErrJumpForbidden)
}

func TestReselectingSameTypeKeepsPlate(t *testing.T) {
	s := anonymousAtSchedule(t)
	require.NoError(t, s.JumpToStep(StepVehicleType))
	require.NoError(t, s.SelectVehicleType("car"))
	require.Equal(t, "ABC-123", s.Draft.Client.Plate)
	require.Equal(t, StepSchedule, s.MaxStepReached)
}

func TestMaxStepReachedMonotonic(t *testing.T) {
	s := anonymousAtSchedule(t)
	require.Equal(t, StepSchedule, s.MaxStepReached)
	require.NoError(t, s.Prev())
	require.NoError(t, s.Prev())
	require.Equal(t, StepService, s.Step)
	require.Equal(t, StepSchedule, s.MaxStepReached)
}

func TestDateChangeClearsTime(t *testing.T) {
	s := anonymousAtSchedule(t)
	require.NoError(t, s.SelectDate("2026-10-05"))
	require.NoError(t, s.SelectTime("08:00"))

	require.NoError(t, s.SelectDate("2026-10-06"))
	require.Empty(t, s.Draft.Time)

	// Re-selecting the same date keeps the slot.
	require.NoError(t, s.SelectTime("09:00"))
	require.NoError(t, s.SelectDate("2026-10-06"))
	require.Equal(t, "09:00", s.Draft.Time)
}

func TestScheduleStepValidation(t *testing.T) {
	s := anonymousAtSchedule(t)
	err := s.Next()
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.Fields, "date")
	require.Contains(t, validationErr.Fields, "time")

	require.NoError(t, s.SelectDate("2026-10-05"))
	require.NoError(t, s.SelectTime("08:00"))
	require.NoError(t, s.Next())
	require.Equal(t, StepConfirm, s.Step)
}

func TestConfirmFreezesSession(t *testing.T) {
	s := anonymousAtSchedule(t)
	require.NoError(t, s.SelectDate("2026-10-05"))
	require.NoError(t, s.SelectTime("08:00"))
	require.NoError(t, s.Next())
	require.True(t, s.Complete())
	require.NoError(t, s.BeginConfirm())
	s.FinishConfirm()
	require.True(t, s.Confirmed)

	require.ErrorIs(t, s.Next(), ErrConfirmed)
	require.ErrorIs(t, s.Prev(), ErrConfirmed)
	require.ErrorIs(t, s.JumpToStep(StepService), ErrConfirmed)
	require.ErrorIs(t, s.SelectDate("2026-10-06"), ErrConfirmed)
	require.ErrorIs(t, s.BeginConfirm(), ErrConfirmed)
}

func TestConfirmRequiresCompleteDraft(t *testing.T) {
	s := anonymousAtSchedule(t)
	require.False(t, s.Complete())
	err := s.BeginConfirm()
	require.Error(t, err)
	require.False(t, s.Confirmed)
}

func TestConfirmInFlightBlocksEverySecondAction(t *testing.T) {
	s := anonymousAtSchedule(t)
	require.NoError(t, s.SelectDate("2026-10-05"))
	require.NoError(t, s.SelectTime("08:00"))
	require.NoError(t, s.Next())
	require.NoError(t, s.BeginConfirm())

	// A racing second submission, or any edit, must not slip in while the
	// first insert is running.
	require.ErrorIs(t, s.BeginConfirm(), ErrConfirmInFlight)
	require.ErrorIs(t, s.SelectDate("2026-10-06"), ErrConfirmInFlight)
	require.ErrorIs(t, s.Prev(), ErrConfirmInFlight)
	require.False(t, s.Confirmed)
}

func TestAbortConfirmAllowsRetry(t *testing.T) {
	s := anonymousAtSchedule(t)
	require.NoError(t, s.SelectDate("2026-10-05"))
	require.NoError(t, s.SelectTime("08:00"))
	require.NoError(t, s.Next())
	require.NoError(t, s.BeginConfirm())

	s.AbortConfirm()
	require.False(t, s.Confirmed)

	// The customer picks another slot after losing the race and retries.
	require.NoError(t, s.SelectTime("09:00"))
	require.NoError(t, s.BeginConfirm())
	s.FinishConfirm()
	require.True(t, s.Confirmed)
}

func TestSegmentsMarkSkippedSteps(t *testing.T) {
	s := New("test", true)
	require.NoError(t, s.SelectSavedVehicle("suv", "XYZ-456"))

	segments := s.Segments()
	require.Len(t, segments, 5)
	for _, seg := range segments {
		switch seg.Step {
		case StepVehicleType, StepClientInfo:
			require.True(t, seg.Skipped)
			require.False(t, seg.Active)
			require.False(t, seg.Clickable)
		case StepService:
			require.True(t, seg.Active)
		}
	}
}

func TestTransitionTables(t *testing.T) {
	// Forward path without a saved vehicle: 1 -> 2 -> 3 -> 4 -> 5.
	require.Equal(t, StepService, nextStep(StepVehicleType, false))
	require.Equal(t, StepClientInfo, nextStep(StepService, false))
	require.Equal(t, StepSchedule, nextStep(StepClientInfo, false))
	require.Equal(t, StepConfirm, nextStep(StepSchedule, false))

	// Saved-vehicle path skips the contact step: 2 -> 4.
	require.Equal(t, StepSchedule, nextStep(StepService, true))

	// Backward mirrors the skips.
	prev, exit := prevStep(StepSchedule, true, true)
	require.Equal(t, StepService, prev)
	require.False(t, exit)

	prev, exit = prevStep(StepService, true, true)
	require.Equal(t, StepSavedVehicle, prev)
	require.False(t, exit)

	prev, exit = prevStep(StepVehicleType, false, true)
	require.Equal(t, StepSavedVehicle, prev)
	require.False(t, exit)

	_, exit = prevStep(StepVehicleType, false, false)
	require.True(t, exit)
}
