// Package wizard holds the booking flow state machine: step sequencing,
// skip logic for returning customers with saved vehicles, per-step
// validation and the high-water mark that gates direct jumps.
package wizard

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"detallado/internal/catalog"
)

const (
	StepSavedVehicle = 0 // choose an existing vehicle or start a new one
	StepVehicleType  = 1
	StepService      = 2
	StepClientInfo   = 3
	StepSchedule     = 4
	StepConfirm      = 5
)

var (
	ErrExit            = errors.New("wizard: back past the first step")
	ErrConfirmed       = errors.New("wizard: booking already confirmed")
	ErrConfirmInFlight = errors.New("wizard: confirmation in progress")
	ErrJumpForbidden   = errors.New("wizard: step not reachable")
)

// ValidationError carries per-field messages for the current step.
// The caller surfaces them inline and the step does not change.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	return "wizard: invalid fields: " + strings.Join(keys, ", ")
}

// ClientInfo is the contact block entered at step 3.
type ClientInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Plate string `json:"plate"`
}

// Draft accumulates the booking as the customer walks the steps.
type Draft struct {
	VehicleTypeID string     `json:"vehicle_type_id"`
	ServiceID     string     `json:"service_id"`
	Client        ClientInfo `json:"client"`
	Date          string     `json:"date"` // YYYY-MM-DD
	Time          string     `json:"time"` // HH:MM
}

// Session is one customer's walk through the wizard. Not safe for
// concurrent use; the session store serializes access.
type Session struct {
	ID                   string `json:"id"`
	Step                 int    `json:"step"`
	MaxStepReached       int    `json:"max_step_reached"`
	UsingExistingVehicle bool   `json:"using_existing_vehicle"`
	Authenticated        bool   `json:"authenticated"`
	Draft                Draft  `json:"draft"`
	// Direction only drives the client's transition animation.
	Direction string    `json:"direction"`
	Confirmed bool      `json:"confirmed"`
	UpdatedAt time.Time `json:"-"`

	// confirming is set between BeginConfirm and Finish/AbortConfirm so a
	// second submission cannot slip in while the insert is running.
	confirming bool
}

// New starts a session. Authenticated customers enter at step 0 (pick a
// saved vehicle or add a new one); anonymous customers have no step 0 and
// start at vehicle-type selection.
func New(id string, authenticated bool) *Session {
	step := StepVehicleType
	if authenticated {
		step = StepSavedVehicle
	}
	return &Session{
		ID:             id,
		Step:           step,
		MaxStepReached: step,
		Authenticated:  authenticated,
		Direction:      "forward",
		UpdatedAt:      time.Now().UTC(),
	}
}

// nextStep is the forward transition table. Step 2 skips the contact step
// when the plate and type are already known from a saved vehicle.
func nextStep(step int, usingExisting bool) int {
	switch step {
	case StepVehicleType:
		return StepService
	case StepService:
		if usingExisting {
			return StepSchedule
		}
		return StepClientInfo
	case StepClientInfo:
		return StepSchedule
	case StepSchedule:
		return StepConfirm
	}
	return step
}

// prevStep is the backward transition table, mirroring the skip logic.
// The second result is true when stepping back leaves the wizard.
func prevStep(step int, usingExisting, authenticated bool) (int, bool) {
	switch step {
	case StepConfirm:
		return StepSchedule, false
	case StepSchedule:
		if usingExisting {
			return StepService, false
		}
		return StepClientInfo, false
	case StepClientInfo:
		return StepService, false
	case StepService:
		if usingExisting {
			return StepSavedVehicle, false
		}
		return StepVehicleType, false
	case StepVehicleType:
		if authenticated {
			return StepSavedVehicle, false
		}
		return StepVehicleType, true
	}
	return step, true
}

// SelectSavedVehicle takes the returning-customer shortcut at step 0:
// plate and type come from the stored vehicle, so the wizard lands
// directly on service selection and will later skip the contact step.
func (s *Session) SelectSavedVehicle(vehicleTypeID, plate string) error {
	if err := s.editable(); err != nil {
		return err
	}
	if s.Step != StepSavedVehicle {
		return fmt.Errorf("wizard: saved vehicle can only be chosen at step %d", StepSavedVehicle)
	}
	if _, err := catalog.VehicleTypeByID(vehicleTypeID); err != nil {
		return err
	}
	s.UsingExistingVehicle = true
	s.Draft.VehicleTypeID = vehicleTypeID
	s.Draft.Client.Plate = FormatPlate(plate)
	s.advance(StepService)
	return nil
}

// StartNewVehicle leaves step 0 towards manual vehicle-type selection.
func (s *Session) StartNewVehicle() error {
	if err := s.editable(); err != nil {
		return err
	}
	if s.Step != StepSavedVehicle {
		return fmt.Errorf("wizard: new vehicle can only be started at step %d", StepSavedVehicle)
	}
	s.UsingExistingVehicle = false
	s.advance(StepVehicleType)
	return nil
}

// SelectVehicleType records the type. Switching to a *different* type
// invalidates the plate (its grammar depends on the type) and rolls the
// high-water mark back to step 2, so data entered in later steps must be
// revisited. Re-selecting the same type changes nothing.
func (s *Session) SelectVehicleType(id string) error {
	if err := s.editable(); err != nil {
		return err
	}
	if _, err := catalog.VehicleTypeByID(id); err != nil {
		return err
	}
	if s.Draft.VehicleTypeID != "" && s.Draft.VehicleTypeID != id {
		s.Draft.Client.Plate = ""
		s.MaxStepReached = StepService
	}
	s.UsingExistingVehicle = false
	s.Draft.VehicleTypeID = id
	s.touch()
	return nil
}

func (s *Session) SelectService(id string) error {
	if err := s.editable(); err != nil {
		return err
	}
	if _, err := catalog.ServiceByID(id); err != nil {
		return err
	}
	s.Draft.ServiceID = id
	s.touch()
	return nil
}

// SetClientInfo stores the contact block, normalizing the plate on the way
// in. Validation happens on Next so the customer can type freely.
func (s *Session) SetClientInfo(ci ClientInfo) error {
	if err := s.editable(); err != nil {
		return err
	}
	ci.Plate = FormatPlate(ci.Plate)
	s.Draft.Client = ci
	s.touch()
	return nil
}

// SelectDate picks a day. Changing the date discards any chosen time,
// since slot availability has to be re-checked for the new day.
func (s *Session) SelectDate(date string) error {
	if err := s.editable(); err != nil {
		return err
	}
	if date != s.Draft.Date {
		s.Draft.Time = ""
	}
	s.Draft.Date = date
	s.touch()
	return nil
}

func (s *Session) SelectTime(t string) error {
	if err := s.editable(); err != nil {
		return err
	}
	s.Draft.Time = t
	s.touch()
	return nil
}

// Next validates only the current step's fields and advances on success.
// Invalid input returns a *ValidationError and the step does not move.
func (s *Session) Next() error {
	if err := s.editable(); err != nil {
		return err
	}
	if s.Step == StepSavedVehicle {
		return &ValidationError{Fields: map[string]string{
			"vehicle": "selecciona un vehículo o agrega uno nuevo",
		}}
	}
	if s.Step == StepConfirm {
		return fmt.Errorf("wizard: already at the confirmation step")
	}
	if fields := s.validateStep(s.Step); len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	s.advance(nextStep(s.Step, s.UsingExistingVehicle))
	return nil
}

// Prev steps back without validation, reversing the same skip logic.
// Anonymous customers backing out of step 1 exit the wizard.
func (s *Session) Prev() error {
	if err := s.editable(); err != nil {
		return err
	}
	target, exit := prevStep(s.Step, s.UsingExistingVehicle, s.Authenticated)
	if exit {
		return ErrExit
	}
	s.Step = target
	s.Direction = "back"
	s.touch()
	return nil
}

// JumpToStep allows the review screen to link back to any already-visited
// step. Jumping ahead of the high-water mark, or into a step the active
// path skips, is rejected.
func (s *Session) JumpToStep(target int) error {
	if err := s.editable(); err != nil {
		return err
	}
	if target < StepSavedVehicle || target > StepConfirm {
		return ErrJumpForbidden
	}
	if target == StepSavedVehicle && !s.Authenticated {
		return ErrJumpForbidden
	}
	if s.UsingExistingVehicle && (target == StepVehicleType || target == StepClientInfo) {
		return ErrJumpForbidden
	}
	if target >= s.Step && target > s.MaxStepReached {
		return ErrJumpForbidden
	}
	if target < s.Step {
		s.Direction = "back"
	} else {
		s.Direction = "forward"
	}
	s.Step = target
	s.touch()
	return nil
}

// Complete reports whether the draft can be submitted: every field present
// and the contact block valid for the chosen vehicle type.
func (s *Session) Complete() bool {
	if s.Draft.VehicleTypeID == "" || s.Draft.ServiceID == "" ||
		s.Draft.Date == "" || s.Draft.Time == "" {
		return false
	}
	return len(s.validateStep(StepClientInfo)) == 0
}

// BeginConfirm reserves the session for submission. It validates that the
// wizard sits at the confirmation step with a complete draft, then blocks
// every other action until FinishConfirm or AbortConfirm. Callers run it
// under the store lock so two concurrent submissions cannot both pass.
func (s *Session) BeginConfirm() error {
	if err := s.editable(); err != nil {
		return err
	}
	if s.Step != StepConfirm {
		return fmt.Errorf("wizard: confirm only allowed at step %d", StepConfirm)
	}
	if !s.Complete() {
		return &ValidationError{Fields: map[string]string{"draft": "reserva incompleta"}}
	}
	s.confirming = true
	s.touch()
	return nil
}

// FinishConfirm freezes the session after a successful submission. Only a
// full restart leaves this state.
func (s *Session) FinishConfirm() {
	s.confirming = false
	s.Confirmed = true
	s.touch()
}

// AbortConfirm releases the session after a failed submission so the
// customer can fix the draft and retry.
func (s *Session) AbortConfirm() {
	s.confirming = false
	s.touch()
}

func (s *Session) editable() error {
	if s.Confirmed {
		return ErrConfirmed
	}
	if s.confirming {
		return ErrConfirmInFlight
	}
	return nil
}

func (s *Session) validateStep(step int) map[string]string {
	fields := map[string]string{}
	switch step {
	case StepVehicleType:
		if s.Draft.VehicleTypeID == "" {
			fields["vehicle_type"] = "selecciona un tipo de vehículo"
		}
	case StepService:
		if s.Draft.ServiceID == "" {
			fields["service"] = "selecciona un servicio"
		}
	case StepClientInfo:
		if strings.TrimSpace(s.Draft.Client.Name) == "" {
			fields["name"] = "el nombre es obligatorio"
		}
		if !ValidEmail(s.Draft.Client.Email) {
			fields["email"] = "correo inválido"
		}
		if !ValidPlate(s.Draft.Client.Plate, s.Draft.VehicleTypeID) {
			fields["plate"] = "patente inválida para el tipo de vehículo"
		}
	case StepSchedule:
		if s.Draft.Date == "" {
			fields["date"] = "selecciona una fecha"
		}
		if s.Draft.Time == "" {
			fields["time"] = "selecciona un horario"
		}
	}
	return fields
}

func (s *Session) advance(target int) {
	s.Step = target
	if target > s.MaxStepReached {
		s.MaxStepReached = target
	}
	s.Direction = "forward"
	s.touch()
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now().UTC()
}

// Segment is one cell of the 5-segment progress bar (steps 1..5).
type Segment struct {
	Step      int  `json:"step"`
	Active    bool `json:"active"`
	Clickable bool `json:"clickable"`
	Skipped   bool `json:"skipped"`
}

// Segments renders the progress bar. Steps skipped by the saved-vehicle
// path are neither active nor clickable.
func (s *Session) Segments() []Segment {
	segments := make([]Segment, 0, 5)
	for step := StepVehicleType; step <= StepConfirm; step++ {
		skipped := s.UsingExistingVehicle && (step == StepVehicleType || step == StepClientInfo)
		segments = append(segments, Segment{
			Step:      step,
			Active:    step == s.Step && !skipped,
			Clickable: !skipped && !s.Confirmed && (step < s.Step || step <= s.MaxStepReached),
			Skipped:   skipped,
		})
	}
	return segments
}
