package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"detallado/internal/auth"
	"detallado/internal/entities"
	"detallado/internal/service"
	"detallado/internal/wizard"

	"github.com/gorilla/mux"
)

// WizardHandler exposes the booking wizard. The SPA renders the steps; the
// state machine itself lives server-side, one session per walk-through.
// Handlers only ever hold session snapshots; mutations go through the
// store.
type WizardHandler struct {
	Store          *wizard.Store
	BookingService *service.BookingService
	VehicleService *service.VehicleService
	AuthService    *service.AuthService
}

func NewWizardHandler(store *wizard.Store, bookingSvc *service.BookingService, vehicleSvc *service.VehicleService, authSvc *service.AuthService) *WizardHandler {
	return &WizardHandler{
		Store:          store,
		BookingService: bookingSvc,
		VehicleService: vehicleSvc,
		AuthService:    authSvc,
	}
}

// wizardState is what every wizard endpoint returns: the session plus the
// rendered progress bar, and field errors when the last action failed
// validation.
type wizardState struct {
	Session  wizard.Session    `json:"session"`
	Segments []wizard.Segment  `json:"segments"`
	Errors   map[string]string `json:"errors,omitempty"`
	Exited   bool              `json:"exited,omitempty"`
}

func (h *WizardHandler) Start(w http.ResponseWriter, r *http.Request) {
	claims := auth.SessionClaims(r.Context())
	session := h.Store.Start(claims != nil)
	if claims != nil {
		// Authenticated sessions get the contact fields pre-filled; the
		// client renders the email read-only.
		var name string
		if user, err := h.AuthService.CurrentUser(claims); err == nil && user != nil {
			name = user.Name
		}
		session, _, _ = h.Store.Update(session.ID, func(s *wizard.Session) error {
			s.Draft.Client.Email = claims.Email
			s.Draft.Client.Name = name
			return nil
		})
	}
	writeJSON(w, http.StatusCreated, wizardState{Session: session, Segments: session.Segments()})
}

func (h *WizardHandler) GetState(w http.ResponseWriter, r *http.Request) {
	session, ok := h.Store.Get(mux.Vars(r)["id"])
	if !ok {
		http.Error(w, "Wizard session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, wizardState{Session: session, Segments: session.Segments()})
}

func (h *WizardHandler) Restart(w http.ResponseWriter, r *http.Request) {
	h.Store.Delete(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

// SelectSavedVehicle takes the step-0 shortcut with one of the user's
// stored vehicles.
func (h *WizardHandler) SelectSavedVehicle(w http.ResponseWriter, r *http.Request) {
	claims := auth.SessionClaims(r.Context())
	var req SavedVehicleSelection
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	vehicle, err := h.VehicleService.Get(claims.UserID, req.VehicleID)
	if err != nil {
		writeServiceError(w, err, "Could not load vehicle")
		return
	}
	h.update(w, r, func(s *wizard.Session) error {
		return s.SelectSavedVehicle(vehicle.VehicleType, vehicle.Plate)
	})
}

func (h *WizardHandler) StartNewVehicle(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, func(s *wizard.Session) error {
		return s.StartNewVehicle()
	})
}

func (h *WizardHandler) SelectVehicleType(w http.ResponseWriter, r *http.Request) {
	var req VehicleTypeSelection
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	h.update(w, r, func(s *wizard.Session) error {
		return s.SelectVehicleType(req.VehicleTypeID)
	})
}

func (h *WizardHandler) SelectService(w http.ResponseWriter, r *http.Request) {
	var req ServiceSelection
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	h.update(w, r, func(s *wizard.Session) error {
		return s.SelectService(req.ServiceID)
	})
}

func (h *WizardHandler) SetClientInfo(w http.ResponseWriter, r *http.Request) {
	claims := auth.SessionClaims(r.Context())
	var req ClientInfoPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	h.update(w, r, func(s *wizard.Session) error {
		ci := wizard.ClientInfo{Name: req.Name, Email: req.Email, Phone: req.Phone, Plate: req.Plate}
		if claims != nil {
			// The email field is read-only for signed-in customers.
			ci.Email = claims.Email
		}
		return s.SetClientInfo(ci)
	})
}

func (h *WizardHandler) SetSchedule(w http.ResponseWriter, r *http.Request) {
	var req SchedulePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	h.update(w, r, func(s *wizard.Session) error {
		if req.Date != "" {
			if err := s.SelectDate(req.Date); err != nil {
				return err
			}
		}
		if req.Time != "" {
			return s.SelectTime(req.Time)
		}
		return nil
	})
}

func (h *WizardHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, func(s *wizard.Session) error {
		return s.Next()
	})
}

func (h *WizardHandler) Prev(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	session, ok, err := h.Store.Update(id, func(s *wizard.Session) error {
		return s.Prev()
	})
	if !ok {
		http.Error(w, "Wizard session not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, wizard.ErrExit) {
		// Anonymous customers have no step 0: backing out of step 1
		// leaves the wizard entirely.
		h.Store.Delete(id)
		writeJSON(w, http.StatusOK, wizardState{Session: session, Segments: session.Segments(), Exited: true})
		return
	}
	h.respond(w, session, err)
}

func (h *WizardHandler) Jump(w http.ResponseWriter, r *http.Request) {
	var req JumpPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	h.update(w, r, func(s *wizard.Session) error {
		return s.JumpToStep(req.Step)
	})
}

// Confirm submits the draft. The check-and-reserve runs under the store
// lock (BeginConfirm), so of two racing submissions only one reaches
// CreateBooking; the session is frozen on success and released on failure.
func (h *WizardHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var draft wizard.Draft
	session, ok, err := h.Store.Update(id, func(s *wizard.Session) error {
		if err := s.BeginConfirm(); err != nil {
			return err
		}
		draft = s.Draft
		return nil
	})
	if !ok {
		http.Error(w, "Wizard session not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.respond(w, session, err)
		return
	}

	req := entities.BookingRequest{
		VehicleTypeID: draft.VehicleTypeID,
		ServiceID:     draft.ServiceID,
		ClientName:    draft.Client.Name,
		ClientEmail:   draft.Client.Email,
		ClientPhone:   draft.Client.Phone,
		VehiclePlate:  draft.Client.Plate,
		BookingDate:   draft.Date,
		BookingTime:   draft.Time,
		Language:      r.Header.Get("Accept-Language"),
	}
	resp, err := h.BookingService.CreateBooking(req, auth.SessionClaims(r.Context()))
	if err != nil {
		// Step 5 stays active so the customer can retry or go back.
		h.Store.Update(id, func(s *wizard.Session) error {
			s.AbortConfirm()
			return nil
		})
		writeServiceError(w, err, "Could not create booking")
		return
	}
	h.Store.Update(id, func(s *wizard.Session) error {
		s.FinishConfirm()
		return nil
	})
	writeJSON(w, http.StatusCreated, resp)
}

func (h *WizardHandler) update(w http.ResponseWriter, r *http.Request, fn func(*wizard.Session) error) {
	session, ok, err := h.Store.Update(mux.Vars(r)["id"], fn)
	if !ok {
		http.Error(w, "Wizard session not found", http.StatusNotFound)
		return
	}
	h.respond(w, session, err)
}

func (h *WizardHandler) respond(w http.ResponseWriter, session wizard.Session, err error) {
	if err != nil {
		var validationErr *wizard.ValidationError
		if errors.As(err, &validationErr) {
			writeJSON(w, http.StatusUnprocessableEntity, wizardState{
				Session:  session,
				Segments: session.Segments(),
				Errors:   validationErr.Fields,
			})
			return
		}
		if errors.Is(err, wizard.ErrConfirmed) || errors.Is(err, wizard.ErrConfirmInFlight) {
			http.Error(w, "Booking already confirmed", http.StatusConflict)
			return
		}
		writeServiceError(w, err, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, wizardState{Session: session, Segments: session.Segments()})
}
