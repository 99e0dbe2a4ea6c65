package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"detallado/internal/auth"
	"detallado/internal/entities"
	"detallado/internal/service"

	"github.com/gorilla/mux"
)

type VehicleHandler struct {
	Service *service.VehicleService
}

func NewVehicleHandler(svc *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{Service: svc}
}

func (h *VehicleHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	claims := auth.SessionClaims(r.Context())
	vehicles, err := h.Service.ListForUser(claims.UserID)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (h *VehicleHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	claims := auth.SessionClaims(r.Context())
	var req entities.VehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	vehicle, err := h.Service.Create(claims.UserID, req)
	if err != nil {
		writeServiceError(w, err, "Could not create vehicle")
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

func (h *VehicleHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	claims := auth.SessionClaims(r.Context())
	id, err := vehicleID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	var req entities.VehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	vehicle, err := h.Service.Update(claims.UserID, id, req)
	if err != nil {
		writeServiceError(w, err, "Could not update vehicle")
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) SetPrimaryVehicle(w http.ResponseWriter, r *http.Request) {
	claims := auth.SessionClaims(r.Context())
	id, err := vehicleID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.SetPrimary(claims.UserID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Vehicle not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Could not update vehicle", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Vehículo principal actualizado"})
}

func (h *VehicleHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	claims := auth.SessionClaims(r.Context())
	id, err := vehicleID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.Delete(claims.UserID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Vehicle not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Could not delete vehicle", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Vehículo eliminado"})
}

func vehicleID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}
