package api

import (
	"net/http"

	"detallado/internal/catalog"
	"detallado/internal/schedule"
)

type CatalogHandler struct {
}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

func (h *CatalogHandler) VehicleTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.VehicleTypes())
}

func (h *CatalogHandler) Services(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Services())
}

func (h *CatalogHandler) TimeSlots(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, schedule.Slots)
}
