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

type ReviewHandler struct {
	Service     *service.ReviewService
	AuthService *service.AuthService
}

func NewReviewHandler(svc *service.ReviewService, authSvc *service.AuthService) *ReviewHandler {
	return &ReviewHandler{Service: svc, AuthService: authSvc}
}

// Testimonials is the public list of approved reviews.
func (h *ReviewHandler) Testimonials(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Service.Testimonials()
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	claims := auth.SessionClaims(r.Context())
	reviews, err := h.Service.ListForUser(claims.UserID)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	claims := auth.SessionClaims(r.Context())
	var req entities.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	user, err := h.AuthService.CurrentUser(claims)
	if err != nil || user == nil {
		http.Error(w, "Could not load user", http.StatusInternalServerError)
		return
	}
	review, err := h.Service.Create(claims.UserID, user.Name, req)
	if err != nil {
		writeServiceError(w, err, "Could not create review")
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	claims := auth.SessionClaims(r.Context())
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.Delete(claims.UserID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Review not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Could not delete review", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Reseña eliminada"})
}
