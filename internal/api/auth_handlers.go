package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"detallado/internal/auth"
	"detallado/internal/db"
	"detallado/internal/service"
)

type AuthHandler struct {
	Service *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	user, token, err := h.Service.SignUp(req.Name, req.Email, req.Phone, req.Password, req.Language)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, SessionResponse{Token: token, User: toUserResponse(user)})
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	user, token, err := h.Service.SignIn(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		http.Error(w, "Could not sign in", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{Token: token, User: toUserResponse(user)})
}

// Me resolves the session to the current user, the SPA's session lookup.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.CurrentUser(auth.SessionClaims(r.Context()))
	if err != nil {
		http.Error(w, "Could not load user", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req PasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Service.RequestPasswordReset(req.Email); err != nil {
		http.Error(w, "Could not process reset request", http.StatusInternalServerError)
		return
	}
	// Always 200 so the endpoint does not reveal which emails exist.
	writeJSON(w, http.StatusOK, map[string]string{"message": "Si el correo existe, enviamos un enlace de restablecimiento."})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req PasswordResetConfirm
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Service.ResetPassword(req.Token, req.Password); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Contraseña actualizada"})
}

func toUserResponse(u *db.User) UserResponse {
	resp := UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Language: u.Language,
	}
	if u.Phone.Valid {
		resp.Phone = u.Phone.String
	}
	return resp
}
