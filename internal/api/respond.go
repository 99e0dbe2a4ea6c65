package api

import (
	"encoding/json"
	"errors"
	"net/http"

	httperrors "detallado/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeServiceError unwraps HTTPError codes; anything else is a 500 with a
// generic message.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var httpErr *httperrors.HTTPError
	if errors.As(err, &httpErr) {
		http.Error(w, httpErr.Message, httpErr.Code)
		return
	}
	http.Error(w, fallback, http.StatusInternalServerError)
}
