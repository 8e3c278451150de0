package handlers

import (
	"encoding/json"
	"net/http"

	"reliefhub-backend/pkg/httputil"
)

// decodeJSON decodes a request body into dst, responding with a 400 and
// returning false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}
