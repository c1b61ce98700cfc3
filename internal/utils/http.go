package utils

import (
	"encoding/json"
	"net/http"
)

// WriteJSON serializes data as JSON into the response writer with the given
// status code. Returns the number of bytes written and any write error.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error encoding response", http.StatusInternalServerError)
		return 0, err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return w.Write(payload)
}
