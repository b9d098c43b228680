// Package response centralizes the JSON envelope every HTTP handler writes,
// so status codes and error shapes stay consistent across the job-control
// surface.
package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes v as an indented-free JSON body with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the shape every error response carries.
type errorBody struct {
	Error string `json:"error"`
}

// Error writes a {"error": message} body with the given status code.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorBody{Error: message})
}
