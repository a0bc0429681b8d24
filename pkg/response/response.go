// Package response writes the JSON envelopes used by every handler.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/pizzeria/pkg/apperr"
)

type envelope struct {
	Status int         `json:"status"`
	Detail string      `json:"detail,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Errors interface{} `json:"errors,omitempty"`
}

func write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 JSON response with data.
func Success(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusOK, envelope{Status: http.StatusOK, Data: data})
}

// Created sends a 201 JSON response with data.
func Created(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusCreated, envelope{Status: http.StatusCreated, Data: data})
}

// NoContent sends a bare 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error sends a JSON error response with a stable detail message.
func Error(w http.ResponseWriter, status int, detail string) {
	write(w, status, envelope{Status: status, Detail: detail})
}

// Err maps a taxonomy error to its HTTP status. 401s carry the bearer
// challenge so clients know how to authenticate.
func Err(w http.ResponseWriter, err error) {
	status := apperr.Status(err)
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	Error(w, status, apperr.Detail(err))
}

// ValidationError sends a 422 with a field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	write(w, http.StatusUnprocessableEntity, envelope{
		Status: http.StatusUnprocessableEntity,
		Detail: "Validation failed",
		Errors: errs,
	})
}

// Unauthorized sends a 401 with the bearer challenge.
func Unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	Error(w, http.StatusUnauthorized, detail)
}

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter, detail string) {
	Error(w, http.StatusForbidden, detail)
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter, detail string) {
	Error(w, http.StatusNotFound, detail)
}
