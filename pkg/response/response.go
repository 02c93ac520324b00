// Package response writes the JSON shapes the storefront frontend consumes.
//
// Two failure philosophies coexist deliberately: admin write routes return
// HTTP 500 with {"error": …}, while storefront read routes degrade to
// HTTP 200 with a benign default so page rendering never breaks. Degraded
// exists to make the second style explicit at the call site.
package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// Success sends a 200 JSON response.
func Success(w http.ResponseWriter, v interface{}) {
	JSON(w, http.StatusOK, v)
}

// Created sends a 201 JSON response.
func Created(w http.ResponseWriter, v interface{}) {
	JSON(w, http.StatusCreated, v)
}

// Error sends {"error": message} with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// Degraded sends a 200 with a fallback payload. Used by read routes that
// feed page rendering and must never surface a failure to the frontend.
func Degraded(w http.ResponseWriter, fallback interface{}) {
	JSON(w, http.StatusOK, fallback)
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "Unauthorized")
}

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "Forbidden")
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "Not found")
}
