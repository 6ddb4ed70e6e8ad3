// Package httputil writes the API's JSON response envelope and maps domain
// error codes onto HTTP statuses. Handlers never set statuses by hand for
// failures; they hand the error to WriteError.
package httputil

import (
	"encoding/json"
	"net/http"

	derrors "angodata/pkg/domain-errors"
)

// Envelope is the uniform response body: {success, message?, data?, ...}.
type Envelope struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message,omitempty"`
	Data       any               `json:"data,omitempty"`
	Pagination any               `json:"pagination,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
}

// WriteJSON serializes v with the given status. Encoding failures are
// ignored at this point: headers are already on the wire.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteData writes a successful envelope around data.
func WriteData(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, Envelope{Success: true, Data: data})
}

// WriteMessage writes a successful envelope with only a message.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{Success: true, Message: message})
}

// WritePage writes a successful envelope with data and pagination metadata.
func WritePage(w http.ResponseWriter, data any, pagination any) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, Pagination: pagination})
}

// StatusOf maps a domain error code to its HTTP status.
func StatusOf(code derrors.Code) int {
	switch code {
	case derrors.CodeValidation:
		return http.StatusUnprocessableEntity
	case derrors.CodeBadRequest:
		return http.StatusBadRequest
	case derrors.CodeNotFound:
		return http.StatusNotFound
	case derrors.CodeConflict:
		return http.StatusBadRequest
	case derrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case derrors.CodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// WriteError converts err to the failure envelope. Internal errors carry a
// generic message so backend detail never reaches the client.
func WriteError(w http.ResponseWriter, err error) {
	code := derrors.CodeOf(err)
	status := StatusOf(code)

	env := Envelope{Success: false}
	if status == http.StatusInternalServerError {
		env.Message = "internal server error"
	} else {
		env.Message = derrors.MessageOf(err)
		env.Errors = derrors.FieldsOf(err)
	}
	WriteJSON(w, status, env)
}
