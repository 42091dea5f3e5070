package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tablebistro/tablebistro/internal/shared"
)

type errorBody struct {
	Error string `json:"error"`
}

// WriteJSON writes v as a JSON response body.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps domain error kinds onto HTTP status codes and surfaces the
// domain message verbatim. Anything unrecognized is a 500 with a generic body.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrValidation):
		WriteJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, shared.ErrNotFound):
		WriteJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, shared.ErrInvalidState):
		WriteJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	case errors.Is(err, shared.ErrGateway):
		WriteJSON(w, http.StatusBadGateway, errorBody{Error: err.Error()})
	default:
		WriteJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}
