package httputil

import "encoding/json"
import "net/http"

type ErrorBody struct {
	Error string `json:"error"`
}

// DetailBody matches the FastAPI-style error shape the backend emits; the
// proxied endpoints keep it so the front-end sees one error format.
type DetailBody struct {
	Detail string `json:"detail"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorBody{Error: message})
}

func WriteDetail(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, DetailBody{Detail: message})
}
