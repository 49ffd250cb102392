package server

import (
	"encoding/json"
	"net/http"
)

// Every response uses the {ok, data|error} envelope the dashboard's API
// routes established, so the frontend keeps a single decoding path.
type envelope struct {
	OK    bool        `json:"ok"`
	Data  interface{} `json:"data,omitempty"`
	Error *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	codeInvalidQuery  = "INVALID_QUERY_PARAMS"
	codeInvalidBody   = "INVALID_REQUEST_BODY"
	codeVaultNotFound = "VAULT_NOT_FOUND"
	codeInternal      = "INTERNAL_ERROR"
)

func writeData(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{OK: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{OK: false, Error: &apiError{Code: code, Message: message}})
}
