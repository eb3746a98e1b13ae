package main

import (
	"encoding/json"
	"net/http"

	"github.com/lattice-db/tenantpool/internal/apierr"
)

// errorResponse mirrors the {error:{code,message}} envelope shape; kept
// deliberately small since this binary only demonstrates the core's
// contract, not a full feature API.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError classifies err via internal/apierr and writes a stable,
// credential-free error envelope. The classified code is the only thing a
// client ever sees; err's own message never reaches the response body.
func writeError(w http.ResponseWriter, err error) {
	classified := apierr.Classify(err)
	var resp errorResponse
	resp.Error.Code = classified.Code
	resp.Error.Message = http.StatusText(classified.Status)
	writeJSON(w, classified.Status, resp)
}
