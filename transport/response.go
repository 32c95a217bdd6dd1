package transport

import (
	"encoding/json"
	"net/http"

	"github.com/onestopfashion897-star/onestopfashion-backend/utils/errors"
	validatorx "github.com/onestopfashion897-star/onestopfashion-backend/utils/validator"
)

type successResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type errorResponse struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`
	Code    string   `json:"code,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(successResponse{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	if cerr, ok := err.(errors.CustomError); ok {
		w.WriteHeader(cerr.ErrorHTTPCode())
		_ = json.NewEncoder(w).Encode(errorResponse{
			Success: false,
			Error:   cerr.Error(),
			Code:    cerr.ErrorCode(),
		})
		return
	}

	// Unexpected errors never leak internal detail
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Success: false,
		Error:   "internal server error",
	})
}

// writeValidationError names the failing fields so the client can show a
// field-specific message.
func writeValidationError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Success: false,
		Error:   "invalid request",
		Fields:  validatorx.FailedFields(err),
	})
}
