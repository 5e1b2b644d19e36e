package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"devevent/internal/domain"
)

// MaxBodyBytes bounds every JSON request body.
const MaxBodyBytes = 1 << 20

// ErrorResponse is the body of every failed request.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode and encodes body.
func WriteJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteJSONError writes an ErrorResponse. Field errors are attached when err is a
// *domain.ValidationError.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string, err error) {
	resp := ErrorResponse{Message: message, Error: err.Error()}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		resp.Fields = ve.Fields
	}
	WriteJSON(w, statusCode, resp)
}

// ErrMalformedBody is returned by DecodeJSON for bodies that are not a single JSON object.
var ErrMalformedBody = errors.New("malformed JSON body")

// DecodeJSON decodes the request body into dest. Unknown fields are ignored so that
// clients may send system-managed fields back unchanged.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: unexpected data after the JSON object", ErrMalformedBody)
	}
	return nil
}
