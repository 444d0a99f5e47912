package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes bounds request bodies accepted by DecodeJSON.
const MaxBodyBytes = 64 << 10

// DecodeJSON decodes a single JSON object from the request body.
//
// Unknown fields, trailing data and bodies over MaxBodyBytes are rejected.
//
//	var req UnsaltedRequest
//	if err := helpers.DecodeJSON(w, r, &req); err != nil {
//	    helpers.RespondError(w, http.StatusBadRequest, err.Error())
//	    return
//	}
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("invalid JSON: body must contain a single object")
	}
	return nil
}
