package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/supportchat/internal/logging"
)

const maxBodyBytes = 64 << 10

// errorBody is the JSON shape of every failed response. Error is only set
// for server-side failures.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func respondWithJSON(ctx context.Context, w http.ResponseWriter, code int, payload any, logger logging.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error(ctx, "failed to marshal JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error(ctx, "failed to write HTTP response", "error", err)
	}
}

func respondWithError(ctx context.Context, w http.ResponseWriter, code int, message string, logger logging.Logger) {
	respondWithJSON(ctx, w, code, errorBody{Message: message}, logger)
}

// respondWithServerError answers 500 with the human-readable message and the
// underlying cause.
func respondWithServerError(ctx context.Context, w http.ResponseWriter, message string, cause error, logger logging.Logger) {
	respondWithJSON(ctx, w, http.StatusInternalServerError, errorBody{Message: message, Error: cause.Error()}, logger)
}

// decodeJSON reads a size-limited JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	return nil
}
