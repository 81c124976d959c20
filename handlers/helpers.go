package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/tournament-bracket/brackets"
	"github.com/Dosada05/tournament-bracket/services"
)

type jsonResponse map[string]interface{}

const maxRequestBytes = 1_048_576

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxRequestBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxRequestBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func getIDFromURL(r *http.Request, paramName string) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, paramName))
	if id == "" {
		return "", fmt.Errorf("missing %s in URL path", paramName)
	}
	return id, nil
}

type responder struct {
	logger *slog.Logger
}

func (rs responder) errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	env := jsonResponse{"error": message}
	if err := writeJSON(w, status, env, nil); err != nil {
		rs.logger.ErrorContext(r.Context(), "failed to write error response", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (rs responder) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	rs.logger.ErrorContext(r.Context(), "internal server error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	message := "the server encountered a problem and could not process your request"
	rs.errorResponse(w, r, http.StatusInternalServerError, message)
}

func (rs responder) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	rs.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (rs responder) failedValidationResponse(w http.ResponseWriter, r *http.Request, errors map[string]string) {
	rs.errorResponse(w, r, http.StatusUnprocessableEntity, errors)
}

func (rs responder) notFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	rs.errorResponse(w, r, http.StatusNotFound, err.Error())
}

func (rs responder) conflictResponse(w http.ResponseWriter, r *http.Request, err error) {
	rs.errorResponse(w, r, http.StatusConflict, err.Error())
}

// mapServiceErrorToHTTP picks the status from the error's kind: rule
// violations are 422, state conflicts 409, missing entities 404.
func (rs responder) mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	switch services.KindOf(err) {
	case brackets.KindValidation:
		rs.errorResponse(w, r, http.StatusUnprocessableEntity, err.Error())
	case brackets.KindConflict:
		rs.conflictResponse(w, r, err)
	case brackets.KindNotFound:
		rs.notFoundResponse(w, r, err)
	default:
		rs.serverErrorResponse(w, r, err)
	}
}
