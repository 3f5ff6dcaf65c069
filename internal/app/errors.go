package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/movielib/movie-catalog-service/internal/domain"
	appvalidator "github.com/movielib/movie-catalog-service/internal/validator"
)

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.Error(err.Error(), "method", method, "uri", uri)
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	message := "The server encountered a problem and could not process your request"
	app.errorResponse(w, r, http.StatusInternalServerError, message)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "The requested resource not found"
	app.errorResponse(w, r, http.StatusNotFound, message)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *Application) unauthorizedAccessResponse(w http.ResponseWriter, r *http.Request) {
	message := "You must be authenticated to access this resource"
	app.errorResponse(w, r, http.StatusUnauthorized, message)
}

// failedValidationResponse maps both validator.ValidationErrors from request
// DTOs and domain.ValidationError values surfaced by the services onto a 422
// with per-field issues.
func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	resp := ValidationErrorResponse{
		Message:   "Validation failed",
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	var validationErrors validator.ValidationErrors
	var domainErr domain.ValidationError

	switch {
	case errors.As(err, &validationErrors):
		for _, fieldErr := range validationErrors {
			resp.ValidationErrors = append(resp.ValidationErrors, FieldValidationError{
				Field: fieldErr.Field(),
				Issue: appvalidator.ValidationMessage(fieldErr),
			})
		}
	case errors.As(err, &domainErr):
		resp.ValidationErrors = append(resp.ValidationErrors, FieldValidationError{
			Field: domainErr.Field,
			Issue: domainErr.Message,
		})
	default:
		app.badRequestResponse(w, r, err)
		return
	}

	writeErr := app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if writeErr != nil {
		app.logError(r, writeErr)
		w.WriteHeader(500)
	}
}
