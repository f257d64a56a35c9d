package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sushihentaime/blogplatform/internal/common"
	"github.com/sushihentaime/blogplatform/internal/userservice"
)

func (app *application) logError(r *http.Request, err error) {
	var (
		method  = r.Method
		url     = r.URL.RequestURI()
		message = err.Error()
	)

	app.logger.Error(message, slog.String("method", method), slog.String("url", url))
}

// Only validation failures carry a body; every other error is status only.
func (app *application) writeErrorResponse(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}

func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.writeErrorResponse(w, http.StatusInternalServerError)
}

func (app *application) notFoundErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, http.StatusNotFound)
}

func (app *application) methodNotAllowedErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, http.StatusMethodNotAllowed)
}

func (app *application) unAuthorizedErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, http.StatusUnauthorized)
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, http.StatusTooManyRequests)
}

func (app *application) failedValidationErrorResponse(w http.ResponseWriter, r *http.Request, errs []common.FieldError) {
	if errs == nil {
		errs = []common.FieldError{}
	}

	err := app.writeJSON(w, http.StatusBadRequest, envelope{"errorsMessages": errs}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// badRequestErrorResponse reports a body that could not be decoded at all.
func (app *application) badRequestErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr common.ValidationError
	if errors.As(err, &validationErr) {
		app.failedValidationErrorResponse(w, r, validationErr.Errors)
		return
	}

	app.failedValidationErrorResponse(w, r, []common.FieldError{{Message: err.Error(), Field: "body"}})
}

// serviceErrorResponse maps the errors returned by the services to responses.
func (app *application) serviceErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr common.ValidationError

	switch {
	case errors.As(err, &validationErr):
		app.failedValidationErrorResponse(w, r, validationErr.Errors)
	case errors.Is(err, common.ErrRecordNotFound):
		app.notFoundErrorResponse(w, r)
	case errors.Is(err, userservice.ErrAuthenticationFailure):
		app.unAuthorizedErrorResponse(w, r)
	default:
		app.serverErrorResponse(w, r, err)
	}
}
