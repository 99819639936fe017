package types

import (
	"errors"
	"net/http"

	appErr "github.com/proconnect/backend/pkg/errors"
)

// StatusFromCode maps the application error taxonomy to HTTP statuses.
func StatusFromCode(code appErr.Code) int {
	switch code {
	case appErr.CodeInvalid:
		return http.StatusBadRequest
	case appErr.CodeUnauthorized:
		return http.StatusUnauthorized
	case appErr.CodeForbidden:
		return http.StatusForbidden
	case appErr.CodeNotFound:
		return http.StatusNotFound
	case appErr.CodeConflict:
		return http.StatusConflict
	case appErr.CodeUnprocessable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// WriteAppError maps err's code to a status and writes the error envelope.
// Untyped errors surface as a generic internal error, never their text.
func WriteAppError(w http.ResponseWriter, err error) {
	code := appErr.CodeOf(err)
	status := StatusFromCode(code)
	msg := "internal server error"
	var ae *appErr.AppError
	if status < http.StatusInternalServerError && errors.As(err, &ae) {
		msg = ae.Message
	} else if status >= http.StatusInternalServerError {
		code = appErr.CodeInternal
	}
	WriteErrorStr(w, status, string(code), msg)
}
