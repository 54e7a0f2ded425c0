package httperr

import (
	"errors"
	"net/http"

	"github.com/rejot-dev/example-microservice/internal/service/models/apperrors"
)

// Write maps a service error to an HTTP status and writes it. Missing local
// entities and unreplicated references both surface as 404; validation
// failures as 400.
func Write(w http.ResponseWriter, err error) {
	var notFound *apperrors.ResourceNotFoundError
	var refNotFound *apperrors.ReferenceNotFoundError
	var invalid *apperrors.InvalidArgumentError

	switch {
	case errors.As(err, &notFound), errors.As(err, &refNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &invalid):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
