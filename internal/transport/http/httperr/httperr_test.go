package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rejot-dev/example-microservice/internal/service/models/apperrors"
)

func TestWriteStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"resource not found", apperrors.NewResourceNotFound(apperrors.KindOrder, 1), http.StatusNotFound},
		{"reference not found", apperrors.NewReferenceNotFound(apperrors.KindAccount, 1), http.StatusNotFound},
		{"invalid argument", apperrors.NewInvalidArgument("bad input"), http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped service error", fmt.Errorf("create order: %w", apperrors.NewReferenceNotFound(apperrors.KindProducts, 2, 3)), http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			Write(rec, tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}
