package createaccount

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rejot-dev/example-microservice/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	CreateAccount(ctx context.Context, name, email string) (int64, error)
}

type request struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type response struct {
	ID int64 `json:"id"`
}

// CreateAccount handles the create account request. The email is persisted
// but never projected into the mutation log.
func CreateAccount(w http.ResponseWriter, r *http.Request, service service) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for create account", "error", err)

		return
	}

	id, err := service.CreateAccount(r.Context(), req.Name, req.Email)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error creating account", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response{ID: id}); err != nil {
		slog.Error("Error writing response for create account", "error", err)
	}
}
