package getaccount

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rejot-dev/example-microservice/internal/service/models/account"
	"github.com/rejot-dev/example-microservice/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	GetAccount(ctx context.Context, id int64) (*account.Account, error)
}

type response struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GetAccount handles the get account request. The response carries the
// public shape of the account; email stays internal.
func GetAccount(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid account id", http.StatusBadRequest)

		return
	}

	a, err := service.GetAccount(r.Context(), id)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error getting account", "error", err, "account_id", id)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response{ID: a.ID, Name: a.Name}); err != nil {
		slog.Error("Error writing response for get account", "error", err)
	}
}
