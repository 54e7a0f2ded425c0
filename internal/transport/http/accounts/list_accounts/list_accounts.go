package listaccounts

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rejot-dev/example-microservice/internal/service/models/account"
	"github.com/rejot-dev/example-microservice/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	GetAccounts(ctx context.Context) ([]account.Account, error)
}

type accountView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ListAccounts handles the list accounts request.
func ListAccounts(w http.ResponseWriter, r *http.Request, service service) {
	accounts, err := service.GetAccounts(r.Context())
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error getting accounts", "error", err)

		return
	}

	views := make([]accountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, accountView{ID: a.ID, Name: a.Name})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(views); err != nil {
		slog.Error("Error writing response for list accounts", "error", err)
	}
}
