package listdestinationaccounts

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rejot-dev/example-microservice/internal/service/models/refaccount"
	"github.com/rejot-dev/example-microservice/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	GetDestinationAccounts(ctx context.Context) ([]refaccount.DestinationAccount, error)
}

// ListDestinationAccounts handles the list destination accounts request.
// The rows come from the replicated reference view and may lag behind the
// accounts service.
func ListDestinationAccounts(w http.ResponseWriter, r *http.Request, service service) {
	accounts, err := service.GetDestinationAccounts(r.Context())
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error getting destination accounts", "error", err)

		return
	}

	if accounts == nil {
		accounts = []refaccount.DestinationAccount{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(accounts); err != nil {
		slog.Error("Error writing response for list destination accounts", "error", err)
	}
}
