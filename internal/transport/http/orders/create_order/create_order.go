package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rejot-dev/example-microservice/internal/service/models/orderitem"
	"github.com/rejot-dev/example-microservice/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	CreateOrder(ctx context.Context, accountID int64, items []orderitem.NewItem) (int64, error)
}

type request struct {
	AccountID int64               `json:"accountId"`
	Items     []orderitem.NewItem `json:"items"`
}

type response struct {
	ID int64 `json:"id"`
}

// CreateOrder handles the create order request.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for create order", "error", err)

		return
	}

	id, err := service.CreateOrder(r.Context(), req.AccountID, req.Items)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error creating order", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response{ID: id}); err != nil {
		slog.Error("Error writing response for create order", "error", err)
	}
}
