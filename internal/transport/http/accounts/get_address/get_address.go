package getaddress

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rejot-dev/example-microservice/internal/service/models/address"
	"github.com/rejot-dev/example-microservice/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	GetAddress(ctx context.Context, id int64) (*address.Address, error)
}

// GetAddress handles the get address request.
func GetAddress(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid address id", http.StatusBadRequest)

		return
	}

	a, err := service.GetAddress(r.Context(), id)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error getting address", "error", err, "address_id", id)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a); err != nil {
		slog.Error("Error writing response for get address", "error", err)
	}
}
