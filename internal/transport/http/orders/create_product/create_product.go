package createproduct

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rejot-dev/example-microservice/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	CreateProduct(ctx context.Context, name string, description *string, priceCents int64) (int64, error)
}

type request struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       int64   `json:"price"`
}

type response struct {
	ID int64 `json:"id"`
}

// CreateProduct handles the create product request.
func CreateProduct(w http.ResponseWriter, r *http.Request, service service) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for create product", "error", err)

		return
	}

	id, err := service.CreateProduct(r.Context(), req.Name, req.Description, req.Price)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error creating product", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response{ID: id}); err != nil {
		slog.Error("Error writing response for create product", "error", err)
	}
}
