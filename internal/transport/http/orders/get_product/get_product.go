package getproduct

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rejot-dev/example-microservice/internal/service/models/product"
	"github.com/rejot-dev/example-microservice/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	GetProduct(ctx context.Context, id int64) (*product.Product, error)
}

// GetProduct handles the get product request.
func GetProduct(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)

		return
	}

	p, err := service.GetProduct(r.Context(), id)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error getting product", "error", err, "product_id", id)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(p); err != nil {
		slog.Error("Error writing response for get product", "error", err)
	}
}
