package listproducts

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rejot-dev/example-microservice/internal/service/models/product"
	"github.com/rejot-dev/example-microservice/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	GetProducts(ctx context.Context) ([]product.Product, error)
}

// ListProducts handles the list products request.
func ListProducts(w http.ResponseWriter, r *http.Request, service service) {
	products, err := service.GetProducts(r.Context())
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error getting products", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(products); err != nil {
		slog.Error("Error writing response for list products", "error", err)
	}
}
