package createaddress

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rejot-dev/example-microservice/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	CreateAddress(ctx context.Context, accountID int64, streetAddress, city, state, postalCode, country string) (int64, error)
}

type request struct {
	AccountID     int64  `json:"accountId"`
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postalCode"`
	Country       string `json:"country"`
}

type response struct {
	ID int64 `json:"id"`
}

// CreateAddress handles the create address request.
func CreateAddress(w http.ResponseWriter, r *http.Request, service service) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for create address", "error", err)

		return
	}

	id, err := service.CreateAddress(
		r.Context(),
		req.AccountID,
		req.StreetAddress,
		req.City,
		req.State,
		req.PostalCode,
		req.Country,
	)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error creating address", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response{ID: id}); err != nil {
		slog.Error("Error writing response for create address", "error", err)
	}
}
