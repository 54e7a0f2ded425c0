package listevents

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rejot-dev/example-microservice/internal/service/models/event"
	"github.com/rejot-dev/example-microservice/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	GetEvents(ctx context.Context) ([]event.Event, error)
}

// ListEvents handles the list events request. The response is most recently
// appended first; polling consumers rely on new items being at the front.
func ListEvents(w http.ResponseWriter, r *http.Request, service service) {
	events, err := service.GetEvents(r.Context())
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error getting events", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(events); err != nil {
		slog.Error("Error writing response for list events", "error", err)
	}
}
