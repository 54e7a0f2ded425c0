package order

import (
	"time"

	"github.com/rejot-dev/example-microservice/internal/service/models/orderitem"
)

// Order represents an order in the system. AccountID references an account
// owned by the accounts service and replicated into destination_accounts;
// the local schema does not enforce it.
type Order struct {
	ID              int64                 `json:"id"`
	AccountID       int64                 `json:"accountId"`
	TotalPriceCents int64                 `json:"totalPrice"`
	CreatedAt       time.Time             `json:"createdAt"`
	Items           []orderitem.OrderItem `json:"items"`
}
