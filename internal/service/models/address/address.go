package address

import "time"

// Address represents a postal address attached to an account.
type Address struct {
	ID            int64     `json:"id"`
	AccountID     int64     `json:"accountId"`
	StreetAddress string    `json:"streetAddress"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	PostalCode    string    `json:"postalCode"`
	Country       string    `json:"country"`
	CreatedAt     time.Time `json:"createdAt"`
}

// DisplayLabel is the public projection of an address: a derived display
// label rather than the raw address fields.
func (a *Address) DisplayLabel() string {
	return a.StreetAddress + ", " + a.City
}
