package refaccount

import "time"

// DestinationAccount is an account owned by the accounts service, made
// locally readable through asynchronous replication. Rows are written only
// by the external replicator; this service never mutates them. SyncedAt is
// the last successful replication tick and is surfaced for staleness
// display only.
type DestinationAccount struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	SyncedAt  time.Time `json:"syncedAt"`
}
