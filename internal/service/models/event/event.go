package event

import (
	"encoding/json"
	"time"
)

// Operation identifies the kind of mutation an event records.
type Operation string

const (
	OperationInsert Operation = "INSERT"
)

// Schema versions of the public projections emitted by this service.
const (
	SchemaAccounts  = "accounts"
	SchemaAddresses = "addresses"

	SchemaMajorVersion = 1
	SchemaMinorVersion = 0
)

// Event is one record of the append-only mutation log. Events are immutable
// once appended; the log is the permanent record of every local mutation
// that has a public projection. Object carries the projection, not the raw
// entity.
type Event struct {
	ID                       int64           `json:"-"`
	TransactionID            string          `json:"transaction_id"`
	OperationIdx             int             `json:"operation_idx"`
	Operation                Operation       `json:"operation"`
	PublicSchemaName         string          `json:"public_schema_name"`
	PublicSchemaMajorVersion int             `json:"public_schema_major_version"`
	PublicSchemaMinorVersion int             `json:"public_schema_minor_version"`
	Object                   json.RawMessage `json:"object"`
	CreatedAt                time.Time       `json:"created_at"`
	ManifestSlug             string          `json:"manifest_slug"`
}
