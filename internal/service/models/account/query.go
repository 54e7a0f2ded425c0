package account

// QueryAccountsModel represents filter parameters for querying accounts.
type QueryAccountsModel struct {
	Ids    []int64 `json:"ids,omitempty"`
	Limit  int     `json:"limit,omitempty"`
	Offset int     `json:"offset,omitempty"`
}
