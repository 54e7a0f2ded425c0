package product

// QueryProductsModel represents filter parameters for querying products.
type QueryProductsModel struct {
	Ids    []int64 `json:"ids,omitempty"`
	Limit  int     `json:"limit,omitempty"`
	Offset int     `json:"offset,omitempty"`
}
