package pagination

// Metadata contains pagination metadata included in API responses.
type Metadata struct {
	CurrentPage     int   `json:"currentPage"`
	TotalPages      int   `json:"totalPages"`
	TotalArticles   int64 `json:"totalArticles"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
	Limit           int   `json:"limit"`
}
