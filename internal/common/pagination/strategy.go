package pagination

// PaginationStrategy defines how page parameters translate into a store query
// and how metadata is derived from the result.
type PaginationStrategy interface {
	// CalculateQuery returns the offset and limit for the page.
	CalculateQuery(params Params) QueryParams

	// BuildMetadata constructs pagination metadata from the total item count.
	BuildMetadata(params Params, total int64) Metadata
}

// QueryParams represents the calculated query parameters for store queries.
type QueryParams struct {
	Offset int
	Limit  int
}

// OffsetStrategy implements skip/limit pagination.
type OffsetStrategy struct{}

// CalculateQuery calculates offset and limit for offset-based pagination.
func (s OffsetStrategy) CalculateQuery(params Params) QueryParams {
	return QueryParams{
		Offset: CalculateOffset(params.Page, params.Limit),
		Limit:  params.Limit,
	}
}

// BuildMetadata constructs pagination metadata for offset-based pagination.
func (s OffsetStrategy) BuildMetadata(params Params, total int64) Metadata {
	return Metadata{
		CurrentPage:     params.Page,
		TotalPages:      CalculateTotalPages(total, params.Limit),
		TotalArticles:   total,
		HasNextPage:     HasNextPage(params.Page, params.Limit, total),
		HasPreviousPage: HasPreviousPage(params.Page),
		Limit:           params.Limit,
	}
}
