package tmdb

import (
	"context"
)

// Fetcher retrieves composite content records
type Fetcher interface {
	// Details fetches the title identified by kind and id with all
	// appended sub-resources in a single request
	Details(ctx context.Context, kind MediaKind, id string) (*ContentRecord, error)
}

var _ Fetcher = (*Client)(nil)
