package detail

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultBatchConcurrency bounds concurrent loads in LoadMany
const DefaultBatchConcurrency = 4

// LoadMany loads every key through its own coordinator, with at most
// concurrency loads in flight, and returns the resulting views in key order
// with tab selected. Failed loads are reported in their View, not as an
// error; the error is only non-nil when ctx ends first.
func LoadMany(ctx context.Context, keys []Key, tab Tab, concurrency int, newCoordinator func() *Coordinator) ([]View, error) {
	if !tab.Valid() {
		return nil, ErrInvalidTab
	}
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	views := make([]View, len(keys))
	if len(keys) == 0 {
		return views, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var mu sync.Mutex

	for i, key := range keys {
		g.Go(func() error {
			c := newCoordinator()
			defer c.Close()

			c.Activate(gctx, key)
			if err := c.Wait(gctx); err != nil {
				return err
			}
			if _, err := c.Select(int(tab)); err != nil {
				return err
			}

			v := c.Snapshot()
			mu.Lock()
			views[i] = v
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// A fetch may resolve as failed just as ctx ends
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return views, nil
}
