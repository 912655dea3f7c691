package order

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// batchConcurrency bounds the per-item requests a bulk operation runs at once.
const batchConcurrency = 8

type ItemResult struct {
	ID    int64  `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Err   error  `json:"-"`
}

// BatchResult reports every item of a bulk operation. Items are independent:
// some may succeed while others fail, and nothing is rolled back.
type BatchResult struct {
	Items []ItemResult `json:"items"`
}

func (b BatchResult) Succeeded() int {
	n := 0
	for _, it := range b.Items {
		if it.OK {
			n++
		}
	}
	return n
}

func (b BatchResult) Failed() int {
	return len(b.Items) - b.Succeeded()
}

func (b BatchResult) FailedIDs() []int64 {
	var ids []int64
	for _, it := range b.Items {
		if !it.OK {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

// runBatch applies fn to every id concurrently and collects the outcome per id,
// in input order. A failing item never stops the others.
func runBatch(ctx context.Context, ids []int64, fn func(ctx context.Context, id int64) error) BatchResult {
	results := make([]ItemResult, len(ids))

	var g errgroup.Group
	g.SetLimit(batchConcurrency)

	for i, id := range ids {
		g.Go(func() error {
			res := ItemResult{ID: id, OK: true}
			if err := fn(ctx, id); err != nil {
				res = ItemResult{ID: id, Error: err.Error(), Err: err}
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	return BatchResult{Items: results}
}
