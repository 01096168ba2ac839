package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"steamsync/internal/steam"
)

// Detailer fetches one app's detail payload.
type Detailer interface {
	AppDetails(ctx context.Context, appID int64) (*steam.AppEnvelope, error)
}

// FetchResult is one id's raw outcome from a batch fetch: an envelope or a
// transport error, never both.
type FetchResult struct {
	AppID    int64
	Envelope *steam.AppEnvelope
	Err      error
}

// Fetcher executes bounded-concurrency detail fetches. It never sleeps
// between batches; inter-batch pacing belongs to the driver.
type Fetcher struct {
	client      Detailer
	concurrency int
}

// NewFetcher creates a Fetcher issuing at most concurrency requests at once.
func NewFetcher(client Detailer, concurrency int) *Fetcher {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Fetcher{client: client, concurrency: concurrency}
}

// FetchBatch fetches every id and returns one result per id, in input order.
// A failed request records its error in that id's slot and never disturbs
// sibling fetches.
func (f *Fetcher) FetchBatch(ctx context.Context, ids []int64) []FetchResult {
	results := make([]FetchResult, len(ids))

	var group errgroup.Group
	group.SetLimit(f.concurrency)
	for i, appID := range ids {
		group.Go(func() error {
			envelope, err := f.client.AppDetails(ctx, appID)
			results[i] = FetchResult{AppID: appID, Envelope: envelope, Err: err}
			return nil
		})
	}
	_ = group.Wait()

	return results
}
