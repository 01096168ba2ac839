package pipeline_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"steamsync/internal/pipeline"
	"steamsync/internal/steam"
)

type stubDetailer struct {
	mu       sync.Mutex
	inflight int32
	peak     int32
	fail     map[int64]error
}

func (s *stubDetailer) AppDetails(ctx context.Context, appID int64) (*steam.AppEnvelope, error) {
	current := atomic.AddInt32(&s.inflight, 1)
	defer atomic.AddInt32(&s.inflight, -1)

	s.mu.Lock()
	if current > s.peak {
		s.peak = current
	}
	err := s.fail[appID]
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return &steam.AppEnvelope{
		Success: true,
		Data:    &steam.AppData{SteamAppID: appID, Type: "game", Name: "stub"},
	}, nil
}

func TestFetchBatchResultsInInputOrder(t *testing.T) {
	fetcher := pipeline.NewFetcher(&stubDetailer{}, 3)

	ids := []int64{5, 3, 9, 1}
	results := fetcher.FetchBatch(context.Background(), ids)
	if len(results) != len(ids) {
		t.Fatalf("expected %d results, got %d", len(ids), len(results))
	}
	for i, id := range ids {
		if results[i].AppID != id {
			t.Fatalf("slot %d: got appid %d, want %d", i, results[i].AppID, id)
		}
		if results[i].Err != nil || results[i].Envelope == nil {
			t.Fatalf("unexpected result for %d: %#v", id, results[i])
		}
	}
}

func TestFetchBatchIsolatesFailures(t *testing.T) {
	detailer := &stubDetailer{fail: map[int64]error{3: errors.New("timeout")}}
	fetcher := pipeline.NewFetcher(detailer, 2)

	results := fetcher.FetchBatch(context.Background(), []int64{1, 3, 5})
	if results[0].Err != nil || results[2].Err != nil {
		t.Fatalf("sibling fetches disturbed: %#v", results)
	}
	if results[1].Err == nil {
		t.Fatal("expected error for appid 3")
	}
	if results[1].Envelope != nil {
		t.Fatalf("failed slot carries an envelope: %#v", results[1])
	}
}

func TestFetchBatchHonorsConcurrencyCap(t *testing.T) {
	detailer := &stubDetailer{}
	fetcher := pipeline.NewFetcher(detailer, 2)

	ids := make([]int64, 20)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	fetcher.FetchBatch(context.Background(), ids)

	if detailer.peak > 2 {
		t.Fatalf("concurrency cap exceeded: peak %d", detailer.peak)
	}
}
