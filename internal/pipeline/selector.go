package pipeline

import (
	"sort"
	"time"

	"steamsync/internal/store"
)

// SelectWork computes the ordered appid sequence to fetch this run: ids the
// remote knows but the store doesn't, followed by stored ids whose last
// update is older than staleAfter. Quarantined ids are excluded from both
// groups. Missing ids sort ascending for determinism; stale ids keep the
// stamps' order, ascending by last update, so the longest-untouched entries
// refresh first. Pure, no side effects.
func SelectWork(remote map[int64]string, local []store.AppStamp, quarantined map[int64]struct{}, now time.Time, staleAfter time.Duration) []int64 {
	known := make(map[int64]struct{}, len(local))
	for _, stamp := range local {
		known[stamp.AppID] = struct{}{}
	}

	var missing []int64
	for appID := range remote {
		if _, ok := known[appID]; ok {
			continue
		}
		if _, ok := quarantined[appID]; ok {
			continue
		}
		missing = append(missing, appID)
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })

	work := missing
	for _, stamp := range local {
		if now.Sub(stamp.Updated) <= staleAfter {
			continue
		}
		if _, ok := quarantined[stamp.AppID]; ok {
			continue
		}
		work = append(work, stamp.AppID)
	}
	return work
}
