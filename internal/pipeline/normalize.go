package pipeline

import (
	"time"

	"steamsync/internal/steam"
	"steamsync/internal/store"
)

// releaseDateLayout matches the storefront's human-readable date strings,
// e.g. "Apr 19, 2011".
const releaseDateLayout = "Jan 2, 2006"

// Quarantine reasons for the three permanent payload failures.
const (
	ReasonNoData     = "remote reports no data"
	ReasonIDMismatch = "id mismatch"
	ReasonMalformed  = "malformed record"
)

// Canonical is a normalized entry ready for upsert, with its deduplicated
// tag lists.
type Canonical struct {
	App        store.App
	Categories []store.Tag
	Genres     []store.Tag
}

// Normalize validates one detail envelope and converts it into canonical
// form. A nil Fault means the entry is writable; a non-nil Fault is a
// permanent failure that belongs in the quarantine ledger.
//
// Validation order matters: the success flag first, then the embedded id
// against the requested one (guarding against corrupt or redirected
// responses), then the required scalars.
func Normalize(appID int64, envelope *steam.AppEnvelope) (*Canonical, *Fault) {
	if envelope == nil || !envelope.Success {
		return nil, &Fault{AppID: appID, Reason: ReasonNoData}
	}
	data := envelope.Data
	if data == nil {
		return nil, &Fault{AppID: appID, Reason: ReasonMalformed}
	}
	if data.SteamAppID != appID {
		return nil, &Fault{AppID: appID, Reason: ReasonIDMismatch}
	}
	if data.Type == "" || data.Name == "" {
		return nil, &Fault{AppID: appID, Reason: ReasonMalformed}
	}

	app := store.App{
		AppID:       appID,
		Type:        data.Type,
		IsFree:      data.IsFree,
		Name:        data.Name,
		ReleaseDate: parseReleaseDate(data.ReleaseDate),
	}
	if data.ControllerSupport != "" {
		support := data.ControllerSupport
		app.ControllerSupport = &support
	}
	if data.Metacritic != nil {
		score := data.Metacritic.Score
		app.MetacriticScore = &score
		if data.Metacritic.URL != "" {
			url := data.Metacritic.URL
			app.MetacriticURL = &url
		}
	}
	if data.Recommendations != nil {
		total := data.Recommendations.Total
		app.Recommendations = &total
	}
	if data.Achievements != nil {
		app.AchievementsTotal = data.Achievements.Total
	}

	return &Canonical{
		App:        app,
		Categories: dedupeTags(data.Categories),
		Genres:     dedupeTags(data.Genres),
	}, nil
}

// dedupeTags keeps the first occurrence of each natural id; payloads can
// list the same tag twice.
func dedupeTags(refs []steam.TagRef) []store.Tag {
	if len(refs) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(refs))
	tags := make([]store.Tag, 0, len(refs))
	for _, ref := range refs {
		id := int64(ref.ID)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		tags = append(tags, store.Tag{ID: id, Description: ref.Description})
	}
	return tags
}

// parseReleaseDate is best-effort: unparsable or coming-soon dates yield nil,
// never a failure.
func parseReleaseDate(block *steam.ReleaseDate) *time.Time {
	if block == nil || block.ComingSoon || block.Date == "" {
		return nil
	}
	parsed, err := time.Parse(releaseDateLayout, block.Date)
	if err != nil {
		return nil
	}
	return &parsed
}
