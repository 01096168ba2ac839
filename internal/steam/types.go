package steam

import (
	"bytes"
	"fmt"
	"strconv"
)

// AppListEntry is one {appid, name} pair from the listing endpoint.
type AppListEntry struct {
	AppID int64  `json:"appid"`
	Name  string `json:"name"`
}

// AppListEnvelope models the GetAppList response.
type AppListEnvelope struct {
	AppList struct {
		Apps []AppListEntry `json:"apps"`
	} `json:"applist"`
}

// FlexID decodes a natural id that the API serves inconsistently: categories
// carry numeric ids, genres carry the same ids as JSON strings.
type FlexID int64

// UnmarshalJSON accepts either a JSON number or a quoted integer.
func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	value, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("parse id %q: %w", data, err)
	}
	*f = FlexID(value)
	return nil
}

// TagRef is a category or genre reference inside a detail payload.
type TagRef struct {
	ID          FlexID `json:"id"`
	Description string `json:"description"`
}

// Metacritic is the nested critic-score block.
type Metacritic struct {
	Score int64  `json:"score"`
	URL   string `json:"url"`
}

// Recommendations is the nested recommendation-count block.
type Recommendations struct {
	Total int64 `json:"total"`
}

// AchievementsBlock is the nested achievement-total block.
type AchievementsBlock struct {
	Total int64 `json:"total"`
}

// ReleaseDate is the nested release-date block. Date is a human-readable
// string like "Apr 19, 2011".
type ReleaseDate struct {
	ComingSoon bool   `json:"coming_soon"`
	Date       string `json:"date"`
}

// AppData carries the detail fields for one app.
type AppData struct {
	SteamAppID        int64              `json:"steam_appid"`
	Type              string             `json:"type"`
	Name              string             `json:"name"`
	IsFree            bool               `json:"is_free"`
	ControllerSupport string             `json:"controller_support"`
	Categories        []TagRef           `json:"categories"`
	Genres            []TagRef           `json:"genres"`
	Metacritic        *Metacritic        `json:"metacritic"`
	Recommendations   *Recommendations   `json:"recommendations"`
	Achievements      *AchievementsBlock `json:"achievements"`
	ReleaseDate       *ReleaseDate       `json:"release_date"`
}

// AppEnvelope is the per-appid wrapper of the detail endpoint: success=false
// means the remote has no data for the id.
type AppEnvelope struct {
	Success bool     `json:"success"`
	Data    *AppData `json:"data"`
}

// AchievementPercentage is one global-unlock record.
type AchievementPercentage struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
}

// achievementsEnvelope models the GetGlobalAchievementPercentagesForApp response.
type achievementsEnvelope struct {
	AchievementPercentages struct {
		Achievements []AchievementPercentage `json:"achievements"`
	} `json:"achievementpercentages"`
}
