package store

import "time"

// App is one catalog entry, keyed by its Steam appid.
type App struct {
	PK                int64
	AppID             int64
	Type              string
	IsFree            bool
	Name              string
	ControllerSupport *string
	MetacriticScore   *int64
	MetacriticURL     *string
	Recommendations   *int64
	AchievementsTotal int64
	ReleaseDate       *time.Time
	Created           time.Time
	Updated           time.Time
}

// Tag is a category or genre row. The two kinds live in separate tables with
// independently scoped natural ids but share this shape.
type Tag struct {
	PK          int64
	ID          int64
	Description string
}

// TagKind selects which reference-tag table an operation targets.
type TagKind struct {
	table     string
	linkTable string
	linkCol   string
}

var (
	// KindCategory addresses the categories table.
	KindCategory = TagKind{table: "categories", linkTable: "app_categories", linkCol: "category_pk"}
	// KindGenre addresses the genres table.
	KindGenre = TagKind{table: "genres", linkTable: "app_genres", linkCol: "genre_pk"}
)

// Achievement is one global-unlock record belonging to an app.
type Achievement struct {
	PK      int64
	AppPK   int64
	Name    string
	Percent float64
}

// QuarantineRecord marks an appid as permanently failing.
type QuarantineRecord struct {
	PK      int64
	AppID   int64
	Name    *string
	Reason  *string
	Created time.Time
}

// AppStamp pairs an appid with its last update time, for staleness selection.
type AppStamp struct {
	AppID   int64
	Updated time.Time
}
