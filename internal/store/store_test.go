package store_test

import (
	"context"
	"testing"
	"time"

	"steamsync/internal/store"
	"steamsync/internal/testsupport"
)

func sampleApp(appID int64, name string) store.App {
	return store.App{
		AppID: appID,
		Type:  "game",
		Name:  name,
	}
}

func TestUpsertAppInsertThenUpdate(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	app := sampleApp(620, "Portal 2")
	score := int64(95)
	app.MetacriticScore = &score

	first, err := st.UpsertApp(ctx, app, nil, nil)
	if err != nil {
		t.Fatalf("UpsertApp insert: %v", err)
	}
	if first.PK == 0 || first.Created.IsZero() || first.Updated.IsZero() {
		t.Fatalf("identity not resolved: %#v", first)
	}
	if first.MetacriticScore == nil || *first.MetacriticScore != 95 {
		t.Fatalf("metacritic score lost: %#v", first.MetacriticScore)
	}

	time.Sleep(2 * time.Millisecond)
	app.Name = "Portal 2 (updated)"
	app.MetacriticScore = nil
	second, err := st.UpsertApp(ctx, app, nil, nil)
	if err != nil {
		t.Fatalf("UpsertApp update: %v", err)
	}
	if second.PK != first.PK {
		t.Fatalf("update created a new row: pk %d vs %d", second.PK, first.PK)
	}
	if second.Name != "Portal 2 (updated)" {
		t.Fatalf("name not overwritten: %q", second.Name)
	}
	if second.MetacriticScore != nil {
		t.Fatal("expected metacritic score cleared on update")
	}
	if !second.Created.Equal(first.Created) {
		t.Fatalf("created changed on update: %v vs %v", second.Created, first.Created)
	}
	if !second.Updated.After(first.Updated) {
		t.Fatalf("updated not advanced: %v vs %v", second.Updated, first.Updated)
	}
}

func TestSharedTagDedupAcrossApps(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	action := []store.Tag{{ID: 1, Description: "Action"}}
	if _, err := st.UpsertApp(ctx, sampleApp(10, "First"), nil, action); err != nil {
		t.Fatalf("UpsertApp first: %v", err)
	}
	if _, err := st.UpsertApp(ctx, sampleApp(20, "Second"), nil, action); err != nil {
		t.Fatalf("UpsertApp second: %v", err)
	}

	firstTags, err := st.AppTags(ctx, store.KindGenre, 10)
	if err != nil {
		t.Fatalf("AppTags first: %v", err)
	}
	secondTags, err := st.AppTags(ctx, store.KindGenre, 20)
	if err != nil {
		t.Fatalf("AppTags second: %v", err)
	}
	if len(firstTags) != 1 || len(secondTags) != 1 {
		t.Fatalf("expected one genre each, got %d and %d", len(firstTags), len(secondTags))
	}
	if firstTags[0].PK != secondTags[0].PK {
		t.Fatalf("genre duplicated: pk %d vs %d", firstTags[0].PK, secondTags[0].PK)
	}
}

func TestUpsertAppReplacesLinks(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	initial := []store.Tag{
		{ID: 2, Description: "Single-player"},
		{ID: 22, Description: "Steam Achievements"},
	}
	if _, err := st.UpsertApp(ctx, sampleApp(400, "Portal"), initial, nil); err != nil {
		t.Fatalf("UpsertApp initial: %v", err)
	}

	replacement := []store.Tag{{ID: 2, Description: "Single-player"}}
	if _, err := st.UpsertApp(ctx, sampleApp(400, "Portal"), replacement, nil); err != nil {
		t.Fatalf("UpsertApp replacement: %v", err)
	}

	tags, err := st.AppTags(ctx, store.KindCategory, 400)
	if err != nil {
		t.Fatalf("AppTags: %v", err)
	}
	if len(tags) != 1 || tags[0].ID != 2 {
		t.Fatalf("links not replaced: %#v", tags)
	}
}

func TestTagKindsAreIndependentlyScoped(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	categories := []store.Tag{{ID: 1, Description: "Multi-player"}}
	genres := []store.Tag{{ID: 1, Description: "Action"}}
	if _, err := st.UpsertApp(ctx, sampleApp(70, "Half-Life"), categories, genres); err != nil {
		t.Fatalf("UpsertApp: %v", err)
	}

	gotCategories, err := st.AppTags(ctx, store.KindCategory, 70)
	if err != nil {
		t.Fatalf("AppTags categories: %v", err)
	}
	gotGenres, err := st.AppTags(ctx, store.KindGenre, 70)
	if err != nil {
		t.Fatalf("AppTags genres: %v", err)
	}
	if gotCategories[0].Description != "Multi-player" || gotGenres[0].Description != "Action" {
		t.Fatalf("tag kinds collided: %#v %#v", gotCategories, gotGenres)
	}
}

func TestAppStampsOrderedByUpdated(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if _, err := st.UpsertApp(ctx, sampleApp(1, "Older"), nil, nil); err != nil {
		t.Fatalf("UpsertApp: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := st.UpsertApp(ctx, sampleApp(2, "Newer"), nil, nil); err != nil {
		t.Fatalf("UpsertApp: %v", err)
	}

	stamps, err := st.AppStamps(ctx)
	if err != nil {
		t.Fatalf("AppStamps: %v", err)
	}
	if len(stamps) != 2 || stamps[0].AppID != 1 || stamps[1].AppID != 2 {
		t.Fatalf("unexpected stamp order: %#v", stamps)
	}
	if !stamps[0].Updated.Before(stamps[1].Updated) {
		t.Fatalf("stamps not ascending: %#v", stamps)
	}
}

func TestQuarantineIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if err := st.RecordQuarantine(ctx, 999, "Broken App", "remote reports no data"); err != nil {
		t.Fatalf("RecordQuarantine: %v", err)
	}
	if err := st.RecordQuarantine(ctx, 999, "Broken App", "a different reason"); err != nil {
		t.Fatalf("RecordQuarantine repeat: %v", err)
	}

	records, err := st.Quarantined(ctx)
	if err != nil {
		t.Fatalf("Quarantined: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one ledger row, got %d", len(records))
	}
	if records[0].Reason == nil || *records[0].Reason != "remote reports no data" {
		t.Fatalf("original reason not preserved: %#v", records[0].Reason)
	}

	quarantined, err := st.IsQuarantined(ctx, 999)
	if err != nil {
		t.Fatalf("IsQuarantined: %v", err)
	}
	if !quarantined {
		t.Fatal("expected appid 999 to be quarantined")
	}
}

func TestUpsertAchievementsKeyedByAppAndName(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	app, err := st.UpsertApp(ctx, sampleApp(220, "Half-Life 2"), nil, nil)
	if err != nil {
		t.Fatalf("UpsertApp: %v", err)
	}

	initial := []store.Achievement{
		{Name: "HL2_HIT_CANCOP_WITHCAN", Percent: 52.9},
		{Name: "HL2_KILL_ODESSAGUNSHIP", Percent: 31.4},
	}
	if err := st.UpsertAchievements(ctx, app.PK, initial); err != nil {
		t.Fatalf("UpsertAchievements: %v", err)
	}

	refreshed := []store.Achievement{{Name: "HL2_HIT_CANCOP_WITHCAN", Percent: 53.1}}
	if err := st.UpsertAchievements(ctx, app.PK, refreshed); err != nil {
		t.Fatalf("UpsertAchievements refresh: %v", err)
	}

	achievements, err := st.AppAchievements(ctx, app.PK)
	if err != nil {
		t.Fatalf("AppAchievements: %v", err)
	}
	if len(achievements) != 2 {
		t.Fatalf("expected two achievements, got %d", len(achievements))
	}
	if achievements[0].Percent != 53.1 {
		t.Fatalf("percent not refreshed: %#v", achievements[0])
	}
}

func TestStatsCountsRelations(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if _, err := st.UpsertApp(ctx, sampleApp(500, "Left 4 Dead"),
		[]store.Tag{{ID: 1, Description: "Multi-player"}},
		[]store.Tag{{ID: 1, Description: "Action"}}); err != nil {
		t.Fatalf("UpsertApp: %v", err)
	}
	if err := st.RecordQuarantine(ctx, 501, "", "malformed record"); err != nil {
		t.Fatalf("RecordQuarantine: %v", err)
	}

	stats, err := st.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Apps != 1 || stats.Categories != 1 || stats.Genres != 1 || stats.Quarantined != 1 {
		t.Fatalf("unexpected stats: %#v", stats)
	}
	if stats.LastUpdated.IsZero() {
		t.Fatal("expected last updated timestamp")
	}
}

func TestQuarantineEmptyNameStoredAsNull(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if err := st.RecordQuarantine(ctx, 700, "", "malformed record"); err != nil {
		t.Fatalf("RecordQuarantine: %v", err)
	}
	if err := st.RecordQuarantine(ctx, 701, "Named App", "id mismatch"); err != nil {
		t.Fatalf("RecordQuarantine: %v", err)
	}

	records, err := st.Quarantined(ctx)
	if err != nil {
		t.Fatalf("Quarantined: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Name != nil {
		t.Fatalf("expected nil name for empty entry, got %q", *records[0].Name)
	}
	if records[1].Name == nil || *records[1].Name != "Named App" {
		t.Fatalf("expected name to round-trip, got %v", records[1].Name)
	}
}
