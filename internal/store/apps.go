package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const appColumns = "pk, appid, type, is_free, name, controller_support, metacritic_score, metacritic_url, recommendations, achievements_total, release_date, created, updated"

// UpsertApp writes one canonical entry and its tag lists in a single
// transaction. Tags are resolved get-or-create by natural id; the app row is
// inserted or updated in place by appid; link tables are fully replaced.
func (s *Store) UpsertApp(ctx context.Context, app App, categories, genres []Tag) (*App, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin upsert tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	categoryPKs, err := resolveTags(ctx, tx, KindCategory, categories)
	if err != nil {
		return nil, err
	}
	genrePKs, err := resolveTags(ctx, tx, KindGenre, genres)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	var pk int64
	err = tx.QueryRowContext(ctx, "SELECT pk FROM apps WHERE appid = ?", app.AppID).Scan(&pk)
	switch {
	case err == nil:
		_, err = tx.ExecContext(ctx,
			`UPDATE apps SET
                type = ?, is_free = ?, name = ?, controller_support = ?,
                metacritic_score = ?, metacritic_url = ?, recommendations = ?,
                achievements_total = ?, release_date = ?, updated = ?
            WHERE pk = ?`,
			app.Type,
			app.IsFree,
			app.Name,
			nullableString(app.ControllerSupport),
			nullableInt(app.MetacriticScore),
			nullableString(app.MetacriticURL),
			nullableInt(app.Recommendations),
			app.AchievementsTotal,
			nullableDate(app.ReleaseDate),
			timestamp,
			pk,
		)
		if err != nil {
			return nil, fmt.Errorf("update app %d: %w", app.AppID, err)
		}
	case errors.Is(err, sql.ErrNoRows):
		res, insertErr := tx.ExecContext(ctx,
			`INSERT INTO apps (
                appid, type, is_free, name, controller_support,
                metacritic_score, metacritic_url, recommendations,
                achievements_total, release_date, created, updated
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			app.AppID,
			app.Type,
			app.IsFree,
			app.Name,
			nullableString(app.ControllerSupport),
			nullableInt(app.MetacriticScore),
			nullableString(app.MetacriticURL),
			nullableInt(app.Recommendations),
			app.AchievementsTotal,
			nullableDate(app.ReleaseDate),
			timestamp,
			timestamp,
		)
		if insertErr != nil {
			return nil, fmt.Errorf("insert app %d: %w", app.AppID, insertErr)
		}
		pk, err = res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("last insert id: %w", err)
		}
	default:
		return nil, fmt.Errorf("select app %d: %w", app.AppID, err)
	}

	if err := replaceLinks(ctx, tx, KindCategory, pk, categoryPKs); err != nil {
		return nil, err
	}
	if err := replaceLinks(ctx, tx, KindGenre, pk, genrePKs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit upsert: %w", err)
	}

	return s.GetApp(ctx, app.AppID)
}

func replaceLinks(ctx context.Context, tx *sql.Tx, kind TagKind, appPK int64, tagPKs []int64) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+kind.linkTable+" WHERE app_pk = ?", appPK); err != nil {
		return fmt.Errorf("clear %s: %w", kind.linkTable, err)
	}
	for _, tagPK := range tagPKs {
		insertSQL := "INSERT INTO " + kind.linkTable + " (app_pk, " + kind.linkCol + ") VALUES (?, ?)"
		if _, err := tx.ExecContext(ctx, insertSQL, appPK, tagPK); err != nil {
			return fmt.Errorf("link %s: %w", kind.linkTable, err)
		}
	}
	return nil
}

// GetApp loads one app by its appid, or nil when absent.
func (s *Store) GetApp(ctx context.Context, appID int64) (*App, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+appColumns+" FROM apps WHERE appid = ?", appID)
	app, err := scanApp(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get app %d: %w", appID, err)
	}
	return app, nil
}

// AppStamps returns every stored (appid, updated) pair ordered by updated
// ascending, so the longest-untouched entries come first.
func (s *Store) AppStamps(ctx context.Context) ([]AppStamp, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT appid, updated FROM apps ORDER BY updated ASC")
	if err != nil {
		return nil, fmt.Errorf("query app stamps: %w", err)
	}
	defer rows.Close()

	var stamps []AppStamp
	for rows.Next() {
		var (
			appID      int64
			updatedRaw string
		)
		if err := rows.Scan(&appID, &updatedRaw); err != nil {
			return nil, fmt.Errorf("scan app stamp: %w", err)
		}
		updated, err := parseTimestamp(updatedRaw)
		if err != nil {
			return nil, fmt.Errorf("app %d: %w", appID, err)
		}
		stamps = append(stamps, AppStamp{AppID: appID, Updated: updated})
	}
	return stamps, rows.Err()
}

func scanApp(scanner interface{ Scan(dest ...any) error }) (*App, error) {
	var (
		pk                int64
		appID             int64
		appType           string
		isFree            bool
		name              string
		controllerSupport sql.NullString
		metacriticScore   sql.NullInt64
		metacriticURL     sql.NullString
		recommendations   sql.NullInt64
		achievementsTotal int64
		releaseDateRaw    sql.NullString
		createdRaw        string
		updatedRaw        string
	)

	if err := scanner.Scan(
		&pk,
		&appID,
		&appType,
		&isFree,
		&name,
		&controllerSupport,
		&metacriticScore,
		&metacriticURL,
		&recommendations,
		&achievementsTotal,
		&releaseDateRaw,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	releaseDate, err := datePtr(releaseDateRaw)
	if err != nil {
		return nil, fmt.Errorf("parse release date: %w", err)
	}
	created, err := parseTimestamp(createdRaw)
	if err != nil {
		return nil, err
	}
	updated, err := parseTimestamp(updatedRaw)
	if err != nil {
		return nil, err
	}

	return &App{
		PK:                pk,
		AppID:             appID,
		Type:              appType,
		IsFree:            isFree,
		Name:              name,
		ControllerSupport: stringPtr(controllerSupport),
		MetacriticScore:   intPtr(metacriticScore),
		MetacriticURL:     stringPtr(metacriticURL),
		Recommendations:   intPtr(recommendations),
		AchievementsTotal: achievementsTotal,
		ReleaseDate:       releaseDate,
		Created:           created,
		Updated:           updated,
	}, nil
}
