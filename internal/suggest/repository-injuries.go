package suggest

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkoskela/liftapp/internal/contexthelpers"
	"github.com/mkoskela/liftapp/internal/sqlite"
)

// sqliteInjuryRepository reads the user's injury state. Active injuries come
// from two places: the stored injury history and the most recent pre-workout
// check-in payload.
type sqliteInjuryRepository struct {
	baseRepository
	logger *slog.Logger
}

func newSQLiteInjuryRepository(db *sqlite.Database, logger *slog.Logger) *sqliteInjuryRepository {
	return &sqliteInjuryRepository{
		baseRepository: newBaseRepository(db),
		logger:         logger,
	}
}

// checkinPayload is the JSON shape stored on a session's check-in.
type checkinPayload struct {
	Injuries []struct {
		BodyRegion string   `json:"body_region"`
		Severity   Severity `json:"severity"`
		Side       string   `json:"side"`
	} `json:"injuries"`
}

// ListActive returns the union of stored active injuries and those reported
// in the latest check-in, deduplicated by body region. The stored record wins
// on duplicates.
func (r *sqliteInjuryRepository) ListActive(ctx context.Context) (_ []Injury, err error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, body_region, severity, side, onset_date
		FROM injuries
		WHERE user_id = ? AND active = TRUE
		ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query injuries: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var injuries []Injury
	seen := make(map[string]bool)
	for rows.Next() {
		var (
			injury    Injury
			side      sql.NullString
			onsetDate string
		)
		if err = rows.Scan(&injury.ID, &injury.BodyRegion, &injury.Severity, &side, &onsetDate); err != nil {
			return nil, fmt.Errorf("scan injury: %w", err)
		}
		injury.Side = side.String
		injury.Active = true
		if injury.OnsetDate, err = time.Parse(dateFormat, onsetDate); err != nil {
			return nil, fmt.Errorf("parse onset date %q: %w", onsetDate, err)
		}
		injuries = append(injuries, injury)
		seen[normalizeRegion(injury.BodyRegion)] = true
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	checkinInjuries, err := r.latestCheckinInjuries(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest checkin injuries: %w", err)
	}
	for _, injury := range checkinInjuries {
		if seen[normalizeRegion(injury.BodyRegion)] {
			continue
		}
		seen[normalizeRegion(injury.BodyRegion)] = true
		injuries = append(injuries, injury)
	}

	return injuries, nil
}

// latestCheckinInjuries parses injuries out of the most recent check-in. A
// missing or malformed payload yields no injuries; malformed is logged since
// the payload is written by our own UI.
func (r *sqliteInjuryRepository) latestCheckinInjuries(ctx context.Context) ([]Injury, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	var checkinJSON string
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT checkin_json
		FROM workout_sessions
		WHERE user_id = ? AND checkin_json IS NOT NULL
		ORDER BY workout_date DESC
		LIMIT 1`, userID).Scan(&checkinJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest checkin: %w", err)
	}

	var payload checkinPayload
	if err = json.Unmarshal([]byte(checkinJSON), &payload); err != nil {
		r.logger.LogAttrs(ctx, slog.LevelWarn, "malformed checkin payload",
			slog.String("error", err.Error()))
		return nil, nil
	}

	injuries := make([]Injury, 0, len(payload.Injuries))
	for _, reported := range payload.Injuries {
		injuries = append(injuries, Injury{
			ID:         0,
			BodyRegion: reported.BodyRegion,
			Severity:   reported.Severity,
			Side:       reported.Side,
			Active:     true,
			OnsetDate:  time.Time{},
		})
	}
	return injuries, nil
}
