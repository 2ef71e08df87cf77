package suggest_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mkoskela/liftapp/internal/contexthelpers"
	"github.com/mkoskela/liftapp/internal/ptr"
	"github.com/mkoskela/liftapp/internal/sqlite"
	"github.com/mkoskela/liftapp/internal/suggest"
	"github.com/mkoskela/liftapp/internal/testhelpers"
)

// newTestService spins up an in-memory database seeded with the fixture
// catalog, inserts a user, and returns an authenticated context for them.
func newTestService(t *testing.T) (*suggest.Service, context.Context, *sqlite.Database) {
	t.Helper()
	ctx := t.Context()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))

	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("create test database: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := db.Close(); closeErr != nil {
			t.Errorf("close database: %v", closeErr)
		}
	})

	result, err := db.ReadWrite.ExecContext(ctx,
		"INSERT INTO users (display_name) VALUES (?)", "Test User")
	if err != nil {
		t.Fatalf("insert test user: %v", err)
	}
	userID, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("last insert id: %v", err)
	}

	authCtx := context.WithValue(ctx, contexthelpers.IsAuthenticatedContextKey, true)
	authCtx = context.WithValue(authCtx, contexthelpers.AuthenticatedUserIDContextKey, int(userID))

	return suggest.NewService(db, logger, ""), authCtx, db
}

func TestService_Suggest(t *testing.T) {
	svc, ctx, _ := newTestService(t)

	suggestion, err := svc.Suggest(ctx)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}

	if len(suggestion.Muscles) != 3 {
		t.Errorf("selected %d muscles for the default 60min session, want 3", len(suggestion.Muscles))
	}
	if len(suggestion.ExerciseIDs) == 0 {
		t.Error("empty exercise selection")
	}
	if suggestion.Summary == "" {
		t.Error("empty summary")
	}
}

func TestService_Suggest_RequiresAuth(t *testing.T) {
	svc, _, _ := newTestService(t)

	if _, err := svc.Suggest(t.Context()); !errors.Is(err, suggest.ErrNotAuthenticated) {
		t.Errorf("err = %v, want ErrNotAuthenticated", err)
	}
}

func TestService_Suggest_HonorsPreferences(t *testing.T) {
	svc, ctx, _ := newTestService(t)

	// Archive every S and A tier exercise and make sure none slip through.
	exercises, err := svc.ListExercises(ctx)
	if err != nil {
		t.Fatalf("ListExercises: %v", err)
	}
	archived := map[int]bool{}
	for _, exercise := range exercises {
		if exercise.Tier == suggest.TierS || exercise.Tier == suggest.TierA {
			if err = svc.SetPreference(ctx, exercise.ID, suggest.PreferenceArchived); err != nil {
				t.Fatalf("SetPreference: %v", err)
			}
			archived[exercise.ID] = true
		}
	}

	suggestion, err := svc.Suggest(ctx)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	for _, id := range suggestion.ExerciseIDs {
		if archived[id] {
			t.Errorf("archived exercise %d appeared in selection", id)
		}
	}
}

func TestService_PlanAndCompleteSession(t *testing.T) {
	svc, ctx, _ := newTestService(t)

	suggestion, err := svc.Suggest(ctx)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}

	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	session, overBudget, err := svc.PlanSession(ctx, date, suggestion.ExerciseIDs)
	if err != nil {
		t.Fatalf("PlanSession: %v", err)
	}
	if len(session.Exercises) != len(suggestion.ExerciseIDs) {
		t.Errorf("planned %d exercises, want %d", len(session.Exercises), len(suggestion.ExerciseIDs))
	}
	for _, exercise := range session.Exercises {
		if exercise.TargetSets != 3 {
			t.Errorf("target sets = %d, want 3", exercise.TargetSets)
		}
		if exercise.RestSeconds <= 0 {
			t.Errorf("rest seconds = %d, want positive", exercise.RestSeconds)
		}
	}
	// A suggestion sized by the engine should fit the configured duration,
	// but an over-budget plan must still have been stored.
	stored, err := svc.GetSession(ctx, date)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if stored.Completed() {
		t.Error("freshly planned session already completed")
	}
	_ = overBudget

	if err = svc.CompleteSession(ctx, date); err != nil {
		t.Fatalf("CompleteSession: %v", err)
	}
	stored, err = svc.GetSession(ctx, date)
	if err != nil {
		t.Fatalf("GetSession after completion: %v", err)
	}
	if !stored.Completed() {
		t.Error("session not marked completed")
	}
}

func TestService_PlanSession_OverBudgetFlag(t *testing.T) {
	svc, ctx, _ := newTestService(t)

	if err := svc.SetProfile(ctx, suggest.Profile{
		Goal:           suggest.GoalBulk,
		SessionMinutes: 15,
		GymLocationID:  nil,
	}); err != nil {
		t.Fatalf("SetProfile: %v", err)
	}

	exercises, err := svc.ListExercises(ctx)
	if err != nil {
		t.Fatalf("ListExercises: %v", err)
	}
	ids := make([]int, 0, 6)
	for _, exercise := range exercises[:6] {
		ids = append(ids, exercise.ID)
	}

	date := time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC)
	session, overBudget, err := svc.PlanSession(ctx, date, ids)
	if err != nil {
		t.Fatalf("PlanSession: %v", err)
	}
	if !overBudget {
		t.Error("six exercises in 15 minutes not flagged over budget")
	}
	if len(session.Exercises) != 6 {
		t.Errorf("over-budget plan truncated to %d exercises", len(session.Exercises))
	}
}

func TestService_Checkin_FeedsInjuries(t *testing.T) {
	svc, ctx, _ := newTestService(t)

	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	if _, _, err := svc.PlanSession(ctx, date, []int{1}); err != nil {
		t.Fatalf("PlanSession: %v", err)
	}
	checkin := `{"injuries":[{"body_region":"knee","severity":"severe","side":"left"}]}`
	if err := svc.SaveCheckin(ctx, date, checkin); err != nil {
		t.Fatalf("SaveCheckin: %v", err)
	}

	suggestion, err := svc.Suggest(ctx)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}

	// A severe knee reported at check-in must keep squats out.
	exercises, err := svc.ListExercises(ctx)
	if err != nil {
		t.Fatalf("ListExercises: %v", err)
	}
	byID := map[int]suggest.Exercise{}
	for _, exercise := range exercises {
		byID[exercise.ID] = exercise
	}
	for _, id := range suggestion.ExerciseIDs {
		if byID[id].MovementPattern == "squat" {
			t.Errorf("squat-pattern exercise %d suggested despite severe knee injury", id)
		}
	}
}

func TestService_Checkin_NoSessionOnDate(t *testing.T) {
	svc, ctx, db := newTestService(t)

	// Check-ins attach to a planned session; without one the report would be
	// lost, so it must be rejected rather than silently accepted.
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	checkin := `{"injuries":[{"body_region":"knee","severity":"severe","side":"left"}]}`
	err := svc.SaveCheckin(ctx, date, checkin)
	if !errors.Is(err, suggest.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	var stored int
	err = db.ReadOnly.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM workout_sessions WHERE checkin_json IS NOT NULL").Scan(&stored)
	if err != nil {
		t.Fatalf("count checkins: %v", err)
	}
	if stored != 0 {
		t.Errorf("stored %d checkins without a session", stored)
	}
}

func TestService_SetPreference_UnknownExercise(t *testing.T) {
	svc, ctx, _ := newTestService(t)

	err := svc.SetPreference(ctx, 99999, suggest.PreferenceArchived)
	if !errors.Is(err, suggest.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestService_GenerateExercise_MinimalWithoutAPIKey(t *testing.T) {
	svc, ctx, _ := newTestService(t)

	created, err := svc.GenerateExercise(ctx, "Zercher Carry")
	if err != nil {
		t.Fatalf("GenerateExercise: %v", err)
	}
	if created.Name != "Zercher Carry" {
		t.Errorf("name = %q, want Zercher Carry", created.Name)
	}
	// Without an LLM configured the entry gets minimal content and the lowest
	// tier so it stays out of suggestions.
	if created.Tier != suggest.TierF {
		t.Errorf("tier = %q, want F", created.Tier)
	}

	fetched, err := svc.GetExercise(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetExercise: %v", err)
	}
	if fetched.Name != created.Name {
		t.Errorf("fetched name = %q, want %q", fetched.Name, created.Name)
	}
}

func TestService_Suggest_GymEquipmentLimits(t *testing.T) {
	svc, ctx, db := newTestService(t)
	userID := contexthelpers.AuthenticatedUserID(ctx)

	// A sparse hotel gym: dumbbells only.
	result, err := db.ReadWrite.ExecContext(ctx,
		"INSERT INTO gym_locations (user_id, name) VALUES (?, ?)", userID, "Hotel Gym")
	if err != nil {
		t.Fatalf("insert gym location: %v", err)
	}
	locationID, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("last insert id: %v", err)
	}
	_, err = db.ReadWrite.ExecContext(ctx,
		"INSERT INTO gym_equipment (location_id, equipment_name) VALUES (?, ?)",
		locationID, "dumbbell")
	if err != nil {
		t.Fatalf("insert gym equipment: %v", err)
	}

	err = svc.SetProfile(ctx, suggest.Profile{
		Goal:           suggest.GoalMaintain,
		SessionMinutes: 60,
		GymLocationID:  ptr.Ref(int(locationID)),
	})
	if err != nil {
		t.Fatalf("SetProfile: %v", err)
	}

	suggestion, err := svc.Suggest(ctx)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}

	for _, id := range suggestion.ExerciseIDs {
		exercise, getErr := svc.GetExercise(ctx, id)
		if getErr != nil {
			t.Fatalf("GetExercise(%d): %v", id, getErr)
		}
		if len(exercise.Equipment) == 0 {
			continue
		}
		satisfied := false
		for _, alternative := range exercise.Equipment {
			if strings.Contains(strings.ToLower(alternative), "dumbbell") {
				satisfied = true
				break
			}
		}
		if !satisfied {
			t.Errorf("%s requires %v, which the gym does not have", exercise.Name, exercise.Equipment)
		}
	}
}
