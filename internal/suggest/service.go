package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkoskela/liftapp/internal/contexthelpers"
	"github.com/mkoskela/liftapp/internal/sqlite"
)

// Set and rep targets assigned when a suggestion is turned into a plan.
const (
	planTargetSets       = 3
	compoundMinReps      = 6
	compoundMaxReps      = 10
	isolationMinReps     = 10
	isolationMaxReps     = 15
	defaultSessionLength = 60
)

// Service handles the business logic for workout suggestions.
type Service struct {
	repo         *repository
	logger       *slog.Logger
	openaiAPIKey string
	now          func() time.Time
}

// NewService creates a new suggestion service.
func NewService(db *sqlite.Database, logger *slog.Logger, openaiAPIKey string) *Service {
	factory := newRepositoryFactory(db, logger)
	return &Service{
		repo:         factory.newRepository(),
		logger:       logger,
		openaiAPIKey: openaiAPIKey,
		now:          time.Now,
	}
}

// defaultProfile is substituted when the user has not configured one.
func defaultProfile() Profile {
	return Profile{
		Goal:           GoalMaintain,
		SessionMinutes: defaultSessionLength,
		GymLocationID:  nil,
	}
}

// Suggest runs the suggestion pipeline for the authenticated user as of the
// current time.
func (s *Service) Suggest(ctx context.Context) (Suggestion, error) {
	return s.SuggestForDate(ctx, s.now())
}

// SuggestForDate runs the suggestion pipeline as of the given date, so a
// workout can be planned ahead. Auxiliary data failures are absorbed with
// defaults so a suggestion is still produced; only missing auth, a failed
// catalog read, or an empty candidate pool fail.
func (s *Service) SuggestForDate(ctx context.Context, now time.Time) (Suggestion, error) {
	if !contexthelpers.IsAuthenticated(ctx) {
		return Suggestion{}, ErrNotAuthenticated
	}

	profile := s.GetProfile(ctx)

	var equipment []string
	if profile.GymLocationID != nil {
		var err error
		equipment, err = s.repo.equipment.ListForLocation(ctx, *profile.GymLocationID)
		if err != nil {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "falling back to default equipment",
				slog.String("error", err.Error()))
			equipment = nil
		}
	}

	injuries, err := s.repo.injuries.ListActive(ctx)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "ignoring injury history",
			slog.String("error", err.Error()))
		injuries = nil
	}

	preferences, err := s.repo.prefs.Map(ctx)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "ignoring exercise preferences",
			slog.String("error", err.Error()))
		preferences = map[int]PreferenceStatus{}
	}

	history, err := s.repo.sessions.List(ctx, now.AddDate(0, 0, -frequencyWindowDays))
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "ignoring workout history",
			slog.String("error", err.Error()))
		history = nil
	}

	pool, err := s.repo.exercises.List(ctx)
	if err != nil {
		return Suggestion{}, fmt.Errorf("get exercise pool: %w", err)
	}

	suggestion, err := suggestWorkout(engineInput{
		Pool:            pool,
		History:         history,
		Preferences:     preferences,
		Equipment:       equipment,
		Injuries:        injuries,
		Goal:            profile.Goal,
		DurationMinutes: profile.SessionMinutes,
		Now:             now,
	})
	if err != nil {
		return Suggestion{}, fmt.Errorf("suggest workout: %w", err)
	}
	return suggestion, nil
}

// PlanSession persists a planned session from a list of accepted exercise
// IDs. It returns the stored session and whether its estimate exceeds the
// user's configured duration; an over-budget plan is flagged, never blocked.
func (s *Service) PlanSession(ctx context.Context, date time.Time, exerciseIDs []int) (Session, bool, error) {
	if !contexthelpers.IsAuthenticated(ctx) {
		return Session{}, false, ErrNotAuthenticated
	}
	profile := s.GetProfile(ctx)

	warmedUp := make(map[MuscleGroup]bool)
	totalSeconds := 0
	session := Session{
		Date:        date,
		StartedAt:   time.Time{},
		CompletedAt: time.Time{},
		Exercises:   make([]PlannedExercise, 0, len(exerciseIDs)),
	}
	for _, id := range exerciseIDs {
		exercise, err := s.repo.exercises.Get(ctx, id)
		if err != nil {
			return Session{}, false, fmt.Errorf("get exercise %d: %w", id, err)
		}

		withWarmup := false
		if exercise.Mechanic == MechanicCompound && !warmedUp[exercise.PrimaryMuscle] {
			withWarmup = true
			warmedUp[exercise.PrimaryMuscle] = true
		}
		totalSeconds += exerciseSeconds(profile.Goal, exercise.Mechanic, withWarmup)

		minReps, maxReps := isolationMinReps, isolationMaxReps
		if exercise.Mechanic == MechanicCompound {
			minReps, maxReps = compoundMinReps, compoundMaxReps
		}
		session.Exercises = append(session.Exercises, PlannedExercise{
			ExerciseID:  exercise.ID,
			TargetSets:  planTargetSets,
			MinReps:     minReps,
			MaxReps:     maxReps,
			RestSeconds: restSeconds(profile.Goal, exercise.Mechanic),
			HasWarmup:   withWarmup,
		})
	}

	if err := s.repo.sessions.Create(ctx, session); err != nil {
		return Session{}, false, fmt.Errorf("create session: %w", err)
	}

	overBudget := totalSeconds > profile.SessionMinutes*secondsPerMinute
	return session, overBudget, nil
}

// CompleteSession marks the session on the given date as completed.
func (s *Service) CompleteSession(ctx context.Context, date time.Time) error {
	if !contexthelpers.IsAuthenticated(ctx) {
		return ErrNotAuthenticated
	}
	if err := s.repo.sessions.MarkCompleted(ctx, date, s.now()); err != nil {
		return fmt.Errorf("complete session %s: %w", formatDate(date), err)
	}
	return nil
}

// SaveCheckin validates and stores a pre-workout check-in payload on the
// session for the given date.
func (s *Service) SaveCheckin(ctx context.Context, date time.Time, checkinJSON string) error {
	if !contexthelpers.IsAuthenticated(ctx) {
		return ErrNotAuthenticated
	}
	var payload checkinPayload
	if err := json.Unmarshal([]byte(checkinJSON), &payload); err != nil {
		return fmt.Errorf("parse checkin payload: %w", err)
	}
	if err := s.repo.sessions.SaveCheckin(ctx, date, checkinJSON); err != nil {
		return fmt.Errorf("save checkin %s: %w", formatDate(date), err)
	}
	return nil
}

// GetSession retrieves the session for a date.
func (s *Service) GetSession(ctx context.Context, date time.Time) (Session, error) {
	if !contexthelpers.IsAuthenticated(ctx) {
		return Session{}, ErrNotAuthenticated
	}
	session, err := s.repo.sessions.Get(ctx, date)
	if err != nil {
		return Session{}, fmt.Errorf("get session %s: %w", formatDate(date), err)
	}
	return session, nil
}

// ListExercises returns the whole catalog.
func (s *Service) ListExercises(ctx context.Context) ([]Exercise, error) {
	exercises, err := s.repo.exercises.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	return exercises, nil
}

// GetExercise retrieves a single exercise.
func (s *Service) GetExercise(ctx context.Context, id int) (Exercise, error) {
	exercise, err := s.repo.exercises.Get(ctx, id)
	if err != nil {
		return Exercise{}, fmt.Errorf("get exercise %d: %w", id, err)
	}
	return exercise, nil
}

// GetPreferences returns the user's non-default exercise preferences.
func (s *Service) GetPreferences(ctx context.Context) (map[int]PreferenceStatus, error) {
	if !contexthelpers.IsAuthenticated(ctx) {
		return nil, ErrNotAuthenticated
	}
	preferences, err := s.repo.prefs.Map(ctx)
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	return preferences, nil
}

// SetPreference updates the user's standing preference for an exercise.
func (s *Service) SetPreference(ctx context.Context, exerciseID int, status PreferenceStatus) error {
	if !contexthelpers.IsAuthenticated(ctx) {
		return ErrNotAuthenticated
	}
	switch status {
	case PreferenceNormal, PreferenceArchived, PreferenceDoNotSuggest:
	default:
		return fmt.Errorf("invalid preference status %q", status)
	}
	if _, err := s.repo.exercises.Get(ctx, exerciseID); err != nil {
		return fmt.Errorf("get exercise %d: %w", exerciseID, err)
	}
	if err := s.repo.prefs.Set(ctx, exerciseID, status); err != nil {
		return fmt.Errorf("set preference: %w", err)
	}
	return nil
}

// GetProfile returns the user's profile, substituting defaults when the
// profile is missing or unreadable.
func (s *Service) GetProfile(ctx context.Context) Profile {
	profile, err := s.repo.profile.Get(ctx)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "falling back to default profile",
			slog.String("error", err.Error()))
		return defaultProfile()
	}
	if profile.SessionMinutes <= 0 {
		profile.SessionMinutes = defaultSessionLength
	}
	return profile
}

// GenerateExercise creates a new catalog exercise from a name, generating
// the full definition with the configured LLM. Admin-only at the HTTP layer.
func (s *Service) GenerateExercise(ctx context.Context, name string) (Exercise, error) {
	if !contexthelpers.IsAuthenticated(ctx) {
		return Exercise{}, ErrNotAuthenticated
	}

	exercise := s.generateExerciseContent(ctx, name)

	created, err := s.repo.exercises.Create(ctx, exercise)
	if err != nil {
		return Exercise{}, fmt.Errorf("create exercise %q: %w", exercise.Name, err)
	}
	return created, nil
}

// generateExerciseContent builds the exercise definition with the LLM when
// configured, falling back to minimal content when it is not or when
// generation fails.
func (s *Service) generateExerciseContent(ctx context.Context, name string) Exercise {
	if s.openaiAPIKey == "" {
		return minimalExercise(name)
	}

	generator := newExerciseGenerator(s.openaiAPIKey, s.logger)
	generated, err := generator.Generate(ctx, name)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "exercise generation failed, using minimal content",
			slog.String("name", name),
			slog.Any("error", err))
		return minimalExercise(name)
	}
	return generated
}

// minimalExercise returns a basic catalog entry with just the essential
// fields populated. The F tier keeps it out of suggestions until an admin
// fills in real data.
func minimalExercise(name string) Exercise {
	return Exercise{
		Name:                name,
		PrimaryMuscle:       MuscleChest,
		Mechanic:            MechanicIsolation,
		MovementPattern:     "other",
		Tier:                TierF,
		DescriptionMarkdown: fmt.Sprintf("# %s\n\nNo description available yet.", name),
	}
}

// SetProfile updates the user's profile.
func (s *Service) SetProfile(ctx context.Context, profile Profile) error {
	if !contexthelpers.IsAuthenticated(ctx) {
		return ErrNotAuthenticated
	}
	switch profile.Goal {
	case GoalBulk, GoalCut, GoalMaintain:
	default:
		return fmt.Errorf("invalid goal %q", profile.Goal)
	}
	if profile.SessionMinutes <= 0 {
		return fmt.Errorf("invalid session minutes %d", profile.SessionMinutes)
	}
	if err := s.repo.profile.Set(ctx, profile); err != nil {
		return fmt.Errorf("set profile: %w", err)
	}
	return nil
}
