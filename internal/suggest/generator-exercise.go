package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// exerciseGenerator creates new catalog exercises with an LLM when an admin
// requests one that does not exist yet.
type exerciseGenerator struct {
	client openai.Client
	logger *slog.Logger
}

func newExerciseGenerator(apiKey string, logger *slog.Logger) *exerciseGenerator {
	return &exerciseGenerator{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		logger: logger,
	}
}

// generatedExercise is the JSON document the model is asked to produce.
type generatedExercise struct {
	Name                string   `json:"name"`
	PrimaryMuscle       string   `json:"primary_muscle"`
	SecondaryMuscles    []string `json:"secondary_muscles"`
	Mechanic            string   `json:"mechanic"`
	MovementPattern     string   `json:"movement_pattern"`
	HypertrophyTier     string   `json:"hypertrophy_tier"`
	Equipment           []string `json:"equipment"`
	IsBodyweight        bool     `json:"is_bodyweight"`
	DescriptionMarkdown string   `json:"description_markdown"`
}

func exercisePrompt(name string) string {
	muscles := make([]string, len(AllMuscleGroups))
	for i, muscle := range AllMuscleGroups {
		muscles[i] = string(muscle)
	}

	return fmt.Sprintf(`Describe the resistance exercise %q as a single JSON object with keys:
name, primary_muscle, secondary_muscles, mechanic, movement_pattern,
hypertrophy_tier, equipment, is_bodyweight, description_markdown.

Rules:
- primary_muscle and secondary_muscles entries must be one of: %s.
- mechanic is "compound" or "isolation".
- movement_pattern is a single lowercase word such as push, pull, hinge, squat, lunge, carry, hold.
- hypertrophy_tier is one of S, A, B, C, D, F rating muscle-growth effectiveness.
- equipment lists required equipment names in lowercase, empty for bodyweight movements.
- description_markdown explains setup and execution in two short markdown sections.

Respond with the JSON object only.`, name, strings.Join(muscles, ", "))
}

// Generate asks the model for a complete exercise definition.
func (g *exerciseGenerator) Generate(ctx context.Context, name string) (Exercise, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModelGPT4o,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(exercisePrompt(name)),
		},
	}

	g.logger.LogAttrs(ctx, slog.LevelDebug, "generating exercise",
		slog.String("name", name))

	completion, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return Exercise{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return Exercise{}, fmt.Errorf("chat completion returned no choices")
	}

	content := completion.Choices[0].Message.Content
	// Models occasionally fence the JSON despite instructions.
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var generated generatedExercise
	if err = json.Unmarshal([]byte(content), &generated); err != nil {
		return Exercise{}, fmt.Errorf("parse generated exercise: %w", err)
	}

	exercise, err := validateGenerated(generated)
	if err != nil {
		return Exercise{}, fmt.Errorf("validate generated exercise: %w", err)
	}
	return exercise, nil
}

// validateGenerated converts the model output into a catalog exercise,
// rejecting values outside the closed vocabularies.
func validateGenerated(generated generatedExercise) (Exercise, error) {
	if strings.TrimSpace(generated.Name) == "" {
		return Exercise{}, fmt.Errorf("empty name")
	}

	primary := MuscleGroup(strings.ToLower(generated.PrimaryMuscle))
	if muscleIndex(primary) < 0 {
		return Exercise{}, fmt.Errorf("unknown primary muscle %q", generated.PrimaryMuscle)
	}

	var secondary []MuscleGroup
	for _, name := range generated.SecondaryMuscles {
		muscle := MuscleGroup(strings.ToLower(name))
		if muscleIndex(muscle) < 0 {
			return Exercise{}, fmt.Errorf("unknown secondary muscle %q", name)
		}
		if muscle != primary {
			secondary = append(secondary, muscle)
		}
	}

	mechanic := Mechanic(strings.ToLower(generated.Mechanic))
	if mechanic != MechanicCompound && mechanic != MechanicIsolation {
		return Exercise{}, fmt.Errorf("unknown mechanic %q", generated.Mechanic)
	}

	tier := Tier(strings.ToUpper(generated.HypertrophyTier))
	switch tier {
	case TierS, TierA, TierB, TierC, TierD, TierF:
	default:
		return Exercise{}, fmt.Errorf("unknown hypertrophy tier %q", generated.HypertrophyTier)
	}

	pattern := strings.ToLower(strings.TrimSpace(generated.MovementPattern))
	if pattern == "" {
		return Exercise{}, fmt.Errorf("empty movement pattern")
	}

	return Exercise{
		ID:                  0,
		Name:                strings.TrimSpace(generated.Name),
		PrimaryMuscle:       primary,
		SecondaryMuscles:    secondary,
		Mechanic:            mechanic,
		MovementPattern:     pattern,
		Tier:                tier,
		Equipment:           generated.Equipment,
		Bodyweight:          generated.IsBodyweight,
		DescriptionMarkdown: generated.DescriptionMarkdown,
	}, nil
}
