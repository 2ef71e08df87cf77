package suggest

import "strings"

// defaultEquipment is assumed available when the user has not configured a gym.
var defaultEquipment = []string{"barbell", "dumbbell", "cable", "machine", "bodyweight"}

// equipmentSynonyms maps a canonical equipment name to common aliases seen in
// catalog data and user-entered gym inventories.
// Short abbreviations like "bb" are deliberately absent since the fuzzy
// matcher would find them inside unrelated names.
var equipmentSynonyms = map[string][]string{
	"barbell":       {"olympic barbell"},
	"dumbbell":      {"dumbbells"},
	"dumbbells":     {"dumbbell"},
	"cable":         {"cables", "pulley"},
	"machine":       {"machines"},
	"bodyweight":    {"body weight", "none"},
	"kettlebell":    {"kettlebells"},
	"bench":         {"flat bench", "adjustable bench"},
	"pull-up bar":   {"pullup bar", "chin-up bar"},
	"bands":         {"resistance bands"},
	"smith machine": {"smith"},
}

// availabilitySet is a gym's equipment inventory with alias expansion applied.
type availabilitySet struct {
	names []string
}

// newAvailabilitySet builds an availability set from a gym inventory. An empty
// inventory falls back to the default commercial-gym equipment.
func newAvailabilitySet(available []string) availabilitySet {
	if len(available) == 0 {
		available = defaultEquipment
	}

	names := make([]string, 0, len(available))
	for _, name := range available {
		canonical := strings.ToLower(strings.TrimSpace(name))
		if canonical == "" {
			continue
		}
		names = append(names, canonical)
		names = append(names, equipmentSynonyms[canonical]...)
	}
	return availabilitySet{names: names}
}

// matches reports whether a single required equipment item is satisfied by the
// inventory. Matching is case-insensitive and tolerates partial names in
// either direction, so "dumbbells" satisfies "dumbbell" and vice versa.
func (s availabilitySet) matches(required string) bool {
	required = strings.ToLower(strings.TrimSpace(required))
	if required == "" {
		return true
	}
	for _, name := range s.names {
		if name == required ||
			strings.Contains(name, required) ||
			strings.Contains(required, name) {
			return true
		}
	}
	return false
}

// satisfies reports whether an exercise can be performed with this inventory.
// Exercises with no equipment requirements always pass; otherwise any one of
// the required alternatives is enough.
func (s availabilitySet) satisfies(exercise Exercise) bool {
	if len(exercise.Equipment) == 0 {
		return true
	}
	for _, required := range exercise.Equipment {
		if s.matches(required) {
			return true
		}
	}
	return false
}
