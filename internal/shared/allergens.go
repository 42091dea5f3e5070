package shared

import (
	"sort"
	"strings"
)

// Allergens is a case-insensitively deduplicated set of allergen names.
// The empty set means "no allergens".
type Allergens struct {
	values map[string]string // lower-cased key -> normalized display form
}

func NewAllergens(values []string) Allergens {
	set := make(map[string]string)
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		normalized := normalizeAllergen(v)
		set[strings.ToLower(normalized)] = normalized
	}
	return Allergens{values: set}
}

func NoAllergens() Allergens {
	return Allergens{values: map[string]string{}}
}

func normalizeAllergen(v string) string {
	trimmed := strings.TrimSpace(v)
	runes := []rune(strings.ToLower(trimmed))
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}

func (a Allergens) HasAny() bool { return len(a.values) > 0 }

func (a Allergens) Contains(allergen string) bool {
	if strings.TrimSpace(allergen) == "" {
		return false
	}
	_, ok := a.values[strings.ToLower(strings.TrimSpace(allergen))]
	return ok
}

// List returns the normalized allergen names in sorted order.
func (a Allergens) List() []string {
	out := make([]string, 0, len(a.values))
	for _, v := range a.values {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (a Allergens) Equal(other Allergens) bool {
	if len(a.values) != len(other.values) {
		return false
	}
	for k := range a.values {
		if _, ok := other.values[k]; !ok {
			return false
		}
	}
	return true
}

func (a Allergens) String() string {
	if !a.HasAny() {
		return "No allergens"
	}
	return strings.Join(a.List(), ", ")
}
