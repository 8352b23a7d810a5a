package recommend

import (
	"sort"

	"github.com/pantrysnap/backend/internal/ingredient"
	"github.com/pantrysnap/backend/internal/model"
)

// DefaultMinMatchPercentage is the cutoff for ingredient-driven recipe
// search when the caller sends none.
const DefaultMinMatchPercentage = 0.5

// Candidate is one recipe from the pool with its ingredient names already
// canonicalized.
type Candidate struct {
	Recipe      model.Recipe
	Ingredients []string
}

// Match is a candidate that shares at least one ingredient with the
// detected set. The recipe is embedded so its fields serialize flat next
// to the match data.
type Match struct {
	model.Recipe
	MatchedIngredients []string `json:"matched_ingredients"`
	MatchPercentage    float64  `json:"ingredient_match_percentage"`
}

// MatchRecipes computes, for every candidate, which detected canonical names
// appear among its ingredients under the containment rule. A detected name
// counts at most once per recipe: scanning stops at its first matching recipe
// ingredient. Candidates with an empty match set are dropped.
//
// MatchPercentage is |matched| / max(|detected|, 1), so it stays in [0,1]
// even for an empty detected set.
func MatchRecipes(detected []string, pool []Candidate) []Match {
	matches := make([]Match, 0, len(pool))
	for _, cand := range pool {
		var found []string
		for _, d := range detected {
			for _, r := range cand.Ingredients {
				if ingredient.Matches(d, r) {
					found = append(found, d)
					break
				}
			}
		}
		if len(found) == 0 {
			continue
		}
		denom := len(detected)
		if denom < 1 {
			denom = 1
		}
		matches = append(matches, Match{
			Recipe:             cand.Recipe,
			MatchedIngredients: found,
			MatchPercentage:    float64(len(found)) / float64(denom),
		})
	}
	return matches
}

// FilterMatches keeps matches whose fraction meets the minimum, ordered by
// fraction descending. Ties keep the pool's discovery order.
func FilterMatches(matches []Match, minMatch float64) []Match {
	kept := make([]Match, 0, len(matches))
	for _, m := range matches {
		if m.MatchPercentage >= minMatch {
			kept = append(kept, m)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].MatchPercentage > kept[j].MatchPercentage
	})
	return kept
}

// DetectedNames reduces filtered detections to a deduplicated, ordered set
// of canonical names.
func DetectedNames(detections []Detection) []string {
	labels := make([]string, 0, len(detections))
	for _, d := range detections {
		labels = append(labels, d.Label)
	}
	return CanonicalNames(labels)
}

// CanonicalNames canonicalizes free-text ingredient names, dropping empties
// and duplicates while preserving order.
func CanonicalNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, raw := range names {
		name := ingredient.Normalize(raw)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
