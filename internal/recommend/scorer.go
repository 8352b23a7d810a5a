package recommend

import (
	"sort"
	"strings"

	"github.com/pantrysnap/backend/internal/model"
)

// MaxRecommendations caps the ranked list returned to the caller.
const MaxRecommendations = 8

// Recommendation is one ranked entry in the response. Ephemeral, never
// persisted. The recipe is embedded so its fields serialize flat next to
// the scoring data, which is the shape clients already parse.
type Recommendation struct {
	model.Recipe
	MatchedIngredients []string `json:"matched_ingredients"`
	MatchPercentage    float64  `json:"ingredient_match_percentage"`
	Score              float64  `json:"recommendation_score"`
}

// difficultyMultiplier nudges the ranking toward the user's stated skill.
// The values are a small heuristic, not fitted weights.
func difficultyMultiplier(skillLevel, difficulty string) float64 {
	skill := strings.ToLower(skillLevel)
	diff := strings.ToLower(difficulty)
	switch {
	case skill == "beginner" && diff == "easy":
		return 1.2
	case skill == "intermediate" && (diff == "easy" || diff == "medium"):
		return 1.1
	case skill == "beginner" && diff == "hard":
		return 0.8
	default:
		return 1.0
	}
}

// ScoreMatches converts matches into scored recommendations, sorted
// descending by score and truncated to MaxRecommendations. The sort is
// stable: ties keep the pool's discovery order.
func ScoreMatches(matches []Match, skillLevel string) []Recommendation {
	recs := make([]Recommendation, 0, len(matches))
	for _, m := range matches {
		ingredientScore := m.MatchPercentage * 100
		recs = append(recs, Recommendation{
			Recipe:             m.Recipe,
			MatchedIngredients: m.MatchedIngredients,
			MatchPercentage:    m.MatchPercentage,
			Score:              ingredientScore * difficultyMultiplier(skillLevel, m.Recipe.Difficulty),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})

	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}
