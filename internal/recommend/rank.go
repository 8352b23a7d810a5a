package recommend

// Reason codes for an empty recommendation list. Both are normal outcomes,
// distinct from collaborator failures.
const (
	ReasonNoDetections      = "no_detections_above_threshold"
	ReasonNoMatchingRecipes = "no_matching_recipes"
)

// Result is the outcome of one ranking request.
type Result struct {
	Recommendations []Recommendation
	// Retained holds the detections that survived the confidence filter;
	// they are reported to the user even when nothing matched.
	Retained  []Detection
	Threshold float64
	// SkillLevel is the level the scoring actually used, echoed back so
	// clients can see which multiplier set applied.
	SkillLevel string
	// TotalFound counts the recommendations after truncation.
	TotalFound int
	Reason     string
}

// Rank runs the whole pipeline: clamp the threshold, filter detections,
// match against the pool, score and truncate. It never fails; empty
// outcomes carry a reason code instead.
func Rank(detections []Detection, threshold float64, pool []Candidate, skillLevel string) Result {
	t := ClampThreshold(threshold)
	retained := FilterByConfidence(detections, t)
	res := Result{Retained: retained, Threshold: t, SkillLevel: skillLevel}

	if len(retained) == 0 {
		res.Reason = ReasonNoDetections
		return res
	}

	matches := MatchRecipes(DetectedNames(retained), pool)
	if len(matches) == 0 {
		res.Reason = ReasonNoMatchingRecipes
		return res
	}

	res.Recommendations = ScoreMatches(matches, skillLevel)
	res.TotalFound = len(res.Recommendations)
	return res
}
