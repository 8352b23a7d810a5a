// Package recommend implements the detection-to-recommendation pipeline:
// confidence filtering, ingredient matching against a recipe pool, and
// skill-aware scoring. Everything here is pure computation over its inputs;
// fetching the pool and the user profile is the caller's job.
package recommend

// BBox is an optional bounding box attached to a detection, in image pixel
// coordinates. Only present for object-detection model outputs.
type BBox struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Detection is one classifier output for an image.
type Detection struct {
	Label      string  `json:"name"`
	Confidence float64 `json:"confidence"`
	ClassID    int     `json:"class_id"`
	BBox       *BBox   `json:"bbox,omitempty"`
}

const (
	// DefaultConfidenceThreshold applies when the caller sends none.
	DefaultConfidenceThreshold = 0.5

	minConfidenceThreshold = 0.1
	maxConfidenceThreshold = 0.9
)

// ClampThreshold forces a confidence threshold into the accepted range.
// Out-of-range values from clients are clamped, not rejected.
func ClampThreshold(t float64) float64 {
	if t < minConfidenceThreshold {
		return minConfidenceThreshold
	}
	if t > maxConfidenceThreshold {
		return maxConfidenceThreshold
	}
	return t
}

// FilterByConfidence returns the detections at or above threshold, in their
// original order. An empty result is a normal outcome the caller must
// distinguish from a classifier failure.
func FilterByConfidence(detections []Detection, threshold float64) []Detection {
	kept := make([]Detection, 0, len(detections))
	for _, d := range detections {
		if d.Confidence >= threshold {
			kept = append(kept, d)
		}
	}
	return kept
}
