// Package ingredient defines the canonical ingredient name form used for
// every comparison between classifier labels and stored ingredient records.
package ingredient

import "strings"

// Normalize canonicalizes an ingredient name: lower case, trimmed, with
// underscores replaced by spaces. It is total and idempotent, so classifier
// labels ("Bell_Pepper") and free-text recipe ingredients ("bell pepper ")
// collapse to the same form.
func Normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", " ")
}

// Matches reports whether two canonical names refer to the same ingredient.
// Equality or containment in either direction counts: "pepper" matches
// "bell pepper". The permissive rule tolerates vocabulary drift between the
// classifier's label set and the recipe corpus.
func Matches(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

// Classes is the fixed label vocabulary of the ingredient classifier. The
// order matches the model's class indices.
var Classes = []string{
	"apple", "banana", "beetroot", "bell pepper", "cabbage",
	"capsicum", "carrot", "cauliflower", "chilli pepper", "corn",
	"cucumber", "eggplant", "garlic", "ginger", "grapes",
	"jalepeno", "kiwi", "lemon", "lettuce", "mango",
	"onion", "orange", "paprika", "pear", "peas",
	"pineapple", "pomegranate", "potato", "raddish", "soy beans",
	"spinach", "sweetcorn", "sweetpotato", "tomato", "turnip", "watermelon",
}
