package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "bell pepper", Normalize("Bell_Pepper "))
	assert.Equal(t, "bell pepper", Normalize("bell pepper"))
	assert.Equal(t, "sweet potato", Normalize("  Sweet_Potato"))
	assert.Equal(t, "", Normalize("   "))
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Bell_Pepper ", "TOMATO", " chilli_pepper", "soy beans"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches("pepper", "bell pepper"))
	assert.True(t, Matches("bell pepper", "pepper"))
	assert.True(t, Matches("tomato", "tomato"))
	assert.False(t, Matches("tomato", "potato"))
	assert.False(t, Matches("", "tomato"))
	assert.False(t, Matches("tomato", ""))
}

func TestMatchesCommutative(t *testing.T) {
	pairs := [][2]string{
		{"pepper", "bell pepper"},
		{"corn", "sweetcorn"},
		{"apple", "pineapple"},
		{"onion", "garlic"},
	}
	for _, p := range pairs {
		assert.Equal(t, Matches(p[0], p[1]), Matches(p[1], p[0]), "pair %v", p)
	}
}

func TestClassesAreCanonical(t *testing.T) {
	assert.Len(t, Classes, 36)
	for _, c := range Classes {
		assert.Equal(t, c, Normalize(c))
	}
}
