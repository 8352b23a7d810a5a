package search

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pantrysnap/backend/internal/model"
)

func testPool() []model.Recipe {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []model.Recipe{
		{Title: "Tomato Soup", Difficulty: "easy", PrepTimeMins: 10, CookTimeMins: 30, Servings: 2, CreatedAt: base},
		{Title: "Beef Wellington", Difficulty: "hard", PrepTimeMins: 60, CookTimeMins: 90, Servings: 6, CreatedAt: base.AddDate(0, 0, 1)},
		{Title: "Green Tomato Salad", Difficulty: "easy", PrepTimeMins: 15, CookTimeMins: 0, Servings: 4, CreatedAt: base.AddDate(0, 0, 2)},
		{Title: "Mushroom Risotto", Difficulty: "medium", PrepTimeMins: 20, CookTimeMins: 40, Servings: 4, CreatedAt: base.AddDate(0, 0, 3)},
	}
}

func TestRunTitleFilterCaseInsensitive(t *testing.T) {
	res := Run(testPool(), Params{Query: "TOMATO"})
	assert.Equal(t, 2, res.Pagination.Total)
	for _, r := range res.Recipes {
		assert.Contains(t, r.Title, "Tomato")
	}
}

func TestRunFiltersAreANDCombined(t *testing.T) {
	res := Run(testPool(), Params{Query: "tomato", Difficulty: "easy", MaxTotalTime: 12})
	assert.Equal(t, 1, res.Pagination.Total)
	assert.Equal(t, "Tomato Soup", res.Recipes[0].Title)
}

func TestRunMaxTimeIgnoresCookTime(t *testing.T) {
	// Tomato Soup cooks for 30 minutes; only its 10 minute prep counts.
	res := Run(testPool(), Params{MaxTotalTime: 15})
	titles := make([]string, 0, len(res.Recipes))
	for _, r := range res.Recipes {
		titles = append(titles, r.Title)
	}
	assert.ElementsMatch(t, []string{"Tomato Soup", "Green Tomato Salad"}, titles)
}

func TestRunDefaultSortIsTitleAscending(t *testing.T) {
	res := Run(testPool(), Params{})
	assert.Equal(t, "Beef Wellington", res.Recipes[0].Title)
	assert.Equal(t, "Tomato Soup", res.Recipes[len(res.Recipes)-1].Title)
}

func TestRunInvalidSortKeyFallsBackToTitle(t *testing.T) {
	res := Run(testPool(), Params{SortBy: "deliciousness", SortOrder: "desc"})
	want := Run(testPool(), Params{SortBy: "title", SortOrder: "desc"})
	assert.Equal(t, want.Recipes[0].Title, res.Recipes[0].Title)
}

func TestRunSortByPrepTimeDesc(t *testing.T) {
	res := Run(testPool(), Params{SortBy: "prep_time_mins", SortOrder: "desc"})
	assert.Equal(t, "Beef Wellington", res.Recipes[0].Title)
	assert.Equal(t, "Tomato Soup", res.Recipes[3].Title)
}

func TestRunSortByCreatedAt(t *testing.T) {
	res := Run(testPool(), Params{SortBy: "created_at"})
	assert.Equal(t, "Tomato Soup", res.Recipes[0].Title)
	assert.Equal(t, "Mushroom Risotto", res.Recipes[3].Title)
}

func TestRunPagination(t *testing.T) {
	pool := make([]model.Recipe, 45)
	for i := range pool {
		pool[i] = model.Recipe{Title: fmt.Sprintf("recipe %02d", i)}
	}

	res := Run(pool, Params{Page: 3, Limit: 20})
	assert.Equal(t, 45, res.Pagination.Total)
	assert.Equal(t, 3, res.Pagination.TotalPages)
	assert.Len(t, res.Recipes, 5)
	assert.False(t, res.Pagination.HasNext)
	assert.True(t, res.Pagination.HasPrev)

	first := Run(pool, Params{Page: 1, Limit: 20})
	assert.True(t, first.Pagination.HasNext)
	assert.False(t, first.Pagination.HasPrev)
}

func TestRunPaginationClamps(t *testing.T) {
	pool := testPool()

	res := Run(pool, Params{Page: -2, Limit: 0})
	assert.Equal(t, 1, res.Pagination.Page)
	assert.Equal(t, 20, res.Pagination.Limit)

	res = Run(pool, Params{Page: 1, Limit: 500})
	assert.Equal(t, 100, res.Pagination.Limit)
}

func TestRunPageBeyondEnd(t *testing.T) {
	res := Run(testPool(), Params{Page: 9, Limit: 20})
	assert.Empty(t, res.Recipes)
	assert.False(t, res.Pagination.HasNext)
	assert.True(t, res.Pagination.HasPrev)
}

func TestRunStablePagination(t *testing.T) {
	pool := testPool()
	a := Run(pool, Params{SortBy: "difficulty", Page: 1, Limit: 2})
	b := Run(pool, Params{SortBy: "difficulty", Page: 2, Limit: 2})

	seen := map[string]bool{}
	for _, r := range append(a.Recipes, b.Recipes...) {
		assert.False(t, seen[r.Title], "recipe %q appeared on two pages", r.Title)
		seen[r.Title] = true
	}
	assert.Len(t, seen, 4)
}
