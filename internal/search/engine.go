// Package search filters, sorts and paginates a recipe pool by text and
// attribute criteria. It is independent of the detection pipeline.
package search

import (
	"sort"
	"strings"

	"github.com/pantrysnap/backend/internal/model"
)

const (
	defaultLimit = 20
	maxLimit     = 100

	defaultSortKey = "title"
)

// sortKeys is the allow-list of caller-selectable sort fields. Anything
// else silently falls back to title ascending.
var sortKeys = map[string]bool{
	"title":          true,
	"prep_time_mins": true,
	"cook_time_mins": true,
	"difficulty":     true,
	"servings":       true,
	"created_at":     true,
}

// Params are the caller-supplied search criteria. Filters are optional and
// AND-combined; zero values mean "not set".
type Params struct {
	Query        string
	Difficulty   string
	MaxTotalTime int
	SortBy       string
	SortOrder    string
	Page         int
	Limit        int
}

// Pagination describes the window returned by a search.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Result is one page of matching recipes.
type Result struct {
	Recipes    []model.Recipe
	Pagination Pagination
}

// Run applies filters, sorts and paginates the pool. Out-of-range paging
// values are clamped rather than rejected.
func Run(pool []model.Recipe, p Params) Result {
	matched := filter(pool, p)
	sortRecipes(matched, p.SortBy, p.SortOrder)

	page := p.Page
	if page < 1 {
		page = 1
	}
	limit := p.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	total := len(matched)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Result{
		Recipes: matched[start:end],
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	}
}

func filter(pool []model.Recipe, p Params) []model.Recipe {
	query := strings.ToLower(strings.TrimSpace(p.Query))
	difficulty := strings.ToLower(strings.TrimSpace(p.Difficulty))

	matched := make([]model.Recipe, 0, len(pool))
	for _, r := range pool {
		if query != "" && !strings.Contains(strings.ToLower(r.Title), query) {
			continue
		}
		if difficulty != "" && strings.ToLower(r.Difficulty) != difficulty {
			continue
		}
		// Deliberately checks prep time only, matching the behavior the
		// clients already depend on: cook time is not counted.
		if p.MaxTotalTime > 0 && r.PrepTimeMins > p.MaxTotalTime {
			continue
		}
		matched = append(matched, r)
	}
	return matched
}

func sortRecipes(recipes []model.Recipe, sortBy, sortOrder string) {
	key := strings.ToLower(strings.TrimSpace(sortBy))
	if !sortKeys[key] {
		key = defaultSortKey
	}
	desc := strings.EqualFold(strings.TrimSpace(sortOrder), "desc")

	less := func(a, b model.Recipe) bool {
		switch key {
		case "prep_time_mins":
			return a.PrepTimeMins < b.PrepTimeMins
		case "cook_time_mins":
			return a.CookTimeMins < b.CookTimeMins
		case "difficulty":
			return strings.ToLower(a.Difficulty) < strings.ToLower(b.Difficulty)
		case "servings":
			return a.Servings < b.Servings
		case "created_at":
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	}

	sort.SliceStable(recipes, func(i, j int) bool {
		if desc {
			return less(recipes[j], recipes[i])
		}
		return less(recipes[i], recipes[j])
	})
}
