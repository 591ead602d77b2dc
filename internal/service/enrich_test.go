package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEnrichment(baseURL string) *EnrichmentService {
	return NewEnrichmentService(newTestSpoonacular(baseURL), zap.NewNop())
}

func TestEnrich(t *testing.T) {
	t.Run("nutrition failure nulls all four fields only", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/recipes/42/information":
				fmt.Fprint(w, `{
					"extendedIngredients":[{"originalString":"200g pasta"},{"originalString":"1 cup vegetables"}],
					"analyzedInstructions":[{"steps":[{"step":"Boil pasta."},{"step":"Add vegetables."}]}]
				}`)
			case "/recipes/42/nutritionWidget.json":
				w.WriteHeader(http.StatusInternalServerError)
			case "/recipes/42/similar":
				fmt.Fprint(w, `[]`)
			}
		}))
		defer ts.Close()

		recipe := newTestEnrichment(ts.URL).Enrich(context.Background(),
			SearchResult{ID: 42, Title: "Pasta Primavera"})

		assert.Equal(t, 42, recipe.ID)
		assert.Equal(t, "Pasta Primavera", recipe.Title)
		assert.Equal(t, []string{"200g pasta", "1 cup vegetables"}, recipe.Ingredients)
		assert.Equal(t, []string{"Boil pasta.", "Add vegetables."}, recipe.Steps)
		assert.Nil(t, recipe.Nutrition.Calories)
		assert.Nil(t, recipe.Nutrition.Carbs)
		assert.Nil(t, recipe.Nutrition.Fat)
		assert.Nil(t, recipe.Nutrition.Protein)
		assert.Empty(t, recipe.Similar)
	})

	t.Run("produces a recipe even when every sub-fetch fails", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer ts.Close()

		recipe := newTestEnrichment(ts.URL).Enrich(context.Background(),
			SearchResult{ID: 9, Title: "Mystery Dish"})

		assert.Equal(t, 9, recipe.ID)
		assert.Equal(t, "Mystery Dish", recipe.Title)
		assert.Empty(t, recipe.Ingredients)
		assert.Empty(t, recipe.Steps)
		assert.Nil(t, recipe.Nutrition.Calories)
		assert.NotNil(t, recipe.Similar)
		assert.Empty(t, recipe.Similar)
	})

	t.Run("flat instructions are sentence-split", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/recipes/3/information":
				fmt.Fprint(w, `{"instructions":"Boil water. Add pasta! Stir gently?"}`)
			default:
				fmt.Fprint(w, `{}`)
			}
		}))
		defer ts.Close()

		recipe := newTestEnrichment(ts.URL).Enrich(context.Background(),
			SearchResult{ID: 3, Title: "Plain Pasta"})

		assert.Equal(t, []string{"Boil water.", "Add pasta!", "Stir gently?"}, recipe.Steps)
	})

	t.Run("ingredients without an original string are skipped", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/recipes/4/information":
				fmt.Fprint(w, `{"extendedIngredients":[{"originalString":"2 eggs"},{},{"original":"1 tbsp <b>butter</b>"}]}`)
			default:
				fmt.Fprint(w, `{}`)
			}
		}))
		defer ts.Close()

		recipe := newTestEnrichment(ts.URL).Enrich(context.Background(),
			SearchResult{ID: 4, Title: "Omelette"})

		assert.Equal(t, []string{"2 eggs", "1 tbsp butter"}, recipe.Ingredients)
	})

	t.Run("successful nutrition fills the record", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/recipes/6/nutritionWidget.json":
				fmt.Fprint(w, `{"calories":"316","carbs":"49g","fat":"12g","protein":"9g"}`)
			case "/recipes/6/similar":
				fmt.Fprint(w, `[{"id":61,"title":"Cousin Dish"}]`)
			default:
				fmt.Fprint(w, `{}`)
			}
		}))
		defer ts.Close()

		recipe := newTestEnrichment(ts.URL).Enrich(context.Background(),
			SearchResult{ID: 6, Title: "Risotto"})

		require.NotNil(t, recipe.Nutrition.Calories)
		assert.Equal(t, "316", *recipe.Nutrition.Calories)
		require.NotNil(t, recipe.Nutrition.Protein)
		assert.Equal(t, "9g", *recipe.Nutrition.Protein)
		assert.Equal(t, []SimilarRecipe{{ID: 61, Title: "Cousin Dish"}}, recipe.Similar)
	})
}

func TestEnrichAllPreservesOrder(t *testing.T) {
	// Detail fails for the middle recipe; order and length must not change
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/recipes/2/information":
			w.WriteHeader(http.StatusBadGateway)
		case "/recipes/1/information", "/recipes/3/information":
			fmt.Fprint(w, `{"summary":"ok"}`)
		default:
			fmt.Fprint(w, `{}`)
		}
	}))
	defer ts.Close()

	results := []SearchResult{
		{ID: 1, Title: "First"},
		{ID: 2, Title: "Second"},
		{ID: 3, Title: "Third"},
	}

	recipes := newTestEnrichment(ts.URL).EnrichAll(context.Background(), results)

	require.Len(t, recipes, 3)
	for i, r := range results {
		assert.Equal(t, r.ID, recipes[i].ID)
		assert.Equal(t, r.Title, recipes[i].Title)
	}
}

func TestResolveImage(t *testing.T) {
	tests := []struct {
		name     string
		info     *RecipeInformation
		result   SearchResult
		expected string
	}{
		{
			name:     "detail image wins",
			info:     &RecipeInformation{Image: "https://img.example.com/detail.jpg"},
			result:   SearchResult{ID: 42, Image: "https://img.example.com/search.jpg"},
			expected: "https://img.example.com/detail.jpg",
		},
		{
			name:     "search image is second",
			info:     &RecipeInformation{},
			result:   SearchResult{ID: 42, Image: "https://img.example.com/search.jpg"},
			expected: "https://img.example.com/search.jpg",
		},
		{
			name:     "constructed from identifier",
			info:     &RecipeInformation{},
			result:   SearchResult{ID: 42},
			expected: "https://spoonacular.com/recipeImages/42-636x393.jpg",
		},
		{
			name:     "absent without identifier",
			info:     &RecipeInformation{},
			result:   SearchResult{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolveImage(tt.info, tt.result))
		})
	}
}
