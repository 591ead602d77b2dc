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

func newTestAgent(spoonacularURL, groqURL string) *AgentService {
	logger := zap.NewNop()
	spoonacular := newTestSpoonacular(spoonacularURL)
	enrich := NewEnrichmentService(spoonacular, logger)
	synth := NewSynthesizerService(newTestLLM(groqURL), logger)
	return NewAgentService(spoonacular, enrich, synth, logger)
}

func TestAgentRun(t *testing.T) {
	t.Run("search, enrich and synthesize end to end", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/recipes/complexSearch":
				fmt.Fprint(w, `{"results":[{"id":42,"title":"Pasta Primavera","sourceUrl":"https://example.com/r/42"}]}`)
			case "/recipes/42/information":
				fmt.Fprint(w, `{
					"readyInMinutes":25,"servings":2,
					"extendedIngredients":[{"originalString":"200g pasta"}],
					"analyzedInstructions":[{"steps":[{"step":"Boil pasta."}]}]
				}`)
			case "/recipes/42/nutritionWidget.json":
				fmt.Fprint(w, `{"calories":"316","carbs":"49g","fat":"12g","protein":"9g"}`)
			case "/recipes/42/similar":
				fmt.Fprint(w, `[{"id":101,"title":"Penne Arrabiata"}]`)
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer upstream.Close()

		model := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"choices":[{"message":{"content":"**1) Pasta Primavera** is the one to try."}}]}`)
		}))
		defer model.Close()

		result := newTestAgent(upstream.URL, model.URL).Run(context.Background(), "pasta")

		assert.Equal(t, "**1) Pasta Primavera** is the one to try.", result.Text)
		require.Len(t, result.Recipes, 1)
		recipe := result.Recipes[0]
		assert.Equal(t, 42, recipe.ID)
		assert.Equal(t, "https://example.com/r/42", recipe.SourceURL)
		assert.Equal(t, []string{"200g pasta"}, recipe.Ingredients)
		assert.Equal(t, []SimilarRecipe{{ID: 101, Title: "Penne Arrabiata"}}, recipe.Similar)
	})

	t.Run("no results anywhere yields clarification and empty recipes", func(t *testing.T) {
		var modelCalls int
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/recipes/complexSearch":
				fmt.Fprint(w, `{"results":[]}`)
			case "/recipes/findByIngredients":
				fmt.Fprint(w, `[]`)
			}
		}))
		defer upstream.Close()

		model := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			modelCalls++
			fmt.Fprint(w, `{"choices":[{"message":{"content":"unused"}}]}`)
		}))
		defer model.Close()

		result := newTestAgent(upstream.URL, model.URL).Run(context.Background(), "xyznotfood")

		assert.Equal(t, NoResultsMessage, result.Text)
		assert.Empty(t, result.Recipes)
		assert.Zero(t, modelCalls)
	})

	t.Run("model failure still returns the recipes", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/recipes/complexSearch":
				fmt.Fprint(w, `{"results":[{"id":7,"title":"Carbonara"}]}`)
			default:
				fmt.Fprint(w, `{}`)
			}
		}))
		defer upstream.Close()

		model := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer model.Close()

		result := newTestAgent(upstream.URL, model.URL).Run(context.Background(), "carbonara")

		assert.Equal(t, SynthesisFallbackMessage, result.Text)
		require.Len(t, result.Recipes, 1)
		assert.Equal(t, 7, result.Recipes[0].ID)
	})
}
