package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/forkful/chatbot-backend/config"
)

const (
	searchTimeout     = 12 * time.Second
	fallbackTimeout   = 10 * time.Second
	infoTimeout       = 10 * time.Second
	nutritionTimeout  = 8 * time.Second
	similarTimeout    = 8 * time.Second
	maxSimilarRecipes = 3
)

// SpoonacularService talks to the upstream recipe API. Every method is a
// single blocking call bounded by its own timeout; no retries.
type SpoonacularService struct {
	client *resty.Client
	apiKey string
	logger *zap.Logger
}

// NewSpoonacularService creates a new SpoonacularService instance
func NewSpoonacularService(cfg *config.Config, logger *zap.Logger) *SpoonacularService {
	client := resty.New().
		SetBaseURL(cfg.Spoonacular.BaseURL).
		SetHeader("Accept", "application/json")

	return &SpoonacularService{
		client: client,
		apiKey: cfg.Spoonacular.APIKey,
		logger: logger,
	}
}

type complexSearchResponse struct {
	Results []SearchResult `json:"results"`
}

// RecipeInformation is the wire shape of the per-recipe detail endpoint.
// Only the fields the pipeline consumes are decoded.
type RecipeInformation struct {
	Image                string               `json:"image"`
	SourceURL            string               `json:"sourceUrl"`
	SpoonacularSourceURL string               `json:"spoonacularSourceUrl"`
	ReadyInMinutes       *int                 `json:"readyInMinutes"`
	Servings             *int                 `json:"servings"`
	Summary              string               `json:"summary"`
	ExtendedIngredients  []Ingredient         `json:"extendedIngredients"`
	AnalyzedInstructions []InstructionSection `json:"analyzedInstructions"`
	Instructions         string               `json:"instructions"`
}

type Ingredient struct {
	OriginalString string `json:"originalString"`
	Original       string `json:"original"`
}

type InstructionSection struct {
	Steps []InstructionStep `json:"steps"`
}

type InstructionStep struct {
	Step string `json:"step"`
}

type NutritionWidget struct {
	Calories string `json:"calories"`
	Carbs    string `json:"carbs"`
	Fat      string `json:"fat"`
	Protein  string `json:"protein"`
}

// Search queries the complex-search endpoint and, when that fails or
// comes back empty, treats the query as an ingredient list against the
// find-by-ingredients endpoint. Both paths degrade to an empty result
// set; upstream order is preserved.
func (s *SpoonacularService) Search(ctx context.Context, query string, limit int) []SearchResult {
	results, err := s.complexSearch(ctx, query, limit)
	if err != nil {
		s.logger.Warn("recipe search failed", zap.String("query", query), zap.Error(err))
	}
	if len(results) > 0 {
		return results
	}

	results, err = s.findByIngredients(ctx, query, limit)
	if err != nil {
		s.logger.Warn("ingredient search failed", zap.String("query", query), zap.Error(err))
		return []SearchResult{}
	}
	return results
}

func (s *SpoonacularService) complexSearch(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query":                query,
			"number":               strconv.Itoa(limit),
			"addRecipeInformation": "true",
			"fillIngredients":      "true",
			"apiKey":               s.apiKey,
		}).
		Get("/recipes/complexSearch")
	if err != nil {
		return nil, fmt.Errorf("complex search request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("complex search returned status %d", resp.StatusCode())
	}

	var body complexSearchResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("failed to decode complex search response: %w", err)
	}
	return body.Results, nil
}

func (s *SpoonacularService) findByIngredients(ctx context.Context, ingredients string, limit int) ([]SearchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, fallbackTimeout)
	defer cancel()

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ingredients":  ingredients,
			"number":       strconv.Itoa(limit),
			"ranking":      "1",
			"ignorePantry": "true",
			"apiKey":       s.apiKey,
		}).
		Get("/recipes/findByIngredients")
	if err != nil {
		return nil, fmt.Errorf("ingredient search request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("ingredient search returned status %d", resp.StatusCode())
	}

	var results []SearchResult
	if err := json.Unmarshal(resp.Body(), &results); err != nil {
		return nil, fmt.Errorf("failed to decode ingredient search response: %w", err)
	}
	return results, nil
}

// Information fetches the full detail record for one recipe
func (s *SpoonacularService) Information(ctx context.Context, id int) (*RecipeInformation, error) {
	ctx, cancel := context.WithTimeout(ctx, infoTimeout)
	defer cancel()

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("apiKey", s.apiKey).
		Get(fmt.Sprintf("/recipes/%d/information", id))
	if err != nil {
		return nil, fmt.Errorf("information request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("information returned status %d", resp.StatusCode())
	}

	var info RecipeInformation
	if err := json.Unmarshal(resp.Body(), &info); err != nil {
		return nil, fmt.Errorf("failed to decode information response: %w", err)
	}
	return &info, nil
}

// Nutrition fetches the nutrition summary for one recipe. Non-2xx counts
// as a failure so callers can null out all four fields.
func (s *SpoonacularService) Nutrition(ctx context.Context, id int) (*NutritionWidget, error) {
	ctx, cancel := context.WithTimeout(ctx, nutritionTimeout)
	defer cancel()

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("apiKey", s.apiKey).
		Get(fmt.Sprintf("/recipes/%d/nutritionWidget.json", id))
	if err != nil {
		return nil, fmt.Errorf("nutrition request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("nutrition returned status %d", resp.StatusCode())
	}

	var widget NutritionWidget
	if err := json.Unmarshal(resp.Body(), &widget); err != nil {
		return nil, fmt.Errorf("failed to decode nutrition response: %w", err)
	}
	return &widget, nil
}

// Similar fetches up to maxSimilarRecipes related recipes
func (s *SpoonacularService) Similar(ctx context.Context, id int) ([]SimilarRecipe, error) {
	ctx, cancel := context.WithTimeout(ctx, similarTimeout)
	defer cancel()

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"number": strconv.Itoa(maxSimilarRecipes),
			"apiKey": s.apiKey,
		}).
		Get(fmt.Sprintf("/recipes/%d/similar", id))
	if err != nil {
		return nil, fmt.Errorf("similar request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("similar returned status %d", resp.StatusCode())
	}

	var similar []SimilarRecipe
	if err := json.Unmarshal(resp.Body(), &similar); err != nil {
		return nil, fmt.Errorf("failed to decode similar response: %w", err)
	}
	return similar, nil
}
