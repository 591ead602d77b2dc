package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// EnrichmentService turns bare search results into normalized recipe
// records by fanning out the detail, nutrition and similar-recipes
// fetches per recipe.
type EnrichmentService struct {
	spoonacular *SpoonacularService
	logger      *zap.Logger
}

// NewEnrichmentService creates a new EnrichmentService instance
func NewEnrichmentService(spoonacular *SpoonacularService, logger *zap.Logger) *EnrichmentService {
	return &EnrichmentService{
		spoonacular: spoonacular,
		logger:      logger,
	}
}

// Each sub-fetch carries its own error so a failure can be folded into
// the optional fields without aborting the recipe.
type detailFetch struct {
	info *RecipeInformation
	err  error
}

type nutritionFetch struct {
	widget *NutritionWidget
	err    error
}

type similarFetch struct {
	recipes []SimilarRecipe
	err     error
}

// EnrichAll enriches every search result independently. The output has
// the same length and identifier order as the input, no matter which
// sub-fetches fail.
func (s *EnrichmentService) EnrichAll(ctx context.Context, results []SearchResult) []Recipe {
	recipes := make([]Recipe, 0, len(results))
	for _, r := range results {
		recipes = append(recipes, s.Enrich(ctx, r))
	}
	return recipes
}

// Enrich assembles one Recipe from a search result. The three sub-fetches
// run concurrently and are joined before assembly; each failure is
// isolated to its own fields.
func (s *EnrichmentService) Enrich(ctx context.Context, result SearchResult) Recipe {
	var (
		wg      sync.WaitGroup
		detail  detailFetch
		nut     nutritionFetch
		similar similarFetch
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		detail.info, detail.err = s.spoonacular.Information(ctx, result.ID)
	}()
	go func() {
		defer wg.Done()
		nut.widget, nut.err = s.spoonacular.Nutrition(ctx, result.ID)
	}()
	go func() {
		defer wg.Done()
		similar.recipes, similar.err = s.spoonacular.Similar(ctx, result.ID)
	}()
	wg.Wait()

	info := detail.info
	if detail.err != nil {
		s.logger.Warn("recipe detail fetch failed",
			zap.Int("recipe_id", result.ID), zap.Error(detail.err))
		info = &RecipeInformation{}
	}

	recipe := Recipe{
		ID:             result.ID,
		Title:          result.Title,
		Image:          resolveImage(info, result),
		SourceURL:      resolveSourceURL(info, result),
		ReadyInMinutes: info.ReadyInMinutes,
		Servings:       info.Servings,
		Summary:        StripHTML(info.Summary),
		Ingredients:    normalizeIngredients(info.ExtendedIngredients),
		Steps:          normalizeSteps(info),
		Similar:        []SimilarRecipe{},
	}

	if nut.err != nil {
		s.logger.Warn("nutrition fetch failed",
			zap.Int("recipe_id", result.ID), zap.Error(nut.err))
	} else {
		recipe.Nutrition = Nutrition{
			Calories: optionalString(nut.widget.Calories),
			Carbs:    optionalString(nut.widget.Carbs),
			Fat:      optionalString(nut.widget.Fat),
			Protein:  optionalString(nut.widget.Protein),
		}
	}

	if similar.err != nil {
		s.logger.Warn("similar recipes fetch failed",
			zap.Int("recipe_id", result.ID), zap.Error(similar.err))
	} else if similar.recipes != nil {
		recipe.Similar = similar.recipes
	}

	return recipe
}

// resolveImage applies the image priority order: detailed-info image,
// search-result image, constructed URL from the identifier, absent.
func resolveImage(info *RecipeInformation, result SearchResult) string {
	if info.Image != "" {
		return info.Image
	}
	if result.Image != "" {
		return result.Image
	}
	if result.ID != 0 {
		return fmt.Sprintf("https://spoonacular.com/recipeImages/%d-636x393.jpg", result.ID)
	}
	return ""
}

func resolveSourceURL(info *RecipeInformation, result SearchResult) string {
	if result.SourceURL != "" {
		return result.SourceURL
	}
	if result.SpoonacularSourceURL != "" {
		return result.SpoonacularSourceURL
	}
	if info.SourceURL != "" {
		return info.SourceURL
	}
	return info.SpoonacularSourceURL
}

func normalizeIngredients(ingredients []Ingredient) []string {
	out := make([]string, 0, len(ingredients))
	for _, ig := range ingredients {
		orig := ig.OriginalString
		if orig == "" {
			orig = ig.Original
		}
		if orig == "" {
			continue
		}
		out = append(out, StripHTML(orig))
	}
	return out
}

// normalizeSteps prefers structured step-by-step instructions, flattening
// all sections in order; a flat instructions string is sentence-split as
// the fallback.
func normalizeSteps(info *RecipeInformation) []string {
	steps := make([]string, 0)
	if len(info.AnalyzedInstructions) > 0 {
		for _, section := range info.AnalyzedInstructions {
			for _, step := range section.Steps {
				if step.Step != "" {
					steps = append(steps, StripHTML(step.Step))
				}
			}
		}
		return steps
	}
	if info.Instructions != "" {
		steps = append(steps, SplitSentences(StripHTML(info.Instructions))...)
	}
	return steps
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
