package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	// NoResultsMessage is returned when both search paths come back empty
	NoResultsMessage = "I couldn't find recipes for that query. Could you give me more details (e.g., ingredients you have)?"

	// SynthesisFallbackMessage is returned when the model call fails
	SynthesisFallbackMessage = "I found recipes; see the detailed cards below. (Summary unavailable due to LLM error.)"

	maxSampleIngredients = 6
)

const synthesisTemplate = `You are a professional, friendly recipe assistant (no HTML). The user asked: %s

Below are the top recipes found (each block separated by ---). Using only the provided information (and not inventing details), produce a Markdown-formatted message that includes:

- A short chef-style introduction recommending which recipe to try and WHY (1-2 sentences).
- For each recipe (numbered), include:
  - A bold title line (e.g., **1) Garlic Chicken Stir-Fry**)
  - A one-line summary (1 sentence) highlighting what the dish is and a pro (e.g., quick, healthy).
  - A **Ingredients** subheading with the full ingredient list (if available in provided JSON, else list "See recipe link").
  - A **Steps** subheading containing either a numbered step list if steps are available or "See recipe link".
  - A **Nutrition** subheading listing Calories, Carbs, Fat, Protein (if available). Use "N/A" when missing.
  - A "Source" line with "View full recipe: <url>" (so frontend can render link).

- At the end include a "Similar recipes:" bullet list with titles (if available).
- Keep the reply concise but full — do not include raw HTML tags. Use Markdown features (**, ###, 1., -).
- Use plain text only; do NOT include HTML tags or HTML entities.

Here are the recipe blocks:

%s`

// Completer is the language-model dependency of the synthesizer
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// SynthesizerService renders the enriched recipe set into a digest and
// asks the model for a structured Markdown summary
type SynthesizerService struct {
	llm    Completer
	logger *zap.Logger
}

// NewSynthesizerService creates a new SynthesizerService instance
func NewSynthesizerService(llm Completer, logger *zap.Logger) *SynthesizerService {
	return &SynthesizerService{
		llm:    llm,
		logger: logger,
	}
}

// Synthesize produces the user-facing reply. An empty recipe list yields
// the fixed clarification text without a model call; a model failure
// yields the fixed fallback text.
func (s *SynthesizerService) Synthesize(ctx context.Context, query string, recipes []Recipe) string {
	if len(recipes) == 0 {
		return NoResultsMessage
	}

	prompt := fmt.Sprintf(synthesisTemplate, query, buildDigest(recipes))

	text, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		s.logger.Warn("synthesis model call failed", zap.Error(err))
		return SynthesisFallbackMessage
	}

	// The prompt forbids HTML but the model is not trusted to comply
	return StripHTML(text)
}

// buildDigest renders the compact per-recipe blocks fed to the model.
// Absent fields are omitted from their block.
func buildDigest(recipes []Recipe) string {
	var b strings.Builder
	for _, r := range recipes {
		parts := []string{fmt.Sprintf("Title: %s", r.Title)}
		if r.ReadyInMinutes != nil {
			parts = append(parts, fmt.Sprintf("Time: %d min", *r.ReadyInMinutes))
		}
		if r.Servings != nil {
			parts = append(parts, fmt.Sprintf("Serves: %d", *r.Servings))
		}
		if r.Nutrition.Calories != nil {
			parts = append(parts, fmt.Sprintf("Calories: %s", *r.Nutrition.Calories))
		}
		parts = append(parts, "Ingredients sample: "+sampleIngredients(r.Ingredients))
		parts = append(parts, fmt.Sprintf("Steps count: %d", len(r.Steps)))
		if r.SourceURL != "" {
			parts = append(parts, fmt.Sprintf("Link: %s", r.SourceURL))
		}
		b.WriteString(strings.Join(parts, "\n"))
		b.WriteString("\n\n---\n\n")
	}
	return b.String()
}

func sampleIngredients(ingredients []string) string {
	if len(ingredients) == 0 {
		return "N/A"
	}
	if len(ingredients) > maxSampleIngredients {
		ingredients = ingredients[:maxSampleIngredients]
	}
	return strings.Join(ingredients, ", ")
}
