package service

// SearchResult identifies a candidate recipe returned by either search
// endpoint. It is consumed immediately by enrichment and never persisted.
type SearchResult struct {
	ID                   int    `json:"id"`
	Title                string `json:"title"`
	Image                string `json:"image"`
	SourceURL            string `json:"sourceUrl"`
	SpoonacularSourceURL string `json:"spoonacularSourceUrl"`
}

// Nutrition is the per-recipe nutrition summary. All four fields are nil
// when the nutrition fetch fails; partial values are passed through as
// the upstream reports them (e.g. "316", "49g").
type Nutrition struct {
	Calories *string `json:"calories"`
	Carbs    *string `json:"carbs"`
	Fat      *string `json:"fat"`
	Protein  *string `json:"protein"`
}

// SimilarRecipe is a lightweight pointer to a related recipe
type SimilarRecipe struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// Recipe is the normalized unit of output, assembled fresh per request
// from upstream data
type Recipe struct {
	ID             int             `json:"id"`
	Title          string          `json:"title"`
	Image          string          `json:"image,omitempty"`
	SourceURL      string          `json:"sourceUrl,omitempty"`
	ReadyInMinutes *int            `json:"readyInMinutes"`
	Servings       *int            `json:"servings"`
	Summary        string          `json:"summary"`
	Ingredients    []string        `json:"ingredients"`
	Steps          []string        `json:"steps"`
	Nutrition      Nutrition       `json:"nutrition"`
	Similar        []SimilarRecipe `json:"similar"`
}
