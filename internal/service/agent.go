package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	// searchLimit bounds how many candidate recipes one request enriches
	searchLimit = 3

	// requestDeadline caps the whole pipeline run, on top of the
	// per-call timeouts inside the clients
	requestDeadline = 45 * time.Second
)

// AgentResult is the payload handed back to the HTTP layer
type AgentResult struct {
	Text    string   `json:"text"`
	Recipes []Recipe `json:"recipes"`
}

// AgentService runs the fixed two-stage pipeline: search+enrich, then
// synthesize. Each stage returns its result to the next; upstream and
// model failures surface as degraded content, never as errors.
type AgentService struct {
	search *SpoonacularService
	enrich *EnrichmentService
	synth  *SynthesizerService
	logger *zap.Logger
}

// NewAgentService creates a new AgentService instance
func NewAgentService(search *SpoonacularService, enrich *EnrichmentService, synth *SynthesizerService, logger *zap.Logger) *AgentService {
	return &AgentService{
		search: search,
		enrich: enrich,
		synth:  synth,
		logger: logger,
	}
}

// Run executes the pipeline for one user message
func (a *AgentService) Run(ctx context.Context, message string) *AgentResult {
	ctx, cancel := context.WithTimeout(ctx, requestDeadline)
	defer cancel()

	start := time.Now()
	results := a.search.Search(ctx, message, searchLimit)
	recipes := a.enrich.EnrichAll(ctx, results)
	text := a.synth.Synthesize(ctx, message, recipes)

	a.logger.Info("pipeline run complete",
		zap.Int("recipes", len(recipes)),
		zap.Duration("elapsed", time.Since(start)))

	return &AgentResult{
		Text:    text,
		Recipes: recipes,
	}
}
