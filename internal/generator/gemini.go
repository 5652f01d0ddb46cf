package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"google.golang.org/genai"

	"reel_planner/internal/domain"
)

const (
	DefaultModel = "gemini-1.5-flash"
	ideasPerCall = 5
)

var codeFence = regexp.MustCompile("```(?:json)?")

// ContentModel is the part of the genai client the generator calls.
// *genai.Models satisfies it.
type ContentModel interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Gemini generates ideas through the Gemini API.
type Gemini struct {
	models ContentModel
	model  string
	logger *slog.Logger
}

// NewGemini creates a Gemini client for the Gemini API backend.
func NewGemini(ctx context.Context, cfg GeminiConfig, logger *slog.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return NewGeminiWithModel(client.Models, cfg.Model, logger), nil
}

func NewGeminiWithModel(models ContentModel, model string, logger *slog.Logger) *Gemini {
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{
		models: models,
		model:  model,
		logger: logger.With("generator", "gemini", "model", model),
	}
}

func (g *Gemini) Generate(ctx context.Context, niche string) ([]domain.ReelIdea, error) {
	start := time.Now()

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(buildPrompt(niche)), nil)
	if err != nil {
		return nil, &domain.GenerationError{Err: fmt.Errorf("gemini api error: %w", err)}
	}

	var text string
	if resp != nil {
		text = resp.Text()
	}

	ideas, err := parseIdeas(text)
	if err != nil {
		return nil, err
	}

	if len(ideas) != ideasPerCall {
		g.logger.Warn("unexpected number of ideas", "niche", niche, "count", len(ideas))
	}
	g.logger.Debug("generated ideas", "niche", niche, "count", len(ideas), "duration", time.Since(start))

	return ideas, nil
}

func buildPrompt(niche string) string {
	return fmt.Sprintf(`You are an AI generating Instagram Reel ideas.

Create EXACTLY %d ideas for niche: "%s".

Return ONLY a JSON array like:
[
  {
    "idea": "Idea text here",
    "hooks": ["Hook 1", "Hook 2", "Hook 3"],
    "caption_short": "Short caption",
    "caption_long": "Detailed caption with more information",
    "hashtags": ["#hashtag1", "#hashtag2", "#hashtag3", "#hashtag4", "#hashtag5"]
  }
]

Important:
- No Markdown formatting
- No explanations
- ONLY return the JSON array
- Ensure all fields are properly escaped
- Include exactly %d ideas`, ideasPerCall, niche, ideasPerCall)
}

// parseIdeas strips markdown fences from the provider text and decodes it
// as a non-empty array of ideas.
func parseIdeas(text string) ([]domain.ReelIdea, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &domain.GenerationError{Err: errors.New("empty response from gemini api")}
	}

	cleaned := strings.TrimSpace(codeFence.ReplaceAllString(text, ""))

	var raw any
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, &domain.GenerationError{Raw: cleaned, Err: fmt.Errorf("parse json from response: %w", err)}
	}

	list, ok := raw.([]any)
	if !ok || len(list) == 0 {
		return nil, &domain.GenerationError{Raw: cleaned, Err: errors.New("response is not a valid list of ideas")}
	}

	var ideas []domain.ReelIdea
	if err := json.Unmarshal([]byte(cleaned), &ideas); err != nil {
		return nil, &domain.GenerationError{Raw: cleaned, Err: fmt.Errorf("decode ideas: %w", err)}
	}

	for i, idea := range ideas {
		if err := domain.Validate(idea); err != nil {
			return nil, &domain.GenerationError{Raw: cleaned, Err: fmt.Errorf("idea %d: %v", i, err)}
		}
	}

	return ideas, nil
}
