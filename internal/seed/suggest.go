package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/hashicorp/go-hclog"
	"google.golang.org/genai"

	"github.com/jmylchreest/swatch/internal/theme"
)

const (
	// DefaultModel is the Gemini model asked for suggestions.
	DefaultModel = "gemini-2.5-flash"

	// BackendGeminiAPI and BackendVertexAI select the Gen AI backend.
	BackendGeminiAPI = "gemini-api"
	BackendVertexAI  = "vertex-ai"
)

const instructions = `You pick colour themes for code snippets shown on a dark background.
Reply with JSON only, in the form {"name": "<short theme name>", "seeds": ["#rrggbb", "#rrggbb"]}.
The two seeds are the end points of a background gradient; the syntax colours are derived from them.
Theme description: `

var hexPattern = regexp.MustCompile(`#[0-9a-fA-F]{6}\b`)

// Generator turns a prompt into model text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Suggestion is a named seed pair proposed for a prompt.
type Suggestion struct {
	Name  string    `json:"name"`
	Seeds [2]string `json:"seeds"`
}

// Theme converts the suggestion into a registrable theme.
func (s Suggestion) Theme(description string) theme.Theme {
	return theme.Theme{Name: s.Name, Description: description, Seeds: s.Seeds}
}

// Suggest asks gen for a seed pair matching description.
func Suggest(ctx context.Context, gen Generator, description string) (Suggestion, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Suggestion{}, fmt.Errorf("prompt cannot be empty")
	}

	text, err := gen.Generate(ctx, instructions+description)
	if err != nil {
		return Suggestion{}, fmt.Errorf("suggestion request failed: %w", err)
	}

	return ParseSuggestion(text)
}

// ParseSuggestion reads a model reply. JSON is preferred, optionally
// wrapped in a markdown fence; otherwise the first hex codes in the text
// are used.
func ParseSuggestion(text string) (Suggestion, error) {
	body := strings.TrimSpace(text)
	body = strings.TrimPrefix(body, "```json")
	body = strings.TrimPrefix(body, "```")
	body = strings.TrimSuffix(body, "```")

	var reply struct {
		Name  string   `json:"name"`
		Seeds []string `json:"seeds"`
	}
	picked := hexPattern.FindAllString(text, theme.MaxPickedColours)
	if err := json.Unmarshal([]byte(strings.TrimSpace(body)), &reply); err == nil && len(reply.Seeds) > 0 {
		picked = reply.Seeds
	}
	if len(picked) == 0 {
		return Suggestion{}, fmt.Errorf("no colours found in reply: %q", truncate(text, 80))
	}

	seeds, err := theme.NormaliseSeeds(picked)
	if err != nil {
		return Suggestion{}, fmt.Errorf("invalid suggested colours: %w", err)
	}

	name := strings.ToLower(strings.Join(strings.Fields(reply.Name), "-"))
	if name == "" {
		name = "suggested"
	}
	return Suggestion{Name: name, Seeds: seeds}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// GenAIOptions configures the Google Gen AI generator.
type GenAIOptions struct {
	Backend string
	Model   string
	Logger  hclog.Logger
}

// GenAI generates suggestions with Google Gen AI.
type GenAI struct {
	client *genai.Client
	model  string
	logger hclog.Logger
}

// NewGenAI creates a Gen AI client. The Gemini API backend requires
// GOOGLE_API_KEY; Vertex AI uses application default credentials.
func NewGenAI(ctx context.Context, opts GenAIOptions) (*GenAI, error) {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	model := opts.Model
	if model == "" {
		model = DefaultModel
	}

	cfg := &genai.ClientConfig{}
	switch opts.Backend {
	case "", BackendGeminiAPI:
		cfg.Backend = genai.BackendGeminiAPI
		apiKey := os.Getenv("GOOGLE_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("GOOGLE_API_KEY environment variable is required\nGet one at: https://aistudio.google.com/api-keys")
		}
		cfg.APIKey = apiKey
	case BackendVertexAI:
		cfg.Backend = genai.BackendVertexAI
	default:
		return nil, fmt.Errorf("unknown genai backend: %s (must be %s or %s)", opts.Backend, BackendGeminiAPI, BackendVertexAI)
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gen AI client: %w", err)
	}

	logger.Debug("created genai client", "backend", opts.Backend, "model", model)
	return &GenAI{client: client, model: model, logger: logger}, nil
}

// Generate implements Generator.
func (g *GenAI) Generate(ctx context.Context, prompt string) (string, error) {
	g.logger.Debug("calling GenerateContent", "model", g.model)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.7),
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", err
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from %s", g.model)
	}
	g.logger.Trace("model reply", "text", text)
	return text, nil
}
