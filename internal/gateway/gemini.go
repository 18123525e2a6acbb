package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/quizgen/quizgen-service/internal/models"
	"github.com/quizgen/quizgen-service/internal/utils"
	"github.com/quizgen/quizgen-service/internal/validator"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

const systemInstruction = "You are an expert educator. Create engaging, accurate quiz questions. " +
	"For Multiple Choice, provide 4 options. For True/False, provide 2 options (True, False). " +
	"Ensure the 'correctAnswer' exactly matches one of the options."

// GeminiConfig holds the settings for the Gemini generation client.
type GeminiConfig struct {
	APIKey         string
	TextModel      string
	URLModel       string
	BaseURL        string
	Timeout        time.Duration
	MaxSourceChars int
}

// GeminiGenerator calls the Gemini generateContent endpoint with a strict
// JSON response schema and validates the result against the question
// invariants before handing it to the state machine.
type GeminiGenerator struct {
	config    GeminiConfig
	client    *http.Client
	logger    utils.Logger
	validator *validator.Validator
}

// NewGeminiGenerator creates a Gemini-backed Generator.
func NewGeminiGenerator(config GeminiConfig, logger utils.Logger, v *validator.Validator) *GeminiGenerator {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	if config.MaxSourceChars == 0 {
		config.MaxSourceChars = 30000
	}

	return &GeminiGenerator{
		config:    config,
		client:    &http.Client{Timeout: config.Timeout},
		logger:    logger,
		validator: v,
	}
}

// Generate implements Generator.
func (g *GeminiGenerator) Generate(ctx context.Context, config models.QuizConfig) (*GeneratedQuiz, error) {
	if g.config.APIKey == "" {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, ErrMissingAPIKey)
	}

	model := g.config.TextModel
	if config.SourceType == models.SourceURL {
		// URL sources need the search-grounded model variant to fetch remote content.
		model = g.config.URLModel
	}

	body, err := json.Marshal(g.buildRequest(config))
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request: %w", ErrGenerationFailed, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.config.BaseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrGenerationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.config.APIKey)

	g.logger.Info("Calling question generation gateway",
		"model", model,
		"source_type", config.SourceType,
		"question_count", config.QuestionCount)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrGenerationFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		g.logger.Warn("Gateway returned non-OK status",
			"status_code", resp.StatusCode,
			"model", model)
		return nil, fmt.Errorf("%w: gateway status %d", ErrGenerationFailed, resp.StatusCode)
	}

	text, err := extractResponseText(respBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	return g.parseAndValidate(text)
}

// generateRequest is the generateContent request payload.
type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
	Tools             []map[string]any  `json:"tools,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string         `json:"responseMimeType"`
	ResponseSchema   map[string]any `json:"responseSchema"`
}

func (g *GeminiGenerator) buildRequest(config models.QuizConfig) generateRequest {
	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Generate a %s difficulty quiz with %d questions.\n", config.Difficulty, config.QuestionCount)
	fmt.Fprintf(&prompt, "The questions should be a mix of the following types: %s.\n\n", joinTypes(config.QuestionTypes))
	prompt.WriteString("Content Source:\n")

	var tools []map[string]any
	if config.SourceType == models.SourceURL {
		// Enable search grounding so the model can read the page.
		tools = []map[string]any{{"google_search": map[string]any{}}}
		fmt.Fprintf(&prompt, "Analyze the content from this URL: %s to generate the quiz. "+
			"Ensure questions are relevant to the page content.", config.SourceText)
	} else {
		source := truncateSource(config.SourceText, g.config.MaxSourceChars)
		fmt.Fprintf(&prompt, "%q\n\n(Note: Content truncated if too long).", source)
	}

	return generateRequest{
		Contents:          []content{{Parts: []part{{Text: prompt.String()}}}},
		SystemInstruction: &content{Parts: []part{{Text: systemInstruction}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   questionSchema,
		},
		Tools: tools,
	}
}

// truncateSource caps the source text at max bytes without splitting a
// multi-byte rune: the cut point walks back to the nearest rune boundary.
func truncateSource(source string, max int) string {
	if len(source) <= max {
		return source
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(source[cut]) {
		cut--
	}
	return source[:cut]
}

// generateResponse is the subset of the generateContent response we read.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func extractResponseText(body []byte) (string, error) {
	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("malformed gateway response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty gateway response")
	}

	text := parsed.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty gateway response")
	}
	return text, nil
}

var jsonFence = regexp.MustCompile("(?s)```json(.*?)```")

// cleanJSON strips a markdown code fence if the model wrapped its output in
// one despite the response schema.
func cleanJSON(text string) string {
	if match := jsonFence.FindStringSubmatch(text); match != nil {
		return match[1]
	}
	return text
}

// parseAndValidate decodes the schema-bound JSON payload and fails closed on
// any invariant violation. A quiz that fails here is a generation failure;
// partially valid output is never accepted.
func (g *GeminiGenerator) parseAndValidate(text string) (*GeneratedQuiz, error) {
	var result GeneratedQuiz
	if err := json.Unmarshal([]byte(cleanJSON(text)), &result); err != nil {
		return nil, fmt.Errorf("%w: malformed quiz payload: %w", ErrGenerationFailed, err)
	}

	if result.Title == "" {
		result.Title = "Generated Quiz"
	}

	// The model occasionally omits ids; assign them before the uniqueness check.
	for i := range result.Questions {
		if strings.TrimSpace(result.Questions[i].ID) == "" {
			result.Questions[i].ID = uuid.New().String()
		}
	}

	if err := g.validator.Question().ValidateBatch(result.Questions); err != nil {
		g.logger.Warn("Generated quiz failed validation", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	return &result, nil
}

func joinTypes(types []models.QuestionType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
