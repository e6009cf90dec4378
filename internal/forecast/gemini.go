package forecast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"surfglobe/internal/debug"
)

const promptTemplate = `Generate a realistic but fictional 5-day surf forecast for the coastal location at latitude %.4f, longitude %.4f.
  If this is on land, find the nearest realistic surf spot.
  Provide wave height in meters, swell period in seconds, wind speed in knots, and wind direction as a compass point (e.g., NW, S, ESE).
  The response must be a JSON object that strictly follows the provided schema. Do not include any markdown formatting like ` + "```json."

// contentGenerator is the part of genai.Models the provider uses
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiProvider asks a Gemini model for a structured JSON forecast
type GeminiProvider struct {
	models contentGenerator
	model  string
}

// NewGeminiProvider creates a provider backed by the Gemini API
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, &ValidationError{Field: "apiKey", Message: "is required"}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return newGeminiProvider(client.Models, model), nil
}

func newGeminiProvider(models contentGenerator, model string) *GeminiProvider {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiProvider{models: models, model: model}
}

// Model returns the Gemini model name
func (g *GeminiProvider) Model() string {
	return g.model
}

// Forecast requests a forecast for c. Every failure is logged and reported
// as ErrForecastUnavailable with the cause attached.
func (g *GeminiProvider) Forecast(ctx context.Context, c Coordinates) (*SurfForecast, error) {
	if err := ValidateCoordinates(c); err != nil {
		return nil, err
	}

	f, err := g.generate(ctx, c)
	if err != nil {
		debug.L().Error("Error fetching surf forecast from Gemini API",
			zap.Stringer("coords", c),
			zap.String("model", g.model),
			zap.Error(err))
		return nil, wrapUnavailable(err)
	}
	return f, nil
}

func (g *GeminiProvider) generate(ctx context.Context, c Coordinates) (*SurfForecast, error) {
	prompt := fmt.Sprintf(promptTemplate, c.Lat, c.Lon)

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   forecastSchema(),
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &NetworkError{Operation: "generate content", Err: err}
	}
	if resp == nil {
		return nil, &APIError{Message: "empty response"}
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, &APIError{Message: "response contained no text"}
	}

	return parseForecast(text)
}

// parseForecast decodes the model's JSON answer, tolerating a markdown fence
// around it
func parseForecast(text string) (*SurfForecast, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}

	var f SurfForecast
	if err := json.Unmarshal([]byte(text), &f); err != nil {
		return nil, fmt.Errorf("failed to decode forecast: %w", err)
	}
	if err := Validate(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

func forecastSchema() *genai.Schema {
	number := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeNumber, Description: desc}
	}
	str := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: desc}
	}

	day := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"day": str("Day of the week, abbreviated (e.g., Mon, Tue)."),
			"waveHeight": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"min": number("Minimum wave height in meters."),
					"max": number("Maximum wave height in meters."),
				},
				Required: []string{"min", "max"},
			},
			"swellPeriod":   number("Swell period in seconds."),
			"windSpeed":     number("Wind speed in knots."),
			"windDirection": str("Wind direction (e.g., NW, S, ESE)."),
			"summary":       str("A brief, engaging summary of the day's surf conditions."),
		},
		Required: []string{"day", "waveHeight", "swellPeriod", "windSpeed", "windDirection", "summary"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"locationName": str("A plausible name for the surf spot or coastal area near the given coordinates."),
			"forecast": {
				Type:        genai.TypeArray,
				Description: "An array of 5 daily forecast objects.",
				Items:       day,
			},
		},
		Required: []string{"locationName", "forecast"},
	}
}
