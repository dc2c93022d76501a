// Package gemini implements the generation.ListingGenerator interface using
// Google's Gemini API for listing text and Imagen for listing images.
//
// This package is an infrastructure adapter: it translates between the
// application's Draft type and the genai client without exposing the
// external service to the core application.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/saleaway/saleaway-api/internal/config"
	"github.com/saleaway/saleaway-api/internal/domain"
	"github.com/saleaway/saleaway-api/internal/generation"
	"github.com/saleaway/saleaway-api/internal/platform/logger"
	"github.com/saleaway/saleaway-api/internal/storage"
	"github.com/shopspring/decimal"
)

// minPrice is the floor applied when the model produces a non-positive
// price. The pipeline never returns a price at or below zero.
var minPrice = decimal.New(99, -2) // 0.99

// textPromptFormat demands a bare JSON object so the response can be
// unmarshaled directly. Models still occasionally wrap the object in a code
// fence, which parseDraft strips.
const textPromptFormat = `You are helping a seller draft a marketplace listing.
Given the item title %q, respond with a single JSON object and nothing else,
using exactly these keys:
{"name": "<catchy listing name, at most 200 characters>",
 "description": "<two or three sentences describing the item>",
 "price": <fair asking price in USD as a number>}`

// imageResult is what the image stage produces: either inline bytes or a
// hosted URI, plus the content type when known.
type imageResult struct {
	data     []byte
	uri      string
	mimeType string
}

// ListingGenerator implements generation.ListingGenerator. The two external
// calls are held as function fields so tests can substitute them.
type ListingGenerator struct {
	logger  *slog.Logger
	objects storage.ObjectStore

	generateText  func(ctx context.Context, prompt string) (string, error)
	generateImage func(ctx context.Context, prompt string) (*imageResult, error)
}

// Ensure ListingGenerator implements generation.ListingGenerator
var _ generation.ListingGenerator = (*ListingGenerator)(nil)

// NewListingGenerator creates a ListingGenerator backed by the Gemini API.
// The objects store receives generated image bytes; upload failures degrade
// to a draft without an image.
func NewListingGenerator(
	ctx context.Context,
	log *slog.Logger,
	cfg config.LLMConfig,
	objects storage.ObjectStore,
) (*ListingGenerator, error) {
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.TextModel == "" || cfg.ImageModel == "" {
		return nil, fmt.Errorf("%w: model names cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := newGenaiClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	g := &ListingGenerator{
		logger:  log.With(slog.String("component", "listing_generator")),
		objects: objects,
	}
	g.generateText = func(ctx context.Context, prompt string) (string, error) {
		return client.generateText(ctx, cfg.TextModel, prompt)
	}
	g.generateImage = func(ctx context.Context, prompt string) (*imageResult, error) {
		return client.generateImage(ctx, cfg.ImageModel, prompt)
	}
	return g, nil
}

// GenerateListing implements generation.ListingGenerator. The text stage is
// required; the image and upload stages degrade to an absent image on any
// failure.
func (g *ListingGenerator) GenerateListing(ctx context.Context, title string) (*generation.Draft, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	if strings.TrimSpace(title) == "" {
		return nil, generation.ErrEmptyTitle
	}

	raw, err := g.generateText(ctx, fmt.Sprintf(textPromptFormat, title))
	if err != nil {
		log.Error("text generation failed",
			slog.String("error", err.Error()),
			slog.String("title", title))
		return nil, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	draft, err := parseDraft(raw)
	if err != nil {
		log.Warn("could not parse model output",
			slog.String("error", err.Error()),
			slog.Int("response_length", len(raw)))
		return nil, err
	}
	normalizeDraft(draft)

	// Image stage. Failures here are logged and swallowed: the pipeline
	// never fails solely because image generation failed.
	if imageURL := g.runImageStage(ctx, log, draft); imageURL != "" {
		draft.ImageURL = imageURL
	}

	log.Info("listing draft generated",
		slog.String("name", draft.Name),
		slog.String("price", draft.Price.String()),
		slog.Bool("has_image", draft.ImageURL != ""))
	return draft, nil
}

// runImageStage generates an image for the draft and stores it, returning
// the public URL or an empty string when any step degrades.
func (g *ListingGenerator) runImageStage(ctx context.Context, log *slog.Logger, draft *generation.Draft) string {
	prompt := fmt.Sprintf("A clean product photo for a marketplace listing: %s. %s",
		draft.Name, draft.Description)

	result, err := g.generateImage(ctx, prompt)
	if err != nil {
		log.Warn("image generation failed, continuing without image",
			slog.String("error", err.Error()))
		return ""
	}

	data := result.data
	if len(data) == 0 && result.uri != "" {
		data, err = fetchImage(ctx, result.uri)
		if err != nil {
			log.Warn("failed to download hosted image, continuing without image",
				slog.String("error", err.Error()))
			return ""
		}
	}
	if len(data) == 0 {
		log.Warn("image stage produced no bytes, continuing without image")
		return ""
	}

	contentType := result.mimeType
	if contentType == "" {
		contentType = "image/png"
	}

	url, err := g.objects.StoreBytes(ctx, data, contentType, extensionForMIME(contentType))
	if err != nil {
		log.Warn("image upload failed, continuing without image",
			slog.String("error", err.Error()))
		return ""
	}
	return url
}

// draftPayload is the JSON shape demanded from the text model.
// decimal.Decimal tolerates both number and string prices.
type draftPayload struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// parseDraft strips optional code-fence wrapping and unmarshals the model
// output. A response that does not parse, or that parses without a name,
// fails with ErrInvalidResponse; there is no fallback content.
func parseDraft(raw string) (*generation.Draft, error) {
	cleaned := stripCodeFence(raw)

	var payload draftPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}
	if payload.Name == "" {
		return nil, fmt.Errorf("%w: missing name field", generation.ErrInvalidResponse)
	}

	return &generation.Draft{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
	}, nil
}

// normalizeDraft truncates text fields to their storage bounds and clamps
// the price into the valid range at two decimal places.
func normalizeDraft(draft *generation.Draft) {
	draft.Name = truncateRunes(draft.Name, domain.ListingNameMaxLen)
	draft.Description = truncateRunes(draft.Description, domain.ListingDescriptionMaxLen)

	draft.Price = draft.Price.Round(2)
	if !draft.Price.IsPositive() {
		draft.Price = minPrice
	}
}

// stripCodeFence removes a surrounding ``` or ```json fence, if present.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	} else {
		// Single-line fence such as ```{...}```
		trimmed = strings.TrimPrefix(trimmed, "json")
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

// extensionForMIME maps an image content type to a file extension.
func extensionForMIME(contentType string) string {
	switch contentType {
	case "image/png":
		return "png"
	case "image/jpeg":
		return "jpg"
	case "image/webp":
		return "webp"
	default:
		return "jpg"
	}
}

// fetchImage downloads image bytes from a hosted URI.
func fetchImage(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching image", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
