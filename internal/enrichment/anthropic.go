// Package enrichment looks up product details, search suggestions, and
// thumbnail candidates through the Anthropic Messages API. The storefront
// treats it as a best-effort collaborator: a missing API key or a failed
// call degrades the admin search experience, never the store itself.
package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/harlansk/sleipnir/internal/domain"
)

const (
	defaultBaseURL   = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
)

// ErrNotConfigured is returned when no API key was provided.
var ErrNotConfigured = &domain.Error{
	Code:    domain.ENOTIMPL,
	Message: "Product enrichment is not configured",
}

// Details is the enriched product profile extracted from the model reply.
// Vehicle and phone fields are unioned; only the relevant set is populated.
type Details struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Image       string                  `json:"image"`
	Price       float64                 `json:"price"`
	Category    domain.Category         `json:"category"`
	Status      domain.ProductStatus    `json:"status"`
	Condition   domain.ProductCondition `json:"condition"`
	Year        int                     `json:"year,omitempty"`

	// Vehicle fields
	Transmission string `json:"transmission,omitempty"`
	Horsepower   int    `json:"horsepower,omitempty"`
	EngineSize   string `json:"engineSize,omitempty"`
	FuelType     string `json:"fuelType,omitempty"`
	VehicleType  string `json:"vehicleType,omitempty"`
	Displacement int    `json:"displacement,omitempty"`

	// Phone fields
	Processor       string `json:"processor,omitempty"`
	RAM             string `json:"ram,omitempty"`
	Storage         string `json:"storage,omitempty"`
	BatteryCapacity string `json:"batteryCapacity,omitempty"`
	ScreenSize      string `json:"screenSize,omitempty"`
	ScreenType      string `json:"screenType,omitempty"`
	RefreshRate     string `json:"refreshRate,omitempty"`
	Camera          string `json:"camera,omitempty"`
	OperatingSystem string `json:"operatingSystem,omitempty"`
	Connectivity    string `json:"connectivity,omitempty"`
}

// ThumbnailResult holds the image candidates found for a product.
type ThumbnailResult struct {
	ImageURL     string   `json:"imageUrl"`
	ImageOptions []string `json:"imageOptions"`
}

// Config contains configuration for the enrichment client.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string        // optional, defaults to the public API
	Logger  *slog.Logger  // optional, defaults to slog.Default()
	Timeout time.Duration // optional, defaults to 30s
}

// Client calls the Anthropic Messages API.
type Client struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates an enrichment client. A missing API key is not an error
// at construction time; calls will return ErrNotConfigured.
func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.APIKey == "" {
		logger.Warn("ANTHROPIC_API_KEY is not set, product enrichment disabled")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		logger:     logger,
	}
}

// phoneKeywords route a search query to the phone prompt instead of the
// vehicle prompt.
var phoneKeywords = []string{
	"iphone", "samsung", "galaxy", "pixel", "xiaomi", "redmi", "oppo",
	"vivo", "oneplus", "huawei", "honor", "realme", "poco", "phone",
	"smartphone",
}

const vehicleSystemPrompt = `You are a vehicle database expert. Given a vehicle name, return detailed and accurate information about that vehicle as a JSON object with the fields: name, description, image, price (number), category ("cars" or "motorcycles"), status ("available"), condition ("new" or "pre-owned"), year (number), transmission, horsepower (number), engineSize, fuelType, vehicleType, displacement (cc, for motorcycles). Use realistic values. If you don't know a specific value, provide a reasonable estimate. Return only the JSON object.`

const phoneSystemPrompt = `You are a smartphone database expert. Given a phone name, return detailed and accurate information about that phone as a JSON object with the fields: name, description, image, price (number), category ("phones"), status ("available"), condition ("new" or "pre-owned"), year (number), processor, ram, storage, batteryCapacity, screenSize, screenType, refreshRate, camera, operatingSystem, connectivity. Use realistic values. If you don't know a specific value, provide a reasonable estimate. Return only the JSON object.`

const suggestionsSystemPrompt = `You are a vehicle and smartphone search assistant. Given a partial query, return a list of 5-10 matching vehicle or smartphone suggestions as a JSON array of strings. Only return the JSON array, no additional commentary. Prioritize popular models that match the query.`

const thumbnailSystemPrompt = `You are an image search expert. Given a product name and category, find 4-5 high-quality, direct image URLs (JPG, PNG, or WEBP) for the product from free stock sources such as unsplash.com, pexels.com, flickr.com, wikimedia.org, or pixabay.com. Format your response as a JSON object: {"imageUrls": ["...", "..."]}. Each URL must link directly to an image file, not a webpage.`

// ProductDetails looks up an enriched profile for a product by name,
// routing to the phone or vehicle prompt based on the query.
func (c *Client) ProductDetails(ctx context.Context, name string) (*Details, error) {
	system := vehicleSystemPrompt
	lower := strings.ToLower(name)
	for _, kw := range phoneKeywords {
		if strings.Contains(lower, kw) {
			system = phoneSystemPrompt
			break
		}
	}

	text, err := c.complete(ctx, system, 1024, fmt.Sprintf("Provide detailed information for: %s", name))
	if err != nil {
		return nil, err
	}

	var details Details
	if err := json.Unmarshal([]byte(extractJSON(text)), &details); err != nil {
		return nil, domain.Internal(err, "enrichment.product_details", "model reply was not valid JSON")
	}

	// Backfill fields the model left out so callers always get a usable
	// profile.
	if details.Name == "" {
		details.Name = name
	}
	if !details.Category.Valid() {
		if system == phoneSystemPrompt {
			details.Category = domain.CategoryPhones
		} else {
			details.Category = domain.CategoryCars
		}
	}
	details.Status = domain.ProductAvailable
	if details.Condition != domain.ConditionNew && details.Condition != domain.ConditionPreOwned {
		details.Condition = domain.ConditionNew
	}
	if details.Year == 0 {
		details.Year = time.Now().Year()
	}

	return &details, nil
}

// VehicleSuggestions returns search suggestions for a partial query.
func (c *Client) VehicleSuggestions(ctx context.Context, query string) ([]string, error) {
	text, err := c.complete(ctx, suggestionsSystemPrompt, 500,
		fmt.Sprintf("Provide vehicle or smartphone suggestions matching: %s", query))
	if err != nil {
		return nil, err
	}

	var suggestions []string
	if err := json.Unmarshal([]byte(extractJSON(text)), &suggestions); err != nil {
		return nil, domain.Internal(err, "enrichment.suggestions", "model reply was not a JSON array")
	}

	return suggestions, nil
}

// Thumbnail finds candidate image URLs for a product. The first candidate
// that passes an availability probe becomes ImageURL; candidates that fail
// the probe are dropped.
func (c *Client) Thumbnail(ctx context.Context, productName, category string) (*ThumbnailResult, error) {
	text, err := c.complete(ctx, thumbnailSystemPrompt, 1000,
		fmt.Sprintf("Find me 4-5 image results for: %s (%s)", productName, category))
	if err != nil {
		return nil, err
	}

	var parsed struct {
		ImageURLs []string `json:"imageUrls"`
	}
	var candidates []string
	if err := json.Unmarshal([]byte(extractJSON(text)), &parsed); err == nil && len(parsed.ImageURLs) > 0 {
		candidates = parsed.ImageURLs
	} else {
		// Fall back to scraping bare URLs out of the reply.
		candidates = urlPattern.FindAllString(text, -1)
	}

	var valid []string
	for _, u := range candidates {
		ok, err := c.CheckImage(ctx, u)
		if err == nil && ok {
			valid = append(valid, u)
		}
	}
	if len(valid) == 0 {
		return nil, domain.Invalid("enrichment.thumbnail", "no usable image URL was found")
	}

	return &ThumbnailResult{ImageURL: valid[0], ImageOptions: valid}, nil
}

var urlPattern = regexp.MustCompile(`https?://[^\s"'<>\)]+\.(?:jpg|jpeg|png|webp)`)

// CheckImage probes an image URL with a HEAD request and reports whether it
// resolves to an image content type.
func (c *Client) CheckImage(ctx context.Context, imageURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, imageURL, nil)
	if err != nil {
		return false, fmt.Errorf("invalid image URL: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, nil
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	return resp.StatusCode < 300 && strings.HasPrefix(contentType, "image/"), nil
}

// ---------------------------------------------------------------------------
// Messages API plumbing

type messagesRequest struct {
	Model     string    `json:"model"`
	System    string    `json:"system,omitempty"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// complete sends one user message and returns the first text block of the
// reply.
func (c *Client) complete(ctx context.Context, system string, maxTokens int, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(messagesRequest{
		Model:     c.model,
		System:    system,
		MaxTokens: maxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", domain.Internal(err, "enrichment.complete", "failed to encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", domain.Internal(err, "enrichment.complete", "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Anthropic-Version", anthropicVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", domain.Internal(err, "enrichment.complete", "enrichment request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("enrichment API returned an error",
			"status", resp.StatusCode, "body", string(snippet))
		return "", domain.Internal(fmt.Errorf("status %d", resp.StatusCode),
			"enrichment.complete", "enrichment request failed")
	}

	var decoded messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", domain.Internal(err, "enrichment.complete", "failed to decode response")
	}

	for _, block := range decoded.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}

	return "", domain.Internal(nil, "enrichment.complete", "response contained no text block")
}

var fencePattern = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")

// extractJSON strips a markdown code fence from a model reply, if present.
func extractJSON(text string) string {
	if m := fencePattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(text)
}
