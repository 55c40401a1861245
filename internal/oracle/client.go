package oracle

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"calorie-tracker-bot/internal/features/diary/models"
)

// SentinelNotFound is the exact phrase the model is instructed to reply with
// when no dish can be identified.
const SentinelNotFound = "Dish not found"

var (
	// ErrDishNotFound means the model answered, but found no dish.
	ErrDishNotFound = errors.New("dish not found")
	// ErrMalformedResponse means the model's answer could not be used:
	// empty body, non-JSON payload or missing mandatory fields. Callers
	// must not conflate it with ErrDishNotFound.
	ErrMalformedResponse = errors.New("malformed oracle response")
)

const systemPrompt = `You are an assistant that recognizes dishes and estimates their nutrition from a photo or description. ` +
	`If the photo shows no dish but the hint describes one (for example "coffee with milk, 300 ml"), build the answer from the hint. ` +
	`When unsure about calories, prefer the higher estimate. ` +
	`If a dish is recognized, reply with ONLY a JSON object, no markdown and no extra text:
{
  "name": "string",
  "weight_g": 16,
  "calories": 52,
  "protein_g": 0.3,
  "fat_g": 0.2,
  "carbs_g": 14,
  "calories_per_100g": 321
}
If no dish can be identified at all, reply with exactly: ` + SentinelNotFound

const userPrompt = `Determine whether the photo or the hint contains a dish. ` +
	`If it does, return the JSON object; otherwise reply "` + SentinelNotFound + `". ` +
	`If the hint lists several dishes, sum their nutrition and combine their names into one.`

// Client calls an OpenAI-compatible chat completions API to turn a food
// photo plus a free-text hint into a nutrition estimate.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// RecognizeDish submits the image and hint and returns the parsed estimate.
// The hint may be empty. Returns ErrDishNotFound when the model reports no
// dish, or an error wrapping ErrMalformedResponse when the answer is
// unusable.
func (c *Client) RecognizeDish(ctx context.Context, image []byte, hint string) (*models.PendingCandidate, error) {
	encoded := base64.StdEncoding.EncodeToString(image)

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: []contentPart{
				{Type: "text", Text: userPrompt},
				{Type: "text", Text: "Hint: " + hint},
				{Type: "image_url", ImageURL: &imageURL{
					URL:    "data:image/jpeg;base64," + encoded,
					Detail: "low",
				}},
			}},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oracle request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d: %s", ErrMalformedResponse, resp.StatusCode, string(body))
	}

	var completion chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, fmt.Errorf("%w: failed to decode completion: %v", ErrMalformedResponse, err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("%w: completion has no choices", ErrMalformedResponse)
	}

	return ParseEstimate(completion.Choices[0].Message.Content)
}
