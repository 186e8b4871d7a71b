package analyzer

import (
	"backend/database"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

// promptLimit bounds how much extracted text is sent to the model.
const promptLimit = 2000

const classifyInstruction = `You are a smart file classifier. Given the following extracted text from a file, return a JSON object with:
- "category": a single word category such as "Resume", "Invoice", "Notes", "Report", "Code" or "Other".
- "tags": an array of short tags (2-6 tags) that summarize the content (e.g. ["resume", "machine learning", "internship"]).
Return only valid JSON.

TEXT:
"""
%s
"""
`

type Classification struct {
	Tags     []string `json:"tags"`
	Category string   `json:"category"`
}

// attemptFailure records why one model in the fallback chain was skipped.
type attemptFailure struct {
	Model  string
	Reason string // "request", "status", "malformed"
	Err    error
}

func (f attemptFailure) Error() string {
	return fmt.Sprintf("model %s failed (%s): %v", f.Model, f.Reason, f.Err)
}

// Classifier asks an OpenAI-compatible chat-completions backend for a
// category and tag set. Models are tried in order; any failure advances to
// the next one. Model unavailability is a retryable-with-alternative
// condition, not a fatal error.
type Classifier struct {
	BaseURL string
	APIKey  string
	Models  []string
	Timeout time.Duration

	// HTTPClient is swappable for tests; nil means a default client.
	HTTPClient *http.Client
}

func NewClassifier(baseURL string, apiKey string, models []string, timeout time.Duration) *Classifier {
	return &Classifier{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		APIKey:  apiKey,
		Models:  models,
		Timeout: timeout,
	}
}

// Classify never returns an error: empty input short-circuits to the
// unanalyzed result, and total backend failure falls back to
// {[], "Other"}.
func (c *Classifier) Classify(ctx context.Context, text string) Classification {
	if strings.TrimSpace(text) == "" {
		return Classification{Tags: []string{}, Category: database.CategoryUnanalyzed}
	}

	if len(text) > promptLimit {
		// back off to a rune boundary so the cut never splits a multi-byte rune
		cut := promptLimit
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	prompt := fmt.Sprintf(classifyInstruction, text)

	for _, model := range c.Models {
		result, err := c.tryModel(ctx, model, prompt)
		if err != nil {
			log.Printf("Classification attempt failed: %v", err)
			continue
		}
		return result
	}

	log.Println("All classification models failed, using fallback")
	return Classification{Tags: []string{}, Category: database.CategoryFallback}
}

func (c *Classifier) tryModel(ctx context.Context, model string, prompt string) (Classification, error) {
	content, err := c.complete(ctx, model, prompt)
	if err != nil {
		return Classification{}, err
	}

	result, ok := parseClassification(content)
	if !ok {
		return Classification{}, attemptFailure{
			Model:  model,
			Reason: "malformed",
			Err:    fmt.Errorf("no JSON object in response"),
		}
	}
	return result, nil
}

// complete performs a single non-streaming chat-completions round trip.
func (c *Classifier) complete(ctx context.Context, model string, prompt string) (string, error) {
	requestBody := map[string]interface{}{
		"model": model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"max_tokens":  200,
		"temperature": 0.0,
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", attemptFailure{Model: model, Reason: "request", Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(
		ctx,
		"POST",
		fmt.Sprintf("%s/chat/completions", c.BaseURL),
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return "", attemptFailure{Model: model, Reason: "request", Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", attemptFailure{Model: model, Reason: "request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", attemptFailure{
			Model:  model,
			Reason: "status",
			Err:    fmt.Errorf("non-200 response: %d %s", resp.StatusCode, string(bodyBytes)),
		}
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", attemptFailure{Model: model, Reason: "malformed", Err: err}
	}
	if len(completion.Choices) == 0 {
		return "", attemptFailure{Model: model, Reason: "malformed", Err: fmt.Errorf("no choices in response")}
	}

	return completion.Choices[0].Message.Content, nil
}

// parseClassification locates the JSON object between the first '{' and the
// last '}' of the model output. Models wrap JSON in prose often enough that
// decoding the raw response directly would throw away good answers.
func parseClassification(message string) (Classification, bool) {
	start := strings.Index(message, "{")
	end := strings.LastIndex(message, "}")
	if start < 0 || end < start {
		return Classification{}, false
	}

	var raw struct {
		Tags     []interface{} `json:"tags"`
		Category string        `json:"category"`
	}
	if err := json.Unmarshal([]byte(message[start:end+1]), &raw); err != nil {
		return Classification{}, false
	}

	tags := []string{}
	for _, t := range raw.Tags {
		tags = append(tags, fmt.Sprintf("%v", t))
	}

	category := raw.Category
	if category == "" {
		category = database.CategoryFallback
	}

	return Classification{Tags: tags, Category: category}, true
}

func (c *Classifier) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return 60 * time.Second
}

func (c *Classifier) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{}
}
