package refiner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/erraggy/oasdelta/classifier"
	"github.com/erraggy/oasdelta/deltaerrors"
	"github.com/erraggy/oasdelta/parser"
)

// Refiner refines a rule-based verdict by consulting an external
// classification service.
type Refiner interface {
	// Refine classifies a plain-text change listing and returns the
	// refined verdict. A non-nil error means the service could not be
	// reached and the caller should keep its rule-based verdict.
	Refine(ctx context.Context, summary string) (classifier.Verdict, error)
}

// DefaultMaxSummaryBytes caps the summary size sent to the
// service; longer listings are truncated at a line boundary.
const DefaultMaxSummaryBytes = 32 * 1024

// maxCompletionTokens bounds the reply; the agreed JSON object is small.
const maxCompletionTokens = 256

// Config holds configuration for the OpenAI-backed refiner.
type Config struct {
	// APIKey authenticates against the service
	APIKey string
	// BaseURL is the API root, e.g. https://api.openai.com/v1
	BaseURL string
	// Model names the model used for classification
	Model string
	// Timeout applies when the caller's context carries no deadline
	Timeout time.Duration
	// MaxRetries is the number of retries after a transient failure
	MaxRetries int
	// MaxSummaryBytes caps the summary sent to the service; zero
	// applies DefaultMaxSummaryBytes
	MaxSummaryBytes int
	// HTTPClient overrides the HTTP client used for requests.
	// If nil, a client with Timeout is used.
	HTTPClient *http.Client
	// Logger receives progress events. If nil, logging is disabled.
	Logger parser.Logger
}

// DefaultConfig returns the standard OpenAI endpoint configuration.
// The API key is left empty for the caller to fill in.
func DefaultConfig() Config {
	return Config{
		BaseURL:    "https://api.openai.com/v1",
		Model:      "gpt-4",
		Timeout:    30 * time.Second,
		MaxRetries: 3,
	}
}

// OpenAIRefiner implements Refiner over an OpenAI-style chat
// completions endpoint.
type OpenAIRefiner struct {
	cfg    Config
	client *http.Client
}

var _ Refiner = (*OpenAIRefiner)(nil)

// NewOpenAI creates a refiner from cfg, filling unset fields from
// DefaultConfig.
func NewOpenAI(cfg Config) *OpenAIRefiner {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = def.MaxRetries
	}
	if cfg.MaxSummaryBytes <= 0 {
		cfg.MaxSummaryBytes = DefaultMaxSummaryBytes
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &OpenAIRefiner{cfg: cfg, client: client}
}

// log returns the configured logger, or a no-op logger if none is set.
func (r *OpenAIRefiner) log() parser.Logger {
	if r.cfg.Logger != nil {
		return r.cfg.Logger
	}
	return parser.NopLogger{}
}

// endpoint returns the chat completions URL.
func (r *OpenAIRefiner) endpoint() string {
	return r.cfg.BaseURL + "/chat/completions"
}

const systemPrompt = "You are an API change analyzer. Your task is to classify API changes."

const promptTemplate = `Analyze these changes and classify them as either "API Change" or "Production Update".

Changes detected:
%s

Rules for classification:
- "API Change" if there are:
  * New endpoints
  * Removed endpoints
  * Modified endpoints
  * Security scheme changes
  * Authentication changes
  * Breaking changes
- "Production Update" if there are only:
  * Documentation updates
  * Example changes
  * Internal implementation details
  * Non-breaking changes

Respond with a JSON object of the form {"classification": "...", "reasoning": "..."} and nothing else.`

// chatMessage represents a message.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest represents the chat completions request.
// Temperature deliberately has no omitempty: the explicit zero keeps
// classification deterministic.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

// chatResponse represents the API response.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// classification is the JSON object the service is instructed to return.
type classification struct {
	Classification string `json:"classification"`
	Reasoning      string `json:"reasoning"`
}

// Refine sends the change listing to the service and maps its answer
// back to a verdict.
//
// Failures split two ways. When the service cannot be reached, or keeps
// failing after retries, Refine returns a *deltaerrors.ClassifyError and
// the caller falls back to its rule-based verdict. When the service
// answers with HTTP 200 but the content is not the agreed JSON, or names
// an unknown classification, Refine returns VerdictClassificationError
// with a nil error: the answer arrived and is unusable.
func (r *OpenAIRefiner) Refine(ctx context.Context, summary string) (classifier.Verdict, error) {
	if r.cfg.APIKey == "" {
		return 0, &deltaerrors.ClassifyError{
			Service: r.endpoint(),
			Message: "API key not configured",
		}
	}
	if strings.TrimSpace(summary) == "" {
		return classifier.VerdictNoChanges, nil
	}

	// Auto-apply the configured timeout if the context has no deadline
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	summary = truncate(summary, r.cfg.MaxSummaryBytes)

	payload, err := json.Marshal(chatRequest{
		Model: r.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf(promptTemplate, summary)},
		},
		MaxTokens:   maxCompletionTokens,
		Temperature: 0,
	})
	if err != nil {
		return 0, &deltaerrors.ClassifyError{
			Service: r.endpoint(),
			Message: "failed to marshal request",
			Cause:   err,
		}
	}

	r.log().Debug("refining verdict", "model", r.cfg.Model, "summary_bytes", len(summary))

	var lastErr error
	for i := 0; i <= r.cfg.MaxRetries; i++ {
		if i > 0 {
			backoff := time.Duration(1<<uint(i-1)) * time.Second
			r.log().Debug("retrying classification request", "attempt", i, "backoff", backoff.String())
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return 0, &deltaerrors.ClassifyError{
					Service: r.endpoint(),
					Timeout: errors.Is(ctx.Err(), context.DeadlineExceeded),
					Message: "context done during retry backoff",
					Cause:   ctx.Err(),
				}
			}
		}

		verdict, retryable, err := r.attempt(ctx, payload)
		if err == nil {
			return verdict, nil
		}
		lastErr = err
		if !retryable {
			return 0, err
		}
	}

	return 0, &deltaerrors.ClassifyError{
		Service: r.endpoint(),
		Message: "max retries exceeded",
		Cause:   lastErr,
	}
}

// attempt performs one request. The second return reports whether the
// failure is transient and worth retrying.
func (r *OpenAIRefiner) attempt(ctx context.Context, payload []byte) (classifier.Verdict, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint(), bytes.NewReader(payload))
	if err != nil {
		return 0, false, &deltaerrors.ClassifyError{
			Service: r.endpoint(),
			Message: "failed to create request",
			Cause:   err,
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.cfg.APIKey)

	resp, err := r.client.Do(req)
	if err != nil {
		timeout := errors.Is(err, context.DeadlineExceeded)
		cancelled := errors.Is(err, context.Canceled)
		return 0, !timeout && !cancelled, &deltaerrors.ClassifyError{
			Service: r.endpoint(),
			Timeout: timeout,
			Message: "request failed",
			Cause:   err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, true, &deltaerrors.ClassifyError{
			Service: r.endpoint(),
			Message: "failed to read response",
			Cause:   err,
		}
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return 0, true, &deltaerrors.ClassifyError{
			Service:    r.endpoint(),
			StatusCode: resp.StatusCode,
			Message:    "rate limit exceeded",
		}
	}
	if resp.StatusCode != http.StatusOK {
		return 0, resp.StatusCode >= 500, &deltaerrors.ClassifyError{
			Service:    r.endpoint(),
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("request failed: %s", strings.TrimSpace(string(body))),
		}
	}

	verdict := r.parseVerdict(body)
	return verdict, false, nil
}

// parseVerdict extracts the classification from a 200 response. The
// service answered, so any unusable content maps to
// VerdictClassificationError rather than an error.
func (r *OpenAIRefiner) parseVerdict(body []byte) classifier.Verdict {
	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		r.log().Warn("classification response is not valid JSON", "error", err.Error())
		return classifier.VerdictClassificationError
	}
	if chat.Error != nil {
		r.log().Warn("classification service returned an error object", "message", chat.Error.Message)
		return classifier.VerdictClassificationError
	}
	if len(chat.Choices) == 0 {
		r.log().Warn("classification response has no choices")
		return classifier.VerdictClassificationError
	}

	content := strings.TrimSpace(chat.Choices[0].Message.Content)
	var result classification
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		r.log().Warn("classification content is not the agreed JSON object", "content", content)
		return classifier.VerdictClassificationError
	}

	verdict, ok := classifier.ParseVerdict(result.Classification)
	if !ok {
		r.log().Warn("service named an unknown classification", "classification", result.Classification)
		return classifier.VerdictClassificationError
	}

	r.log().Debug("refined verdict", "verdict", verdict.String(), "reasoning", result.Reasoning)
	return verdict
}

// truncate cuts s to roughly max bytes, preferring a line boundary so
// the prompt never ends mid-change.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := s[:max]
	if idx := strings.LastIndexByte(cut, '\n'); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "\n... (listing truncated)"
}
