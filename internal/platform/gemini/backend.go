package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/phrazzld/lms-api/internal/config"
	"github.com/phrazzld/lms-api/internal/generation"
)

// BackendName identifies this backend in logs and events.
const BackendName = "gemini"

// contentGenerator is the subset of *genai.Models used by Backend.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Backend calls the Gemini API. A Backend built without an API key is still
// returned so the server can start; Ready reports the missing credential.
type Backend struct {
	logger *slog.Logger
	models contentGenerator
	model  string
}

var _ generation.Backend = (*Backend)(nil)

// New creates a Backend from LLM configuration.
func New(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Backend, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	b := &Backend{
		logger: logger.With("component", "gemini_backend"),
		model:  cfg.ModelName,
	}

	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		b.logger.WarnContext(ctx, "Gemini API key not configured; generation calls will fail")
		return b, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}
	b.models = client.Models

	b.logger.InfoContext(ctx, "Gemini backend initialized", "model", cfg.ModelName)
	return b, nil
}

// Name implements generation.Backend.
func (b *Backend) Name() string {
	return BackendName
}

// Ready implements generation.Backend.
func (b *Backend) Ready() error {
	if b.models == nil {
		return fmt.Errorf("%w: Gemini API key is not configured", generation.ErrInvalidConfig)
	}
	return nil
}

// Generate implements generation.Backend. The call is bounded only by ctx.
func (b *Backend) Generate(ctx context.Context, prompt string) (string, error) {
	if err := b.Ready(); err != nil {
		return "", err
	}
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	b.logger.DebugContext(ctx, "Calling Gemini API",
		"model", b.model,
		"prompt_length", len(prompt))

	resp, err := b.models.GenerateContent(ctx, b.model, genai.Text(prompt), nil)
	if err != nil {
		return "", translateError(err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", err
	}

	b.logger.DebugContext(ctx, "Gemini API call succeeded", "response_length", len(text))
	return text, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: prompt blocked: %s", generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("%w: response contained no text", generation.ErrInvalidResponse)
	}
	return b.String(), nil
}

// translateError marks HTTP 429 responses as quota errors. The original
// message is kept so retry hints in its details survive.
func translateError(err error) error {
	if code, ok := apiErrorCode(err); ok && code == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %v", generation.ErrQuotaExceeded, err)
	}
	return fmt.Errorf("gemini generate content: %w", err)
}

func apiErrorCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, true
	}
	return 0, false
}
