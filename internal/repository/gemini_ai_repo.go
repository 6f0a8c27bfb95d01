package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"tetrades/config"
	"tetrades/internal/dto"
	"tetrades/pkg/httpclient"
	"tetrades/pkg/logger"
	"tetrades/pkg/ratelimit"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

type AIRepository interface {
	GenerateReport(ctx context.Context, param dto.GenerateReportParam) (*dto.GenerateReportResult, error)
}

// geminiAIRepository generates quant reports through the Google Gemini API.
// The caller's tier decides the model: the base model for free users, the
// higher-capability one for premium.
type geminiAIRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	tokenLimiter   *ratelimit.TokenLimiter
	requestLimiter *rate.Limiter
	genAiClient    *genai.Client
}

// NewGeminiAIRepository creates a new instance of geminiAIRepository.
func NewGeminiAIRepository(cfg *config.Config, log *logger.Logger) (AIRepository, error) {
	secondsPerRequest := time.Minute / time.Duration(cfg.Gemini.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	tokenLimiter := ratelimit.NewTokenLimiter(cfg.Gemini.MaxTokenPerMinute)
	genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.Gemini.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiAIRepository{
		httpClient:     httpclient.New(cfg.Gemini.BaseURL, cfg.Gemini.Timeout, ""),
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
		tokenLimiter:   tokenLimiter,
		genAiClient:    genAiClient,
	}, nil
}

func (r *geminiAIRepository) GenerateReport(ctx context.Context, param dto.GenerateReportParam) (*dto.GenerateReportResult, error) {
	prompt, err := r.promptQuantReport(param)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to build report prompt", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to build report prompt: %w", err)
	}

	model := r.modelForTier(param.Tier)

	text, err := r.sendRequest(ctx, model, prompt)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to send request to gemini",
			logger.ErrorField(err),
			logger.StringField("model", model),
			logger.StringField("ticker", param.Ticker))
		return nil, fmt.Errorf("failed to send request to gemini: %w", err)
	}

	return &dto.GenerateReportResult{
		Model:  model,
		Prompt: prompt,
		Text:   text,
	}, nil
}

func (r *geminiAIRepository) modelForTier(tier dto.AccessTier) string {
	if tier == dto.TierPremium {
		return r.cfg.Gemini.PremiumModel
	}
	return r.cfg.Gemini.BaseModel
}

func (r *geminiAIRepository) sendRequest(ctx context.Context, model, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}
	geminiTokenResp, err := r.genAiClient.Models.CountTokens(ctx, model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to count tokens: %w", err)
	}

	r.logger.Debug("Gemini token count",
		logger.IntField("total_tokens", int(geminiTokenResp.TotalTokens)),
		logger.IntField("remaining", r.tokenLimiter.GetRemaining()),
	)
	if err := r.tokenLimiter.Wait(ctx, int(geminiTokenResp.TotalTokens)); err != nil {
		return "", fmt.Errorf("failed to wait for gemini token limit: %w", err)
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for gemini request limit: %w", err)
	}

	payload := dto.GeminiAPIRequest{
		Contents: []dto.Content{{Role: "user", Parts: []dto.Part{{Text: prompt}}}},
	}

	geminiAPIResponse := dto.GeminiAPIResponse{}

	apiURL := fmt.Sprintf("/%s:generateContent?key=%s", model, r.cfg.Gemini.APIKey)

	geminiResp, err := r.httpClient.Post(ctx, apiURL, payload, nil, &geminiAPIResponse)
	if err != nil {
		return "", fmt.Errorf("failed to post to gemini: %w", err)
	}

	if geminiResp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "failed to get data from gemini", logger.IntField("status_code", geminiResp.StatusCode))
		return "", fmt.Errorf("gemini api returned status: %d", geminiResp.StatusCode)
	}

	if len(geminiAPIResponse.Candidates) == 0 || len(geminiAPIResponse.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("invalid response from gemini api: no content found")
	}

	// First candidate only, the rest are alternates we never asked for.
	return geminiAPIResponse.Candidates[0].Content.Parts[0].Text, nil
}
