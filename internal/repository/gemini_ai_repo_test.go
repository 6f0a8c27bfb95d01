package repository

import (
	"testing"

	"tetrades/config"
	"tetrades/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGeminiFixture() *geminiAIRepository {
	return &geminiAIRepository{
		cfg: &config.Config{
			Gemini: config.Gemini{
				BaseModel:    "gemini-2.0-flash",
				PremiumModel: "gemini-2.0-pro",
			},
		},
	}
}

func TestModelForTier(t *testing.T) {
	repo := newGeminiFixture()

	tests := []struct {
		name string
		tier dto.AccessTier
		want string
	}{
		{name: "premium gets the premium model", tier: dto.TierPremium, want: "gemini-2.0-pro"},
		{name: "free gets the base model", tier: dto.TierFree, want: "gemini-2.0-flash"},
		{name: "anonymous gets the base model", tier: dto.TierAnonymous, want: "gemini-2.0-flash"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, repo.modelForTier(tt.tier))
		})
	}
}

func TestPromptQuantReport(t *testing.T) {
	repo := newGeminiFixture()

	prompt, err := repo.promptQuantReport(dto.GenerateReportParam{
		Ticker: "AAPL",
		Quote:  dto.Quote{Symbol: "AAPL", Price: 150.0, PE: 28.4},
		News:   []dto.StockNews{{Title: "earnings beat", Site: "wire"}},
		History: []dto.HistoricalPrice{
			{Date: "2026-08-27", Close: 151.2},
		},
		Tier: dto.TierFree,
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "AAPL")
	assert.Contains(t, prompt, `"price":150`)
	assert.Contains(t, prompt, "earnings beat")
	assert.Contains(t, prompt, "2026-08-27")
	assert.Contains(t, prompt, "Korean")

	// The closing sentinel instruction is the only structural contract with
	// the model; the verdict parser depends on it.
	assert.Contains(t, prompt, "[VERDICT: X]")
	assert.Contains(t, prompt, "STRONG BUY, BUY, HOLD, SELL")
	assert.Contains(t, prompt, "No text may follow that line")
}

func TestPromptQuantReportOmitsEmptyContext(t *testing.T) {
	repo := newGeminiFixture()

	prompt, err := repo.promptQuantReport(dto.GenerateReportParam{
		Ticker: "TSLA",
		Quote:  dto.Quote{Symbol: "TSLA", Price: 244.4},
		Tier:   dto.TierFree,
	})
	require.NoError(t, err)

	assert.NotContains(t, prompt, "Recent headlines")
	assert.NotContains(t, prompt, "Recent daily closes")
	assert.Contains(t, prompt, "[VERDICT: X]")
}
