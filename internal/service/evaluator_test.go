package service

import (
	"context"
	"errors"
	"testing"

	"tetrades/internal/dto"
	"tetrades/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerdictHit(t *testing.T) {
	tests := []struct {
		name         string
		verdict      string
		price        float64
		outcomePrice float64
		want         bool
	}{
		{name: "buy up", verdict: dto.VerdictBuy, price: 100, outcomePrice: 101, want: true},
		{name: "buy down", verdict: dto.VerdictBuy, price: 100, outcomePrice: 99, want: false},
		{name: "buy flat", verdict: dto.VerdictBuy, price: 100, outcomePrice: 100, want: false},
		{name: "strong buy up", verdict: dto.VerdictStrongBuy, price: 100, outcomePrice: 140, want: true},
		{name: "sell down", verdict: dto.VerdictSell, price: 100, outcomePrice: 80, want: true},
		{name: "sell up", verdict: dto.VerdictSell, price: 100, outcomePrice: 120, want: false},
		{name: "hold inside band", verdict: dto.VerdictHold, price: 100, outcomePrice: 104, want: true},
		{name: "hold at band edge", verdict: dto.VerdictHold, price: 100, outcomePrice: 95, want: true},
		{name: "hold outside band", verdict: dto.VerdictHold, price: 100, outcomePrice: 94, want: false},
		{name: "unknown verdict treated like hold", verdict: "STRONG SELL", price: 100, outcomePrice: 100, want: true},
		{name: "zero analysis price never hits", verdict: dto.VerdictBuy, price: 0, outcomePrice: 100, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := verdictHit(model.Prediction{Price: tt.price, Verdict: tt.verdict}, tt.outcomePrice)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateMaturedRecordsOutcomes(t *testing.T) {
	market := &fakeMarketDataRepo{quote: &dto.Quote{Price: 110}}
	predictions := &fakePredictionRepo{matured: []model.Prediction{
		{ID: 1, Ticker: "AAPL", Price: 100, Verdict: dto.VerdictBuy},
		{ID: 2, Ticker: "TSLA", Price: 200, Verdict: dto.VerdictSell},
	}}

	svc := NewEvaluatorService(testConfig(), testLogger(), market, predictions)

	evaluated, err := svc.EvaluateMatured(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, evaluated)
	assert.Equal(t, 110.0, predictions.outcomes[1])
	assert.Equal(t, 110.0, predictions.outcomes[2])
}

func TestEvaluateMaturedSkipsUnavailableQuotes(t *testing.T) {
	market := &fakeMarketDataRepo{quoteErr: errors.New("quote upstream down")}
	predictions := &fakePredictionRepo{matured: []model.Prediction{
		{ID: 1, Ticker: "DLST", Price: 100, Verdict: dto.VerdictBuy},
	}}

	svc := NewEvaluatorService(testConfig(), testLogger(), market, predictions)

	evaluated, err := svc.EvaluateMatured(context.Background())
	require.NoError(t, err, "an unavailable quote skips the row, it does not fail the run")
	assert.Zero(t, evaluated)
	assert.Empty(t, predictions.outcomes)
}

func TestEvaluateMaturedEmptyBatch(t *testing.T) {
	market := &fakeMarketDataRepo{}
	predictions := &fakePredictionRepo{}

	svc := NewEvaluatorService(testConfig(), testLogger(), market, predictions)

	evaluated, err := svc.EvaluateMatured(context.Background())
	require.NoError(t, err)
	assert.Zero(t, evaluated)
	assert.Zero(t, market.quoteCalls)
}
