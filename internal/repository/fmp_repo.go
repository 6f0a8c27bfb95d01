package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"tetrades/config"
	"tetrades/internal/dto"
	"tetrades/pkg/cache"
	"tetrades/pkg/common"
	"tetrades/pkg/httpclient"
	"tetrades/pkg/logger"

	"golang.org/x/time/rate"
)

type MarketDataRepository interface {
	GetQuote(ctx context.Context, symbol string) (*dto.Quote, error)
	GetNews(ctx context.Context, symbol string, limit int) ([]dto.StockNews, error)
	GetHistory(ctx context.Context, symbol string, days int) ([]dto.HistoricalPrice, error)
}

// fmpRepository reads quotes, news and price history from the Financial
// Modeling Prep "stable" REST API. Responses are cached for a short window
// keyed by the exact endpoint plus parameter string; there are no retries,
// every call is a read and the caller can simply resubmit.
type fmpRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	cache          cache.Cache
	requestLimiter *rate.Limiter
}

// NewFMPRepository creates a new instance of fmpRepository.
func NewFMPRepository(cfg *config.Config, inmemoryCache cache.Cache, log *logger.Logger) MarketDataRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.FMP.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &fmpRepository{
		httpClient:     httpclient.New(cfg.FMP.BaseURL, cfg.FMP.Timeout, ""),
		cfg:            cfg,
		logger:         log,
		cache:          inmemoryCache,
		requestLimiter: requestLimiter,
	}
}

func (r *fmpRepository) GetQuote(ctx context.Context, symbol string) (*dto.Quote, error) {
	var quotes []dto.Quote
	err := r.getJSON(ctx, "/quote", map[string]string{"symbol": symbol}, &quotes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuoteUnavailable, err)
	}

	// An empty list is how FMP reports an unknown symbol.
	if len(quotes) == 0 {
		return nil, fmt.Errorf("%w: no quote for symbol %s", ErrQuoteUnavailable, symbol)
	}

	return &quotes[0], nil
}

func (r *fmpRepository) GetNews(ctx context.Context, symbol string, limit int) ([]dto.StockNews, error) {
	var news []dto.StockNews
	params := map[string]string{
		"symbols": symbol,
		"limit":   strconv.Itoa(limit),
	}
	if err := r.getJSON(ctx, "/news/stock", params, &news); err != nil {
		return nil, fmt.Errorf("failed to fetch stock news: %w", err)
	}
	return news, nil
}

func (r *fmpRepository) GetHistory(ctx context.Context, symbol string, days int) ([]dto.HistoricalPrice, error) {
	var resp dto.HistoricalPriceResponse
	if err := r.getJSON(ctx, "/historical-price-eod/full", map[string]string{"symbol": symbol}, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch price history: %w", err)
	}

	if days > 0 && len(resp.Historical) > days {
		resp.Historical = resp.Historical[:days]
	}
	return resp.Historical, nil
}

// getJSON performs one cached GET against FMP. The cache key is the exact
// endpoint plus the encoded (sorted) parameter string, excluding the API key.
func (r *fmpRepository) getJSON(ctx context.Context, endpoint string, params map[string]string, result interface{}) error {
	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}
	cacheKey := fmt.Sprintf(common.KEY_FMP_RESPONSE, endpoint, values.Encode())

	if body, found := cache.GetFromCache[[]byte](r.cache, cacheKey); found {
		r.logger.DebugContext(ctx, "FMP response served from cache",
			logger.StringField("endpoint", endpoint))
		return decodeCached(body, result)
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return err
	}

	queryParams := map[string]string{"apikey": r.cfg.FMP.APIKey}
	for k, v := range params {
		queryParams[k] = v
	}

	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, nil, result)
	if err != nil {
		return fmt.Errorf("failed to fetch data from fmp: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "FMP API returned Non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("endpoint", endpoint))
		return fmt.Errorf("fmp api returned status: %d", resp.StatusCode)
	}

	r.cache.Set(cacheKey, append([]byte(nil), resp.Body...), r.cfg.FMP.CacheTTL)
	return nil
}

func decodeCached(body []byte, result interface{}) error {
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to decode cached fmp response: %w", err)
	}
	return nil
}
