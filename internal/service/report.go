package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tetrades/config"
	"tetrades/internal/dto"
	"tetrades/internal/model"
	"tetrades/internal/repository"
	"tetrades/pkg/logger"
	"tetrades/pkg/utils"

	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

// fallbackReportText is shown when the generation collaborator fails for any
// reason. Showing a low-information HOLD beats failing the request once
// market data is already on screen.
const fallbackReportText = "분석 엔진이 일시적으로 응답하지 않습니다. 시장 지표는 최신이며, 아래 판정은 보수적 기본값입니다. 잠시 후 다시 시도해주세요.\n\n[VERDICT: HOLD]"

// teaserText is the obscured placeholder anonymous callers see instead of a
// report. No generation call is made for them.
const teaserText = "본 종목의 90일 예측 승률은... (로그인 시 공개)\n현재 거시경제 정책에 따른 가중치 분석 결과... (로그인 시 공개)"

type ReportService interface {
	Generate(ctx context.Context, identity *dto.Identity, ticker string) (*dto.ReportResult, error)
	ListPredictions(ctx context.Context, param repository.ListPredictionsParam) ([]model.Prediction, error)
	ListReports(ctx context.Context, identity *dto.Identity, limit int) ([]model.Report, error)
}

type reportService struct {
	cfg            *config.Config
	log            *logger.Logger
	marketDataRepo repository.MarketDataRepository
	aiRepo         repository.AIRepository
	profileRepo    repository.ProfileRepository
	predictionRepo repository.PredictionRepository
	reportRepo     repository.ReportRepository
	uow            repository.UnitOfWork
}

func NewReportService(
	cfg *config.Config,
	log *logger.Logger,
	marketDataRepo repository.MarketDataRepository,
	aiRepo repository.AIRepository,
	profileRepo repository.ProfileRepository,
	predictionRepo repository.PredictionRepository,
	reportRepo repository.ReportRepository,
	uow repository.UnitOfWork,
) ReportService {
	return &reportService{
		cfg:            cfg,
		log:            log,
		marketDataRepo: marketDataRepo,
		aiRepo:         aiRepo,
		profileRepo:    profileRepo,
		predictionRepo: predictionRepo,
		reportRepo:     reportRepo,
		uow:            uow,
	}
}

// Generate runs the full report flow: resolve tier, fetch market context,
// generate, extract the verdict, persist the outcome. Market data failure
// halts the flow before generation; generation failure degrades to the HOLD
// fallback and still persists.
func (s *reportService) Generate(ctx context.Context, identity *dto.Identity, ticker string) (*dto.ReportResult, error) {
	ticker = utils.NormalizeTicker(ticker)
	if ticker == "" {
		return nil, ErrInvalidTicker
	}

	var profile *model.Profile
	if identity != nil {
		var err error
		profile, err = s.profileRepo.Get(ctx, identity.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load profile: %w", err)
		}
	}
	tier := ResolveTier(identity, profile)

	quote, news, history, err := s.fetchMarketContext(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMarketDataUnavailable, err)
	}

	result := &dto.ReportResult{
		Ticker: ticker,
		Tier:   tier,
		Quote:  *quote,
	}

	// Anonymous callers get the teaser only. No generation call, no side
	// effects.
	if tier == dto.TierAnonymous {
		result.Teaser = teaserText
		return result, nil
	}

	genResult, genErr := s.aiRepo.GenerateReport(ctx, dto.GenerateReportParam{
		Ticker:  ticker,
		Quote:   *quote,
		News:    news,
		History: history,
		Tier:    tier,
	})
	if genErr != nil {
		s.log.WarnContext(ctx, "report generation failed, serving fallback",
			logger.ErrorField(genErr),
			logger.StringField("ticker", ticker))
		genResult = &dto.GenerateReportResult{
			Model: "unavailable",
			Text:  fallbackReportText,
		}
		result.Degraded = true
	}

	verdict := ExtractVerdict(genResult.Text)
	if !IsKnownVerdict(verdict) {
		// Stored verbatim on purpose, the upstream text is not under our
		// structural control.
		s.log.WarnContext(ctx, "verdict outside the closed enumeration, storing verbatim",
			logger.StringField("verdict", verdict),
			logger.StringField("ticker", ticker))
	}

	targetDate := utils.TargetDate(time.Now(), s.cfg.Report.TargetDays)

	if err := s.persistOutcome(ctx, identity.ID, ticker, quote.Price, verdict, targetDate, genResult, result.Degraded); err != nil {
		return nil, fmt.Errorf("failed to persist report outcome: %w", err)
	}

	result.ReportText = genResult.Text
	result.Verdict = verdict
	result.TargetDate = &targetDate
	return result, nil
}

// fetchMarketContext fetches the quote plus best-effort news and history in
// parallel. Only the quote is load-bearing: its failure aborts the flow,
// news/history failures leave empty context.
func (s *reportService) fetchMarketContext(ctx context.Context, ticker string) (*dto.Quote, []dto.StockNews, []dto.HistoricalPrice, error) {
	var (
		quote   *dto.Quote
		news    []dto.StockNews
		history []dto.HistoricalPrice
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		q, err := s.marketDataRepo.GetQuote(gctx, ticker)
		if err != nil {
			return err
		}
		quote = q
		return nil
	})

	g.Go(func() error {
		n, err := s.marketDataRepo.GetNews(gctx, ticker, s.cfg.Report.NewsLimit)
		if err != nil {
			s.log.WarnContext(gctx, "news fetch failed, continuing without news",
				logger.ErrorField(err), logger.StringField("ticker", ticker))
			return nil
		}
		news = n
		return nil
	})

	g.Go(func() error {
		h, err := s.marketDataRepo.GetHistory(gctx, ticker, s.cfg.Report.HistoryDays)
		if err != nil {
			s.log.WarnContext(gctx, "history fetch failed, continuing without history",
				logger.ErrorField(err), logger.StringField("ticker", ticker))
			return nil
		}
		history = h
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}

	return quote, news, history, nil
}

// persistOutcome writes the report audit row and the prediction in one
// transaction: either both exist or neither does.
func (s *reportService) persistOutcome(ctx context.Context, profileID, ticker string, price float64, verdict string, targetDate time.Time, genResult *dto.GenerateReportResult, degraded bool) error {
	responseJSON, err := json.Marshal(map[string]string{
		"model": genResult.Model,
		"text":  genResult.Text,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal generation response: %w", err)
	}

	report := &model.Report{
		ProfileID:   profileID,
		Ticker:      ticker,
		Model:       genResult.Model,
		Prompt:      genResult.Prompt,
		Response:    datatypes.JSON(responseJSON),
		Verdict:     verdict,
		MarketPrice: price,
		Degraded:    degraded,
	}

	prediction := &model.Prediction{
		ProfileID:  profileID,
		Ticker:     ticker,
		Price:      price,
		Verdict:    verdict,
		TargetDate: targetDate,
	}

	return s.uow.Run(func(opts ...utils.DBOption) error {
		if err := s.reportRepo.Create(ctx, report, opts...); err != nil {
			return fmt.Errorf("failed to create report: %w", err)
		}
		if err := s.predictionRepo.Create(ctx, prediction, opts...); err != nil {
			return fmt.Errorf("failed to create prediction: %w", err)
		}
		return nil
	})
}

func (s *reportService) ListPredictions(ctx context.Context, param repository.ListPredictionsParam) ([]model.Prediction, error) {
	param.Ticker = utils.NormalizeTicker(param.Ticker)
	return s.predictionRepo.List(ctx, param)
}

// ListReports returns the caller's past report rows, newest first.
func (s *reportService) ListReports(ctx context.Context, identity *dto.Identity, limit int) ([]model.Report, error) {
	if identity == nil {
		return nil, ErrUnauthorized
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.reportRepo.ListByProfile(ctx, identity.ID, limit)
}
