package service

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"tetrades/config"
	"tetrades/internal/model"
	"tetrades/internal/repository"
	"tetrades/pkg/logger"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// holdHitBand is the symmetric band around the analysis price inside which a
// HOLD verdict counts as a hit.
const holdHitBand = 0.05

// EvaluatorService settles matured predictions: once a prediction's target
// date passes, the current quote decides whether its verdict held up. Tickers
// whose quote is unavailable are skipped and retried on the next run.
type EvaluatorService interface {
	Start(ctx context.Context) error
	Stop()
	EvaluateMatured(ctx context.Context) (int, error)
}

type evaluatorService struct {
	cfg            *config.Config
	log            *logger.Logger
	marketDataRepo repository.MarketDataRepository
	predictionRepo repository.PredictionRepository
	runner         *cron.Cron
}

func NewEvaluatorService(
	cfg *config.Config,
	log *logger.Logger,
	marketDataRepo repository.MarketDataRepository,
	predictionRepo repository.PredictionRepository,
) EvaluatorService {
	return &evaluatorService{
		cfg:            cfg,
		log:            log,
		marketDataRepo: marketDataRepo,
		predictionRepo: predictionRepo,
		runner:         cron.New(),
	}
}

func (s *evaluatorService) Start(ctx context.Context) error {
	_, err := s.runner.AddFunc(s.cfg.Evaluator.CronExpr, func() {
		evaluated, err := s.EvaluateMatured(ctx)
		if err != nil {
			s.log.ErrorContext(ctx, "prediction evaluation run failed", logger.ErrorField(err))
			return
		}
		s.log.InfoContext(ctx, "prediction evaluation run finished",
			logger.IntField("evaluated", evaluated))
	})
	if err != nil {
		return fmt.Errorf("invalid evaluator cron expression %q: %w", s.cfg.Evaluator.CronExpr, err)
	}

	s.runner.Start()
	s.log.Info("prediction evaluator started",
		logger.StringField("cron_expr", s.cfg.Evaluator.CronExpr))
	return nil
}

func (s *evaluatorService) Stop() {
	stopCtx := s.runner.Stop()
	<-stopCtx.Done()
}

func (s *evaluatorService) EvaluateMatured(ctx context.Context) (int, error) {
	now := time.Now().UTC()

	matured, err := s.predictionRepo.ListMatured(ctx, now, s.cfg.Evaluator.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list matured predictions: %w", err)
	}
	if len(matured) == 0 {
		return 0, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Evaluator.MaxConcurrency)

	var evaluated int64
	for _, prediction := range matured {
		prediction := prediction
		g.Go(func() error {
			quote, err := s.marketDataRepo.GetQuote(gctx, prediction.Ticker)
			if err != nil {
				// Left unevaluated, the next run retries it.
				s.log.WarnContext(gctx, "skipping prediction, quote unavailable",
					logger.ErrorField(err),
					logger.StringField("ticker", prediction.Ticker))
				return nil
			}

			hit := verdictHit(prediction, quote.Price)
			if err := s.predictionRepo.RecordOutcome(gctx, prediction.ID, quote.Price, hit, now); err != nil {
				s.log.ErrorContext(gctx, "failed to record prediction outcome",
					logger.ErrorField(err),
					logger.Field("prediction_id", prediction.ID))
				return nil
			}
			s.log.InfoContext(gctx, "prediction settled",
				logger.Field("prediction_id", prediction.ID),
				logger.StringField("ticker", prediction.Ticker),
				logger.Float64Field("outcome_price", quote.Price),
				logger.Field("hit", hit))
			atomic.AddInt64(&evaluated, 1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(atomic.LoadInt64(&evaluated)), err
	}
	return int(atomic.LoadInt64(&evaluated)), nil
}

// verdictHit decides whether the outcome price vindicates the verdict.
// Bullish verdicts need the price up, SELL needs it down, anything else
// (HOLD and verbatim-stored unknown tokens) counts as a hit inside the band.
func verdictHit(prediction model.Prediction, outcomePrice float64) bool {
	if prediction.Price <= 0 {
		return false
	}

	change := (outcomePrice - prediction.Price) / prediction.Price
	switch {
	case strings.Contains(prediction.Verdict, "BUY"):
		return change > 0
	case prediction.Verdict == "SELL":
		return change < 0
	default:
		return change >= -holdHitBand && change <= holdHitBand
	}
}
