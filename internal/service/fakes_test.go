package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"tetrades/config"
	"tetrades/internal/dto"
	"tetrades/internal/model"
	"tetrades/internal/repository"
	"tetrades/pkg/logger"
	"tetrades/pkg/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		Referral: config.Referral{RewardPoints: 900},
		Report:   config.Report{TargetDays: 90, NewsLimit: 5, HistoryDays: 30},
		Evaluator: config.EvaluatorConfig{
			CronExpr:       "30 5 * * *",
			MaxConcurrency: 2,
			BatchSize:      100,
		},
	}
}

func testLogger() *logger.Logger {
	log, err := logger.New("error", "console")
	if err != nil {
		panic(err)
	}
	return log
}

type fakeMarketDataRepo struct {
	quote      *dto.Quote
	quoteErr   error
	news       []dto.StockNews
	newsErr    error
	history    []dto.HistoricalPrice
	historyErr error
	quoteCalls int32
}

func (f *fakeMarketDataRepo) GetQuote(ctx context.Context, symbol string) (*dto.Quote, error) {
	atomic.AddInt32(&f.quoteCalls, 1)
	if f.quoteErr != nil {
		return nil, f.quoteErr
	}
	return f.quote, nil
}

func (f *fakeMarketDataRepo) GetNews(ctx context.Context, symbol string, limit int) ([]dto.StockNews, error) {
	return f.news, f.newsErr
}

func (f *fakeMarketDataRepo) GetHistory(ctx context.Context, symbol string, days int) ([]dto.HistoricalPrice, error) {
	return f.history, f.historyErr
}

type fakeAIRepo struct {
	result    *dto.GenerateReportResult
	err       error
	calls     int
	lastParam dto.GenerateReportParam
}

func (f *fakeAIRepo) GenerateReport(ctx context.Context, param dto.GenerateReportParam) (*dto.GenerateReportResult, error) {
	f.calls++
	f.lastParam = param
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeProfileRepo struct {
	mu               sync.Mutex
	profiles         map[string]*model.Profile
	created          []model.Profile
	pointsWrites     []int64
	nicknameWrites   []string
	getErr           error
	createErr        error
	updatePointsErr  error
	topByPointsValue []model.Profile
}

func newFakeProfileRepo(profiles ...*model.Profile) *fakeProfileRepo {
	m := make(map[string]*model.Profile)
	for _, p := range profiles {
		m[p.ID] = p
	}
	return &fakeProfileRepo{profiles: m}
}

func (f *fakeProfileRepo) Get(ctx context.Context, id string, opts ...utils.DBOption) (*model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.profiles[id], nil
}

func (f *fakeProfileRepo) GetByReferralCode(ctx context.Context, code string, opts ...utils.DBOption) (*model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.ReferralCode == code {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) Create(ctx context.Context, profile *model.Profile, opts ...utils.DBOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.profiles[profile.ID] = profile
	f.created = append(f.created, *profile)
	return nil
}

func (f *fakeProfileRepo) UpdatePoints(ctx context.Context, id string, points int64, opts ...utils.DBOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updatePointsErr != nil {
		return f.updatePointsErr
	}
	if p, ok := f.profiles[id]; ok {
		p.Points = points
	}
	f.pointsWrites = append(f.pointsWrites, points)
	return nil
}

func (f *fakeProfileRepo) UpdateNickname(ctx context.Context, id, nickname string, opts ...utils.DBOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.profiles[id]; ok {
		p.Nickname = nickname
	}
	f.nicknameWrites = append(f.nicknameWrites, nickname)
	return nil
}

func (f *fakeProfileRepo) TopByPoints(ctx context.Context, limit int) ([]model.Profile, error) {
	return f.topByPointsValue, nil
}

type fakePredictionRepo struct {
	mu        sync.Mutex
	created   []model.Prediction
	createErr error
	matured   []model.Prediction
	outcomes  map[uint]float64
}

func (f *fakePredictionRepo) Create(ctx context.Context, prediction *model.Prediction, opts ...utils.DBOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, *prediction)
	return nil
}

func (f *fakePredictionRepo) List(ctx context.Context, param repository.ListPredictionsParam) ([]model.Prediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created, nil
}

func (f *fakePredictionRepo) ListMatured(ctx context.Context, before time.Time, limit int) ([]model.Prediction, error) {
	return f.matured, nil
}

func (f *fakePredictionRepo) RecordOutcome(ctx context.Context, id uint, outcomePrice float64, hit bool, evaluatedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.outcomes == nil {
		f.outcomes = make(map[uint]float64)
	}
	f.outcomes[id] = outcomePrice
	return nil
}

type fakeReportRepo struct {
	mu        sync.Mutex
	created   []model.Report
	createErr error
}

func (f *fakeReportRepo) Create(ctx context.Context, report *model.Report, opts ...utils.DBOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, *report)
	return nil
}

func (f *fakeReportRepo) ListByProfile(ctx context.Context, profileID string, limit int) ([]model.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var reports []model.Report
	for _, r := range f.created {
		if r.ProfileID == profileID {
			reports = append(reports, r)
		}
	}
	if limit > 0 && len(reports) > limit {
		reports = reports[:limit]
	}
	return reports, nil
}

type fakeUnitOfWork struct{}

func (f *fakeUnitOfWork) Run(fn func(opts ...utils.DBOption) error) error {
	return fn()
}
