package reporting

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alexnetofit/facedash/infrastructure/cache"
	"github.com/alexnetofit/facedash/infrastructure/repository"
	"github.com/alexnetofit/facedash/internal/domain"
	"github.com/alexnetofit/facedash/internal/usecases/seeding"
)

const defaultWindowDays = 7

// Reporter agrega as métricas diárias persistidas no resumo semanal e na
// série temporal consumidos pelo dashboard
type Reporter interface {
	FetchWindowedRecords(userID int, accountIDs []string, windowDays int) ([]*domain.MetricRecord, error)
	GetDashboardMetrics(ctx context.Context, userID, windowDays int) (*domain.DashboardMetricsResponse, error)
}

type Service struct {
	accountRepository repository.AccountRepository
	metricRepository  repository.MetricRepository
	metricsCache      cache.MetricsCache
	seeder            seeding.Seeder
	useCache          bool
}

// NewService cria o serviço de agregação. Cache e seeder são opcionais e
// habilitados pelos builders WithCache e WithSeeder.
func NewService(
	accountRepo repository.AccountRepository,
	metricRepo repository.MetricRepository,
) *Service {
	return &Service{
		accountRepository: accountRepo,
		metricRepository:  metricRepo,
		metricsCache:      cache.NewNoopCache(),
		useCache:          false,
	}
}

// WithCache habilita o cache de respostas agregadas
func (s *Service) WithCache(metricsCache cache.MetricsCache) *Service {
	if metricsCache != nil {
		s.metricsCache = metricsCache
		s.useCache = true
	}
	return s
}

// WithSeeder habilita a geração de dados de demonstração para usuários sem
// nenhuma métrica persistida
func (s *Service) WithSeeder(seeder seeding.Seeder) *Service {
	s.seeder = seeder
	return s
}

// FetchWindowedRecords busca as métricas do usuário na janela
// [hoje-windowDays, hoje], inclusiva. Sem contas selecionadas a resposta é
// vazia e o banco não é consultado; erros do repositório sobem sem tradução.
func (s *Service) FetchWindowedRecords(userID int, accountIDs []string, windowDays int) ([]*domain.MetricRecord, error) {
	if len(accountIDs) == 0 {
		return []*domain.MetricRecord{}, nil
	}

	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}

	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -windowDays)

	return s.metricRepository.GetByUserAndAccounts(userID, accountIDs, startDate, endDate)
}

// GetDashboardMetrics é a orquestração usada pelo handler do dashboard:
// contas selecionadas -> janela de métricas -> {diário, resumo, série}
func (s *Service) GetDashboardMetrics(ctx context.Context, userID, windowDays int) (*domain.DashboardMetricsResponse, error) {
	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}

	if s.useCache {
		if cached, ok := s.metricsCache.GetDashboard(ctx, userID, windowDays); ok {
			logrus.WithField("user_id", userID).Debug("dashboard metrics servidas do cache")
			return cached, nil
		}
	}

	accounts, err := s.accountRepository.ListSelectedByUser(userID)
	if err != nil {
		return nil, err
	}

	if s.seeder != nil && len(accounts) > 0 {
		// Dados de demonstração apenas quando o usuário nunca teve métricas
		if err := s.seeder.SeedIfEmpty(userID, accounts, windowDays); err != nil {
			logrus.WithError(err).Warn("erro ao gerar dados de demonstração, seguindo sem eles")
		}
	}

	accountIDs := make([]string, 0, len(accounts))
	for _, account := range accounts {
		accountIDs = append(accountIDs, account.ExternalID)
	}

	records, err := s.FetchWindowedRecords(userID, accountIDs, windowDays)
	if err != nil {
		return nil, err
	}

	response := &domain.DashboardMetricsResponse{
		Daily:  records,
		Weekly: ComputeWeeklySummary(records),
		Chart:  ComputeChartSeries(records),
	}

	if s.useCache {
		s.metricsCache.SetDashboard(ctx, userID, windowDays, response)
	}

	return response, nil
}

// ComputeWeeklySummary calcula o rollup da janela: soma de spend e
// conversions, média aritmética simples de cpm, cpc e ctr. Entrada vazia
// produz o resumo zerado.
func ComputeWeeklySummary(records []*domain.MetricRecord) domain.WeeklySummary {
	if len(records) == 0 {
		return domain.WeeklySummary{}
	}

	var summary domain.WeeklySummary
	for _, record := range records {
		summary.Spend += record.Spend
		summary.CPM += record.CPM
		summary.CPC += record.CPC
		summary.CTR += record.CTR
		summary.Conversions += record.Conversions
	}

	// Sem arredondamento aqui: a camada de dados preserva a precisão total e
	// a formatação fica a cargo da apresentação
	count := float64(len(records))
	summary.CPM /= count
	summary.CPC /= count
	summary.CTR /= count

	return summary
}

// chartBucket acumula as métricas de um dia antes da divisão pela contagem
type chartBucket struct {
	spend       float64
	cpm         float64
	cpc         float64
	ctr         float64
	conversions int
	count       int
}

// ComputeChartSeries monta a série temporal agrupada por data ISO: soma de
// spend e conversions por dia, média de cpm, cpc e ctr pela contagem de
// registros do dia. Labels em ordem ascendente; entrada vazia produz nil.
func ComputeChartSeries(records []*domain.MetricRecord) *domain.ChartSeries {
	if len(records) == 0 {
		return nil
	}

	buckets := make(map[string]*chartBucket)
	for _, record := range records {
		bucket, exists := buckets[record.Date]
		if !exists {
			bucket = &chartBucket{}
			buckets[record.Date] = bucket
		}

		bucket.spend += record.Spend
		bucket.cpm += record.CPM
		bucket.cpc += record.CPC
		bucket.ctr += record.CTR
		bucket.conversions += record.Conversions
		bucket.count++
	}

	labels := make([]string, 0, len(buckets))
	for date := range buckets {
		labels = append(labels, date)
	}
	// Ordem lexicográfica == cronológica para datas ISO
	sort.Strings(labels)

	series := &domain.ChartSeries{
		Labels: labels,
		Datasets: domain.ChartDatasets{
			Spend:       make([]float64, 0, len(labels)),
			CPM:         make([]float64, 0, len(labels)),
			CPC:         make([]float64, 0, len(labels)),
			CTR:         make([]float64, 0, len(labels)),
			Conversions: make([]int, 0, len(labels)),
		},
	}

	for _, date := range labels {
		bucket := buckets[date]
		count := float64(bucket.count)

		series.Datasets.Spend = append(series.Datasets.Spend, bucket.spend)
		series.Datasets.CPM = append(series.Datasets.CPM, bucket.cpm/count)
		series.Datasets.CPC = append(series.Datasets.CPC, bucket.cpc/count)
		series.Datasets.CTR = append(series.Datasets.CTR, bucket.ctr/count)
		series.Datasets.Conversions = append(series.Datasets.Conversions, bucket.conversions)
	}

	return series
}
