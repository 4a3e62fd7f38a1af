package reporting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/alexnetofit/facedash/infrastructure/repository/mocks"
	"github.com/alexnetofit/facedash/internal/domain"
)

func TestComputeWeeklySummary(t *testing.T) {
	tests := []struct {
		name     string
		records  []*domain.MetricRecord
		expected domain.WeeklySummary
	}{
		{
			name:     "Entrada vazia deve retornar resumo zerado",
			records:  []*domain.MetricRecord{},
			expected: domain.WeeklySummary{},
		},
		{
			name:     "Entrada nula deve retornar resumo zerado",
			records:  nil,
			expected: domain.WeeklySummary{},
		},
		{
			name: "Deve somar spend e conversions e calcular média de cpm, cpc e ctr",
			records: []*domain.MetricRecord{
				{Date: "2024-01-15", Spend: 100, CPM: 10, CPC: 1.0, CTR: 0.02, Conversions: 5},
				{Date: "2024-01-16", Spend: 100, CPM: 15, CPC: 1.5, CTR: 0.03, Conversions: 5},
				{Date: "2024-01-17", Spend: 100, CPM: 20, CPC: 2.0, CTR: 0.04, Conversions: 5},
			},
			expected: domain.WeeklySummary{
				Spend:       300,
				CPM:         15,
				CPC:         1.5,
				CTR:         0.03,
				Conversions: 15,
			},
		},
		{
			name: "Precisão total: média e soma não sofrem arredondamento de exibição",
			records: []*domain.MetricRecord{
				{Date: "2024-01-15", Spend: 100.111, CPM: 10, CPC: 1.001, CTR: 0.02111, Conversions: 1},
				{Date: "2024-01-16", Spend: 100.111, CPM: 10.004, CPC: 1.002, CTR: 0.02112, Conversions: 1},
				{Date: "2024-01-17", Spend: 100.111, CPM: 10.004, CPC: 1.003, CTR: 0.02113, Conversions: 1},
			},
			expected: domain.WeeklySummary{
				Spend:       300.333,
				CPM:         (10 + 10.004 + 10.004) / 3, // 10.002666...
				CPC:         1.002,
				CTR:         0.02112,
				Conversions: 3,
			},
		},
		{
			name: "Registro único deve ser a própria média",
			records: []*domain.MetricRecord{
				{Date: "2024-01-15", Spend: 250.50, CPM: 12.34, CPC: 0.87, CTR: 0.0123, Conversions: 42},
			},
			expected: domain.WeeklySummary{
				Spend:       250.50,
				CPM:         12.34,
				CPC:         0.87,
				CTR:         0.0123,
				Conversions: 42,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComputeWeeklySummary(tt.records)

			assert.InDelta(t, tt.expected.Spend, result.Spend, 1e-9)
			assert.InDelta(t, tt.expected.CPM, result.CPM, 1e-9)
			assert.InDelta(t, tt.expected.CPC, result.CPC, 1e-9)
			assert.InDelta(t, tt.expected.CTR, result.CTR, 1e-9)
			assert.Equal(t, tt.expected.Conversions, result.Conversions)
		})
	}
}

func TestComputeChartSeries(t *testing.T) {
	t.Run("Entrada vazia deve retornar nil", func(t *testing.T) {
		assert.Nil(t, ComputeChartSeries(nil))
		assert.Nil(t, ComputeChartSeries([]*domain.MetricRecord{}))
	})

	t.Run("Deve agrupar por data com labels em ordem ascendente", func(t *testing.T) {
		records := []*domain.MetricRecord{
			{Date: "2024-01-17", Spend: 300, CPM: 20, CPC: 2.0, CTR: 0.04, Conversions: 7},
			{Date: "2024-01-15", Spend: 100, CPM: 10, CPC: 1.0, CTR: 0.02, Conversions: 3},
			{Date: "2024-01-16", Spend: 200, CPM: 15, CPC: 1.5, CTR: 0.03, Conversions: 5},
		}

		series := ComputeChartSeries(records)

		assert.NotNil(t, series)
		assert.Equal(t, []string{"2024-01-15", "2024-01-16", "2024-01-17"}, series.Labels)
		assert.Equal(t, []float64{100, 200, 300}, series.Datasets.Spend)
		assert.Equal(t, []int{3, 5, 7}, series.Datasets.Conversions)
	})

	t.Run("Duas contas na mesma data: soma de spend e conversions, média de cpm, cpc e ctr", func(t *testing.T) {
		records := []*domain.MetricRecord{
			{AdAccountID: "111", Date: "2024-01-15", Spend: 100, CPM: 10, CPC: 1.0, CTR: 0.02, Conversions: 3},
			{AdAccountID: "222", Date: "2024-01-15", Spend: 200, CPM: 20, CPC: 2.0, CTR: 0.04, Conversions: 7},
		}

		series := ComputeChartSeries(records)

		assert.Equal(t, []string{"2024-01-15"}, series.Labels)
		assert.InDelta(t, 300.0, series.Datasets.Spend[0], 1e-9)
		assert.InDelta(t, 15.0, series.Datasets.CPM[0], 1e-9)
		assert.InDelta(t, 1.5, series.Datasets.CPC[0], 1e-9)
		assert.InDelta(t, 0.03, series.Datasets.CTR[0], 1e-9)
		assert.Equal(t, 10, series.Datasets.Conversions[0])
	})

	t.Run("Média por data preserva precisão total", func(t *testing.T) {
		records := []*domain.MetricRecord{
			{AdAccountID: "111", Date: "2024-01-15", Spend: 100.111, CPM: 10, CPC: 1.001, CTR: 0.02111, Conversions: 1},
			{AdAccountID: "222", Date: "2024-01-15", Spend: 100.111, CPM: 10.004, CPC: 1.002, CTR: 0.02113, Conversions: 1},
			{AdAccountID: "333", Date: "2024-01-15", Spend: 100.111, CPM: 10.004, CPC: 1.003, CTR: 0.02112, Conversions: 1},
		}

		series := ComputeChartSeries(records)

		assert.InDelta(t, 300.333, series.Datasets.Spend[0], 1e-9)
		assert.InDelta(t, (10+10.004+10.004)/3.0, series.Datasets.CPM[0], 1e-9)
		assert.InDelta(t, 1.002, series.Datasets.CPC[0], 1e-9)
		assert.InDelta(t, 0.02112, series.Datasets.CTR[0], 1e-9)
	})

	t.Run("Datas com contagens diferentes devem dividir pela contagem do próprio dia", func(t *testing.T) {
		records := []*domain.MetricRecord{
			{AdAccountID: "111", Date: "2024-01-15", Spend: 100, CPM: 10, CPC: 1.0, CTR: 0.02, Conversions: 2},
			{AdAccountID: "222", Date: "2024-01-15", Spend: 100, CPM: 30, CPC: 3.0, CTR: 0.04, Conversions: 2},
			{AdAccountID: "111", Date: "2024-01-16", Spend: 50, CPM: 12, CPC: 1.2, CTR: 0.05, Conversions: 1},
		}

		series := ComputeChartSeries(records)

		assert.Equal(t, []string{"2024-01-15", "2024-01-16"}, series.Labels)

		// Dia 15: duas linhas -> média pela contagem 2
		assert.InDelta(t, 20.0, series.Datasets.CPM[0], 1e-9)
		assert.InDelta(t, 2.0, series.Datasets.CPC[0], 1e-9)
		assert.InDelta(t, 0.03, series.Datasets.CTR[0], 1e-9)

		// Dia 16: uma linha -> valores inalterados
		assert.InDelta(t, 12.0, series.Datasets.CPM[1], 1e-9)
		assert.InDelta(t, 1.2, series.Datasets.CPC[1], 1e-9)
		assert.InDelta(t, 0.05, series.Datasets.CTR[1], 1e-9)
	})
}

func TestService_FetchWindowedRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccountRepo := mocks.NewMockAccountRepository(ctrl)
	mockMetricRepo := mocks.NewMockMetricRepository(ctrl)

	service := NewService(mockAccountRepo, mockMetricRepo)

	t.Run("Sem contas deve retornar vazio sem consultar o banco", func(t *testing.T) {
		// Nenhum EXPECT no repositório de métricas: qualquer chamada falha o teste
		records, err := service.FetchWindowedRecords(1, []string{}, 7)

		assert.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("Com contas deve delegar ao repositório", func(t *testing.T) {
		expected := []*domain.MetricRecord{
			{UserID: 1, AdAccountID: "111", Date: "2024-01-15", Spend: 100},
		}

		mockMetricRepo.EXPECT().
			GetByUserAndAccounts(1, []string{"111", "222"}, gomock.Any(), gomock.Any()).
			Return(expected, nil)

		records, err := service.FetchWindowedRecords(1, []string{"111", "222"}, 7)

		assert.NoError(t, err)
		assert.Equal(t, expected, records)
	})

	t.Run("Erro do repositório deve subir sem tradução", func(t *testing.T) {
		mockMetricRepo.EXPECT().
			GetByUserAndAccounts(1, []string{"111"}, gomock.Any(), gomock.Any()).
			Return(nil, assert.AnError)

		records, err := service.FetchWindowedRecords(1, []string{"111"}, 7)

		assert.ErrorIs(t, err, assert.AnError)
		assert.Nil(t, records)
	})
}

func TestService_GetDashboardMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccountRepo := mocks.NewMockAccountRepository(ctrl)
	mockMetricRepo := mocks.NewMockMetricRepository(ctrl)

	service := NewService(mockAccountRepo, mockMetricRepo)

	t.Run("Usuário sem contas selecionadas recebe resposta vazia", func(t *testing.T) {
		mockAccountRepo.EXPECT().
			ListSelectedByUser(1).
			Return([]*domain.AdAccount{}, nil)

		response, err := service.GetDashboardMetrics(context.Background(), 1, 7)

		assert.NoError(t, err)
		assert.Empty(t, response.Daily)
		assert.Equal(t, domain.WeeklySummary{}, response.Weekly)
		assert.Nil(t, response.Chart)
	})

	t.Run("Orquestração completa: contas selecionadas -> janela -> agregados", func(t *testing.T) {
		accounts := []*domain.AdAccount{
			{ID: "abc123", UserID: 1, ExternalID: "111", Selected: true},
			{ID: "def456", UserID: 1, ExternalID: "222", Selected: true},
		}
		records := []*domain.MetricRecord{
			{UserID: 1, AdAccountID: "111", Date: "2024-01-15", Spend: 100, CPM: 10, CPC: 1.0, CTR: 0.02, Conversions: 5},
			{UserID: 1, AdAccountID: "222", Date: "2024-01-15", Spend: 200, CPM: 20, CPC: 2.0, CTR: 0.04, Conversions: 10},
		}

		mockAccountRepo.EXPECT().
			ListSelectedByUser(1).
			Return(accounts, nil)

		mockMetricRepo.EXPECT().
			GetByUserAndAccounts(1, []string{"111", "222"}, gomock.Any(), gomock.Any()).
			Return(records, nil)

		response, err := service.GetDashboardMetrics(context.Background(), 1, 7)

		assert.NoError(t, err)
		assert.Len(t, response.Daily, 2)
		assert.InDelta(t, 300.0, response.Weekly.Spend, 1e-9)
		assert.InDelta(t, 15.0, response.Weekly.CPM, 1e-9)
		assert.Equal(t, 15, response.Weekly.Conversions)
		assert.Equal(t, []string{"2024-01-15"}, response.Chart.Labels)
	})

	t.Run("Erro ao listar contas deve subir", func(t *testing.T) {
		mockAccountRepo.EXPECT().
			ListSelectedByUser(1).
			Return(nil, assert.AnError)

		response, err := service.GetDashboardMetrics(context.Background(), 1, 7)

		assert.ErrorIs(t, err, assert.AnError)
		assert.Nil(t, response)
	})

	t.Run("windowDays inválido usa o padrão de 7 dias", func(t *testing.T) {
		mockAccountRepo.EXPECT().
			ListSelectedByUser(1).
			Return([]*domain.AdAccount{}, nil)

		response, err := service.GetDashboardMetrics(context.Background(), 1, 0)

		assert.NoError(t, err)
		assert.NotNil(t, response)
	})
}
