package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/alexnetofit/facedash/infrastructure/cache"
	fbmocks "github.com/alexnetofit/facedash/infrastructure/integrator/facebook/mocks"
	"github.com/alexnetofit/facedash/infrastructure/repository/mocks"
	"github.com/alexnetofit/facedash/internal/domain"
)

func TestMetricsSyncService_processUserMetrics(t *testing.T) {
	startDate := time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	token := "fb-token"
	user := &domain.User{
		ID:                  1,
		Name:                "Maria",
		Active:              true,
		FacebookAccessToken: &token,
	}

	tests := []struct {
		name  string
		user  *domain.User
		setup func(
			accountRepo *mocks.MockAccountRepository,
			metricRepo *mocks.MockMetricRepository,
			adsService *fbmocks.MockAdsIntegrator,
		)
	}{
		{
			name: "Deve buscar métricas das contas selecionadas e persistir com identidade preenchida",
			user: user,
			setup: func(
				accountRepo *mocks.MockAccountRepository,
				metricRepo *mocks.MockMetricRepository,
				adsService *fbmocks.MockAdsIntegrator,
			) {
				accountRepo.EXPECT().
					ListSelectedByUser(1).
					Return([]*domain.AdAccount{
						{ID: "abc123", UserID: 1, ExternalID: "111", Selected: true},
					}, nil)

				adsService.EXPECT().
					FetchDailyMetrics("111", "fb-token", startDate, endDate).
					Return([]*domain.MetricRecord{
						{Date: "2024-01-14", Spend: 120.5, CPM: 11.2, CPC: 0.9, CTR: 0.021, Conversions: 4},
						{Date: "2024-01-15", Spend: 98.1, CPM: 9.8, CPC: 0.8, CTR: 0.018, Conversions: 2},
					}, nil)

				metricRepo.EXPECT().
					SaveOrUpdate(gomock.Any()).
					DoAndReturn(func(record *domain.MetricRecord) error {
						assert.Equal(t, 1, record.UserID)
						assert.Equal(t, "111", record.AdAccountID)
						assert.NotEmpty(t, record.ID)
						return nil
					}).
					Times(2)
			},
		},
		{
			name: "Usuário sem contas selecionadas não chama a Graph API",
			user: user,
			setup: func(
				accountRepo *mocks.MockAccountRepository,
				metricRepo *mocks.MockMetricRepository,
				adsService *fbmocks.MockAdsIntegrator,
			) {
				accountRepo.EXPECT().
					ListSelectedByUser(1).
					Return([]*domain.AdAccount{}, nil)
			},
		},
		{
			name: "Usuário sem token do Facebook é pulado",
			user: &domain.User{ID: 2, Name: "Sem Token", Active: true},
			setup: func(
				accountRepo *mocks.MockAccountRepository,
				metricRepo *mocks.MockMetricRepository,
				adsService *fbmocks.MockAdsIntegrator,
			) {
				// Nenhuma chamada esperada
			},
		},
		{
			name: "Erro da Graph API em uma conta não interrompe as demais",
			user: user,
			setup: func(
				accountRepo *mocks.MockAccountRepository,
				metricRepo *mocks.MockMetricRepository,
				adsService *fbmocks.MockAdsIntegrator,
			) {
				accountRepo.EXPECT().
					ListSelectedByUser(1).
					Return([]*domain.AdAccount{
						{ID: "abc123", UserID: 1, ExternalID: "111", Selected: true},
						{ID: "def456", UserID: 1, ExternalID: "222", Selected: true},
					}, nil)

				adsService.EXPECT().
					FetchDailyMetrics("111", "fb-token", startDate, endDate).
					Return(nil, assert.AnError)

				adsService.EXPECT().
					FetchDailyMetrics("222", "fb-token", startDate, endDate).
					Return([]*domain.MetricRecord{
						{Date: "2024-01-15", Spend: 10, Conversions: 1},
					}, nil)

				metricRepo.EXPECT().
					SaveOrUpdate(gomock.Any()).
					Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockUserRepo := mocks.NewMockUserRepository(ctrl)
			mockAccountRepo := mocks.NewMockAccountRepository(ctrl)
			mockMetricRepo := mocks.NewMockMetricRepository(ctrl)
			mockAdsService := fbmocks.NewMockAdsIntegrator(ctrl)

			service := &MetricsSyncService{
				config: MetricsSyncConfig{
					LookbackDays:        7,
					RequestDelaySeconds: 0,
				},
				userRepo:     mockUserRepo,
				accountRepo:  mockAccountRepo,
				metricRepo:   mockMetricRepo,
				adsService:   mockAdsService,
				metricsCache: cache.NewNoopCache(),
			}

			tt.setup(mockAccountRepo, mockMetricRepo, mockAdsService)

			service.processUserMetrics(tt.user, startDate, endDate)
		})
	}
}

func TestMetricsSyncService_pruneOldMetrics(t *testing.T) {
	t.Run("Retenção configurada remove métricas antigas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockMetricRepo := mocks.NewMockMetricRepository(ctrl)
		service := &MetricsSyncService{
			config:     MetricsSyncConfig{RetentionDays: 90},
			metricRepo: mockMetricRepo,
		}

		mockMetricRepo.EXPECT().
			DeleteOlderThan(90).
			Return(int64(12), nil)

		service.pruneOldMetrics()
	})

	t.Run("Retenção zerada não toca no banco", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockMetricRepo := mocks.NewMockMetricRepository(ctrl)
		service := &MetricsSyncService{
			config:     MetricsSyncConfig{RetentionDays: 0},
			metricRepo: mockMetricRepo,
		}

		service.pruneOldMetrics()
	})
}

func TestMetricsSyncService_GetStatus(t *testing.T) {
	service := &MetricsSyncService{
		config: MetricsSyncConfig{
			CronSchedule:        "0 3 * * *",
			LookbackDays:        7,
			RequestDelaySeconds: 2,
			SyncEnabled:         true,
		},
	}

	status := service.GetStatus()

	assert.Equal(t, true, status["sync_enabled"])
	assert.Equal(t, "0 3 * * *", status["sync_cron"])
	assert.Equal(t, 7, status["sync_lookback_days"])
}

func TestMetricsSyncService_GetStatusDuringSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	mockMetricRepo := mocks.NewMockMetricRepository(ctrl)

	service := &MetricsSyncService{
		config:       MetricsSyncConfig{LookbackDays: 7},
		userRepo:     mockUserRepo,
		metricRepo:   mockMetricRepo,
		metricsCache: cache.NewNoopCache(),
	}

	mockUserRepo.EXPECT().
		ListUsersWithFacebookToken().
		Return([]*domain.User{}, nil).
		Times(3)

	// Leituras de status concorrentes com a execução da sincronização não
	// podem observar estado parcial (verificado com -race)
	done := make(chan struct{})
	go func() {
		for i := 0; i < 3; i++ {
			service.syncAllUserMetrics()
		}
		close(done)
	}()

	for i := 0; i < 50; i++ {
		service.GetStatus()
	}
	<-done

	status := service.GetStatus()
	startedAt, ok := status["last_sync_started_at"].(time.Time)
	assert.True(t, ok)
	assert.False(t, startedAt.IsZero())
}
