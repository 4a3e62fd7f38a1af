package seeding

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/alexnetofit/facedash/infrastructure/repository/mocks"
	"github.com/alexnetofit/facedash/internal/domain"
)

func TestService_SeedIfEmpty(t *testing.T) {
	accounts := []*domain.AdAccount{
		{ID: "abc123", UserID: 1, ExternalID: "111", Selected: true},
		{ID: "def456", UserID: 1, ExternalID: "222", Selected: true},
	}

	t.Run("Usuário com métricas existentes não recebe dados de demonstração", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockMetricRepo := mocks.NewMockMetricRepository(ctrl)
		service := NewService(mockMetricRepo)

		mockMetricRepo.EXPECT().
			HasAnyForUser(1).
			Return(true, nil)

		err := service.SeedIfEmpty(1, accounts, 7)

		assert.NoError(t, err)
	})

	t.Run("Deve gerar windowDays linhas por conta em lotes de 10", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockMetricRepo := mocks.NewMockMetricRepository(ctrl)
		service := NewService(mockMetricRepo)

		mockMetricRepo.EXPECT().
			HasAnyForUser(1).
			Return(false, nil)

		var inserted []*domain.MetricRecord
		// 2 contas x 7 dias = 14 linhas -> lotes de 10 e 4
		mockMetricRepo.EXPECT().
			InsertBatch(gomock.Any()).
			DoAndReturn(func(records []*domain.MetricRecord) error {
				assert.LessOrEqual(t, len(records), seedBatchSize)
				inserted = append(inserted, records...)
				return nil
			}).
			Times(2)

		err := service.SeedIfEmpty(1, accounts, 7)

		assert.NoError(t, err)
		assert.Len(t, inserted, 14)
	})

	t.Run("Valores gerados devem respeitar as faixas de demonstração", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockMetricRepo := mocks.NewMockMetricRepository(ctrl)
		service := NewService(mockMetricRepo)

		mockMetricRepo.EXPECT().
			HasAnyForUser(1).
			Return(false, nil)

		var inserted []*domain.MetricRecord
		mockMetricRepo.EXPECT().
			InsertBatch(gomock.Any()).
			DoAndReturn(func(records []*domain.MetricRecord) error {
				inserted = append(inserted, records...)
				return nil
			}).
			AnyTimes()

		err := service.SeedIfEmpty(1, accounts, 7)
		assert.NoError(t, err)

		for _, record := range inserted {
			assert.Equal(t, 1, record.UserID)
			assert.NotEmpty(t, record.ID)
			assert.NotEmpty(t, record.AdAccountID)

			_, parseErr := time.Parse(time.DateOnly, record.Date)
			assert.NoError(t, parseErr)

			assert.GreaterOrEqual(t, record.Spend, seedSpendMin)
			assert.LessOrEqual(t, record.Spend, seedSpendMax)
			assert.GreaterOrEqual(t, record.CPM, seedCPMMin)
			assert.LessOrEqual(t, record.CPM, seedCPMMax)
			assert.GreaterOrEqual(t, record.CPC, seedCPCMin)
			assert.LessOrEqual(t, record.CPC, seedCPCMax)
			assert.GreaterOrEqual(t, record.CTR, seedCTRMin)
			assert.LessOrEqual(t, record.CTR, seedCTRMax)
			assert.GreaterOrEqual(t, record.Conversions, seedConvMin)
			assert.LessOrEqual(t, record.Conversions, seedConvMax)
		}
	})

	t.Run("Sem contas não faz nada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockMetricRepo := mocks.NewMockMetricRepository(ctrl)
		service := NewService(mockMetricRepo)

		err := service.SeedIfEmpty(1, []*domain.AdAccount{}, 7)

		assert.NoError(t, err)
	})

	t.Run("Erro na verificação deve subir", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockMetricRepo := mocks.NewMockMetricRepository(ctrl)
		service := NewService(mockMetricRepo)

		mockMetricRepo.EXPECT().
			HasAnyForUser(1).
			Return(false, assert.AnError)

		err := service.SeedIfEmpty(1, accounts, 7)

		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("Erro em um lote interrompe a geração", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockMetricRepo := mocks.NewMockMetricRepository(ctrl)
		service := NewService(mockMetricRepo)

		mockMetricRepo.EXPECT().
			HasAnyForUser(1).
			Return(false, nil)

		mockMetricRepo.EXPECT().
			InsertBatch(gomock.Any()).
			Return(assert.AnError)

		err := service.SeedIfEmpty(1, accounts, 7)

		assert.ErrorIs(t, err, assert.AnError)
	})
}
