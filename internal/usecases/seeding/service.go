package seeding

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/alexnetofit/facedash/infrastructure/repository"
	"github.com/alexnetofit/facedash/internal/domain"
	"github.com/alexnetofit/facedash/pkg/utils"
)

// Faixas dos valores sintéticos de demonstração
const (
	seedSpendMin = 100.0
	seedSpendMax = 1000.0
	seedCPMMin   = 5.0
	seedCPMMax   = 30.0
	seedCPCMin   = 0.5
	seedCPCMax   = 3.0
	seedCTRMin   = 0.01
	seedCTRMax   = 0.05
	seedConvMin  = 5
	seedConvMax  = 50

	// Tamanho do lote de inserção
	seedBatchSize = 10
)

// Seeder gera métricas de demonstração para usuários que ainda não têm
// nenhuma linha persistida, para o dashboard não abrir vazio
type Seeder interface {
	SeedIfEmpty(userID int, accounts []*domain.AdAccount, windowDays int) error
}

type Service struct {
	metricRepository repository.MetricRepository
}

func NewService(metricRepo repository.MetricRepository) Seeder {
	return &Service{
		metricRepository: metricRepo,
	}
}

// SeedIfEmpty gera windowDays linhas por conta selecionada quando o usuário
// não possui nenhuma métrica. Nunca sobrepõe dados existentes: se houver
// qualquer linha, a geração inteira é pulada.
func (s *Service) SeedIfEmpty(userID int, accounts []*domain.AdAccount, windowDays int) error {
	if len(accounts) == 0 || windowDays <= 0 {
		return nil
	}

	hasMetrics, err := s.metricRepository.HasAnyForUser(userID)
	if err != nil {
		return err
	}
	if hasMetrics {
		return nil
	}

	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -(windowDays - 1))
	dates := utils.DateRange(startDate, endDate)

	records := make([]*domain.MetricRecord, 0, len(accounts)*len(dates))
	for _, account := range accounts {
		for _, date := range dates {
			records = append(records, generateRecord(userID, account.ExternalID, date))
		}
	}

	for start := 0; start < len(records); start += seedBatchSize {
		end := start + seedBatchSize
		if end > len(records) {
			end = len(records)
		}

		if err := s.metricRepository.InsertBatch(records[start:end]); err != nil {
			return err
		}
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"accounts": len(accounts),
		"rows":     len(records),
	}).Info("Dados de demonstração gerados")

	return nil
}

func generateRecord(userID int, accountExternalID string, date time.Time) *domain.MetricRecord {
	return &domain.MetricRecord{
		ID:          uuid.NewString(),
		UserID:      userID,
		AdAccountID: accountExternalID,
		Date:        date.Format(time.DateOnly),
		Spend:       utils.RoundWithTwoDecimalPlace(randomFloat(seedSpendMin, seedSpendMax)),
		CPM:         utils.RoundWithTwoDecimalPlace(randomFloat(seedCPMMin, seedCPMMax)),
		CPC:         utils.RoundWithTwoDecimalPlace(randomFloat(seedCPCMin, seedCPCMax)),
		CTR:         utils.RoundWithFourDecimalPlace(randomFloat(seedCTRMin, seedCTRMax)),
		Conversions: randomInt(seedConvMin, seedConvMax),
	}
}

func randomFloat(min, max float64) float64 {
	return min + rand.Float64()*(max-min)
}

func randomInt(min, max int) int {
	return min + rand.Intn(max-min+1)
}
