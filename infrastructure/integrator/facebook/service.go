package facebook

import (
	"strconv"
	"time"

	fbdomain "github.com/alexnetofit/facedash/infrastructure/integrator/facebook/domain"
	"github.com/alexnetofit/facedash/infrastructure/integrator/facebook/fbclient"
	"github.com/alexnetofit/facedash/internal/config"
	"github.com/alexnetofit/facedash/internal/domain"
	"github.com/alexnetofit/facedash/pkg/utils"
	"github.com/sirupsen/logrus"
)

// AdsIntegrator é o adaptador tipado sobre a Graph API. O restante da
// aplicação nunca depende da convenção de chamada do provedor, apenas desta
// interface.
type AdsIntegrator interface {
	// ListAdAccounts lista as contas de anúncios do dono do token
	ListAdAccounts(accessToken string) ([]fbdomain.AdAccount, error)

	// FetchDailyMetrics busca as métricas diárias de uma conta no intervalo
	// [startDate, endDate] e as converte para o formato interno. Os campos de
	// identidade (ID, UserID, AdAccountID) ficam a cargo do chamador.
	FetchDailyMetrics(accountExternalID, accessToken string, startDate, endDate time.Time) ([]*domain.MetricRecord, error)

	// VerifyUserToken valida um token de usuário via debug_token
	VerifyUserToken(inputToken string) (*fbdomain.TokenDebugData, error)

	// GetUserProfile obtém id e email do dono do token
	GetUserProfile(accessToken string) (*fbdomain.FacebookUser, error)
}

type FacebookIntegrator struct {
	cfg    *config.Config
	Client fbclient.Client
}

func New(cfg *config.Config, client fbclient.Client) *FacebookIntegrator {
	return &FacebookIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

func (s *FacebookIntegrator) ListAdAccounts(accessToken string) ([]fbdomain.AdAccount, error) {
	accounts, err := s.Client.ListAdAccounts(accessToken)
	if err != nil {
		logrus.WithError(err).Error("facebook: failed to list ad accounts from Graph API")
		return nil, err
	}

	logrus.WithField("quantity", len(accounts)).Debug("facebook: ad accounts retrieved from Graph API")
	return accounts, nil
}

func (s *FacebookIntegrator) FetchDailyMetrics(accountExternalID, accessToken string, startDate, endDate time.Time) ([]*domain.MetricRecord, error) {
	rows, err := s.Client.GetDailyInsights(accountExternalID, accessToken, startDate, endDate)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountExternalID,
			"error":      err.Error(),
		}).Error("facebook: failed to get daily insights from Graph API")
		return nil, err
	}

	records := make([]*domain.MetricRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, factoryMetricRecord(row))
	}

	return records, nil
}

func (s *FacebookIntegrator) VerifyUserToken(inputToken string) (*fbdomain.TokenDebugData, error) {
	return s.Client.DebugToken(inputToken)
}

func (s *FacebookIntegrator) GetUserProfile(accessToken string) (*fbdomain.FacebookUser, error) {
	return s.Client.GetMe(accessToken)
}

// factoryMetricRecord converte uma linha de insight da Graph API para o
// formato interno de métricas diárias
func factoryMetricRecord(row fbdomain.InsightRow) *domain.MetricRecord {
	// A Graph API entrega o CTR como percentual; internamente trabalhamos com
	// fração em [0,1]
	ctr := parseGraphFloat(row.CTR, "ctr") / 100

	return &domain.MetricRecord{
		Date:        row.DateStart,
		Spend:       parseGraphFloat(row.Spend, "spend"),
		CPM:         parseGraphFloat(row.CPM, "cpm"),
		CPC:         parseGraphFloat(row.CPC, "cpc"),
		CTR:         utils.RoundWithFourDecimalPlace(ctr),
		Conversions: extractConversions(row.Actions),
	}
}

// extractConversions soma os valores das ações contabilizadas como conversão
func extractConversions(actions []fbdomain.Action) int {
	total := 0
	for _, action := range actions {
		if !fbdomain.ConversionActionTypes[action.ActionType] {
			continue
		}

		value, err := strconv.Atoi(action.Value)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"action_type": action.ActionType,
				"value":       action.Value,
			}).Warn("facebook: error converting action value to int")
			continue
		}

		total += value
	}

	return total
}

func parseGraphFloat(value, field string) float64 {
	if value == "" {
		return 0
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"field": field,
			"value": value,
		}).Warn("facebook: error converting value to float")
		return 0
	}

	return parsed
}
