package account

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/alexnetofit/facedash/infrastructure/cache"
	"github.com/alexnetofit/facedash/infrastructure/integrator/facebook"
	"github.com/alexnetofit/facedash/infrastructure/repository"
	"github.com/alexnetofit/facedash/internal/domain"
	"github.com/alexnetofit/facedash/pkg/apiErrors"
	"github.com/alexnetofit/facedash/pkg/utils"
)

type AccountService interface {
	ListForUser(userID int) ([]*domain.AdAccountResponse, error)
	ToggleSelection(accountID string, userID int, selected bool) (*domain.AdAccountResponse, error)
	ImportFromFacebook(userID int, accessToken string) (*domain.ImportAccountsResponse, error)
}

type Service struct {
	accountRepository repository.AccountRepository
	adsService        facebook.AdsIntegrator
	metricsCache      cache.MetricsCache
}

func NewService(
	accountRepository repository.AccountRepository,
	adsService facebook.AdsIntegrator,
	metricsCache cache.MetricsCache,
) AccountService {
	return &Service{
		accountRepository: accountRepository,
		adsService:        adsService,
		metricsCache:      metricsCache,
	}
}

func (s *Service) ListForUser(userID int) ([]*domain.AdAccountResponse, error) {
	accounts, err := s.accountRepository.ListByUser(userID)
	if err != nil {
		return nil, NewAccountError(ErrFetchAccounts, apiErrors.ErrDatabaseOperation, "Falha ao listar contas no banco de dados")
	}

	// Transforma os accounts para o formato de resposta da API
	adAccountsResponse := make([]*domain.AdAccountResponse, 0, len(accounts))
	for _, account := range accounts {
		adAccountsResponse = append(adAccountsResponse, &domain.AdAccountResponse{
			ID:         account.ID,
			ExternalID: account.ExternalID,
			Name:       account.Name,
			Selected:   account.Selected,
		})
	}

	return adAccountsResponse, nil
}

// ToggleSelection altera a flag de monitoramento da conta. A mutação é
// limitada ao dono: a conta de outro usuário é indistinguível de uma conta
// inexistente.
func (s *Service) ToggleSelection(accountID string, userID int, selected bool) (*domain.AdAccountResponse, error) {
	if accountID == "" {
		return nil, NewAccountError(ErrAccountIDRequired, apiErrors.ErrInvalidRequest, "ID da conta é obrigatório")
	}

	rowsAffected, err := s.accountRepository.UpdateSelection(accountID, userID, selected)
	if err != nil {
		logrus.Error("Error updating account selection on the repository:", err)
		return nil, NewAccountErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, accountID, "Falha ao atualizar seleção da conta")
	}

	if rowsAffected == 0 {
		return nil, NewAccountErrorWithID(ErrAccountNotFound, apiErrors.ErrInvalidRequest, accountID, "Conta não encontrada")
	}

	account, err := s.accountRepository.GetByIDAndUser(accountID, userID)
	if err != nil || account == nil {
		logrus.Error("Error getting account by id on the repository:", err)
		return nil, NewAccountErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, accountID, "Falha ao consultar conta atualizada")
	}

	// A janela de métricas depende do conjunto de contas selecionadas
	s.metricsCache.InvalidateUser(context.Background(), userID)

	return &domain.AdAccountResponse{
		ID:         account.ID,
		ExternalID: account.ExternalID,
		Name:       account.Name,
		Selected:   account.Selected,
	}, nil
}

// ImportFromFacebook busca as contas de anúncios do dono do token na Graph
// API e as grava para o usuário. Reimportar é idempotente: contas já
// existentes apenas têm o nome atualizado, preservando a flag de seleção.
func (s *Service) ImportFromFacebook(userID int, accessToken string) (*domain.ImportAccountsResponse, error) {
	if accessToken == "" {
		return nil, NewAccountError(ErrMissingToken, apiErrors.ErrMissingRequiredData, "Token de acesso é obrigatório")
	}

	fbAccounts, err := s.adsService.ListAdAccounts(accessToken)
	if err != nil {
		logrus.Error("Error getting ad accounts from integrator facebook:", err)
		return nil, NewAccountError(ErrFacebookIntegration, apiErrors.ErrExternalService, "Falha ao obter contas da Graph API")
	}

	if len(fbAccounts) == 0 {
		// Sem contas não é erro fatal: o usuário pode não ter contas de
		// anúncios vinculadas ao token
		return &domain.ImportAccountsResponse{
			Quantity: 0,
			Accounts: []*domain.AdAccountResponse{},
			Message:  "Nenhuma conta de anúncios encontrada para este token",
		}, nil
	}

	accountsToSave := make([]*domain.AdAccount, 0, len(fbAccounts))
	for _, fbAccount := range fbAccounts {
		accountID, err := utils.GenerateID()
		if err != nil {
			return nil, NewAccountError(ErrGenerateID, apiErrors.ErrInternalServer, "Falha ao gerar identificador único para conta")
		}

		accountsToSave = append(accountsToSave, &domain.AdAccount{
			ID:         accountID,
			UserID:     userID,
			ExternalID: fbAccount.AccountID,
			Name:       fbAccount.Name,
			Selected:   true, // Contas novas entram selecionadas
		})
	}

	if err := s.accountRepository.UpsertAccounts(accountsToSave); err != nil {
		return nil, NewAccountError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao salvar contas importadas")
	}

	s.metricsCache.InvalidateUser(context.Background(), userID)

	// A resposta sai das linhas persistidas: em uma reimportação o conflito
	// preserva o id interno e a flag de seleção existentes, não os valores
	// recém-gerados acima
	persisted, err := s.accountRepository.ListByUser(userID)
	if err != nil {
		logrus.Error("Error listing accounts after import on the repository:", err)
		return nil, NewAccountError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar contas importadas")
	}

	imported := make(map[string]bool, len(accountsToSave))
	for _, account := range accountsToSave {
		imported[account.ExternalID] = true
	}

	accountsResponse := make([]*domain.AdAccountResponse, 0, len(accountsToSave))
	for _, account := range persisted {
		if !imported[account.ExternalID] {
			continue
		}

		accountsResponse = append(accountsResponse, &domain.AdAccountResponse{
			ID:         account.ID,
			ExternalID: account.ExternalID,
			Name:       account.Name,
			Selected:   account.Selected,
		})
	}

	quantity := len(accountsResponse)
	logrus.Infof("%d accounts were successfully imported for user %d", quantity, userID)

	return &domain.ImportAccountsResponse{
		Quantity: quantity,
		Accounts: accountsResponse,
		Message:  fmt.Sprintf("%d contas foram importadas com sucesso", quantity),
	}, nil
}
