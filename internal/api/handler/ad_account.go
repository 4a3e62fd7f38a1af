package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/alexnetofit/facedash/internal/domain"
	"github.com/alexnetofit/facedash/internal/usecases/account"
	"github.com/alexnetofit/facedash/pkg/apiErrors"
	"github.com/alexnetofit/facedash/pkg/middleware"
)

// GetUserAccounts lista as contas de anúncios do usuário logado
func GetUserAccounts(service account.AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		accounts, err := service.ListForUser(userClaims.UserID)
		if err != nil {
			handleAccountError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(accounts)
	}
}

// ImportAccounts importa as contas de anúncios do Facebook para o usuário logado
func ImportAccounts(service account.AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ImportAccounts")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.ImportAccountsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		response, err := service.ImportFromFacebook(userClaims.UserID, req.AccessToken)
		if err != nil {
			handleAccountError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

// UpdateAccountSelection altera a flag de monitoramento de uma conta do usuário logado
func UpdateAccountSelection(service account.AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		accountID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if accountID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta não fornecido", nil)
			return
		}

		var req domain.UpdateSelectionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.Selected == nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campo 'selecionada' é obrigatório", nil)
			return
		}

		updated, err := service.ToggleSelection(accountID, userClaims.UserID, *req.Selected)
		if err != nil {
			handleAccountError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

// handleAccountError trata erros do contexto de contas e retorna a resposta apropriada
func handleAccountError(w http.ResponseWriter, err error) {
	var accountErr *account.AccountError
	if errors.As(err, &accountErr) {
		apiErrors.WriteError(w, accountErr.Code, accountErr.Error(), map[string]any{
			"account_id": accountErr.AccountID,
		})
		return
	}

	switch {
	case errors.Is(err, account.ErrAccountNotFound):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Conta não encontrada", nil)

	case errors.Is(err, account.ErrFacebookIntegration):
		apiErrors.WriteError(w, apiErrors.ErrExternalService, "Falha na comunicação com o Facebook", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar requisição", nil)
	}
}
