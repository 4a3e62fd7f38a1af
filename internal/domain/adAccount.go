package domain

import (
	"time"
)

// AdAccount representa uma conta de anúncios do Facebook conectada por um usuário
type AdAccount struct {
	ID         string    `json:"id"`
	UserID     int       `json:"user_id"`
	ExternalID string    `json:"ad_account_id"`
	Name       string    `json:"nome_conta"`
	Selected   bool      `json:"selecionada"`
	CreatedAt  time.Time `json:"created_at"`
}

type AdAccountResponse struct {
	ID         string `json:"id"`
	ExternalID string `json:"ad_account_id"`
	Name       string `json:"nome_conta"`
	Selected   bool   `json:"selecionada"`
}

type UpdateSelectionRequest struct {
	Selected *bool `json:"selecionada"`
}

type ImportAccountsRequest struct {
	AccessToken string `json:"access_token"`
}

type ImportAccountsResponse struct {
	Quantity int                  `json:"quantity"`
	Accounts []*AdAccountResponse `json:"accounts"`
	Message  string               `json:"message"`
}
