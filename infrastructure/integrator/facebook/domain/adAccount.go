package fbdomain

// AdAccount representa uma conta de anúncios retornada pela Graph API
// (/me/adaccounts)
type AdAccount struct {
	ID            string `json:"id"`         // no formato "act_<account_id>"
	Name          string `json:"name"`
	AccountID     string `json:"account_id"` // identificador numérico sem o prefixo "act_"
	AccountStatus int    `json:"account_status"`
}

// IsActive indica se a conta está ativa na plataforma.
// O status 1 representa ACTIVE na Graph API.
func (a AdAccount) IsActive() bool {
	return a.AccountStatus == 1
}
