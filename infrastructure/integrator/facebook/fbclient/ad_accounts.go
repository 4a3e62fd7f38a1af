package fbclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	fbdomain "github.com/alexnetofit/facedash/infrastructure/integrator/facebook/domain"
	"github.com/sirupsen/logrus"
)

type ResponseAdAccount struct {
	Data []fbdomain.AdAccount `json:"data"`
}

// TODO fazer iteração de paging para contas com mais de uma página
func (c *FacebookClient) ListAdAccounts(accessToken string) ([]fbdomain.AdAccount, error) {
	baseURL := fmt.Sprintf("%s/me/adaccounts", c.Cfg.Facebook.URL)

	params := url.Values{}
	params.Add("fields", "id,name,account_id,account_status")
	params.Add("access_token", accessToken)

	url := baseURL + "?" + params.Encode()

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := c.handleResponse(resp)
	if err != nil {
		return nil, err
	}

	var response ResponseAdAccount
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, err
	}

	// A Graph API retorna data vazio (não nulo) quando o usuário não possui
	// contas de anúncios -- isso não é um erro
	if response.Data == nil {
		return []fbdomain.AdAccount{}, nil
	}

	return response.Data, nil
}
