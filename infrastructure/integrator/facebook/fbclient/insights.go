package fbclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	fbdomain "github.com/alexnetofit/facedash/infrastructure/integrator/facebook/domain"
	"github.com/sirupsen/logrus"
)

type ResponseInsights struct {
	Data []fbdomain.InsightRow `json:"data"`
}

// GetDailyInsights busca os insights diários (time_increment=1) de uma conta
// no intervalo [startDate, endDate], inclusivo
func (c *FacebookClient) GetDailyInsights(accountExternalID, accessToken string, startDate, endDate time.Time) ([]fbdomain.InsightRow, error) {
	baseURL := fmt.Sprintf("%s/act_%s/insights", c.Cfg.Facebook.URL, accountExternalID)

	timeRange := fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}", startDate.Format(time.DateOnly), endDate.Format(time.DateOnly))

	params := url.Values{}
	params.Add("fields", "account_id,account_name,spend,impressions,clicks,cpm,cpc,ctr,actions")
	params.Add("level", "account")
	params.Add("time_increment", "1")
	params.Add("time_range", timeRange)
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

	var response ResponseInsights
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, err
	}

	// Sem dados no período não é erro -- a conta pode não ter veiculado anúncios
	if response.Data == nil {
		return []fbdomain.InsightRow{}, nil
	}

	return response.Data, nil
}
