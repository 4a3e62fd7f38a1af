package fbclient

import (
	"encoding/json"
	"fmt"
	"net/url"

	fbdomain "github.com/alexnetofit/facedash/infrastructure/integrator/facebook/domain"
	"github.com/alexnetofit/facedash/pkg/utils"
	"github.com/sirupsen/logrus"
)

// DebugToken verifica um token de usuário junto à Graph API usando o token
// de aplicativo (app_id|app_secret)
func (c *FacebookClient) DebugToken(inputToken string) (*fbdomain.TokenDebugData, error) {
	params := url.Values{}
	params.Add("input_token", inputToken)
	params.Add("access_token", c.Cfg.Facebook.AppToken())

	url := fmt.Sprintf("%s/debug_token?%s", c.Cfg.Facebook.BaseURL, params.Encode())

	body, err := utils.MakeRequest(url)
	if err != nil {
		logrus.WithError(err).Error("Erro ao verificar token junto à Graph API")
		return nil, err
	}

	var response fbdomain.TokenDebugResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, err
	}

	return &response.Data, nil
}

// GetMe obtém o id e o email do usuário dono do token
func (c *FacebookClient) GetMe(accessToken string) (*fbdomain.FacebookUser, error) {
	params := url.Values{}
	params.Add("fields", "id,email")
	params.Add("access_token", accessToken)

	url := fmt.Sprintf("%s/me?%s", c.Cfg.Facebook.BaseURL, params.Encode())

	body, err := utils.MakeRequest(url)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar usuário na Graph API")
		return nil, err
	}

	var user fbdomain.FacebookUser
	if err := json.Unmarshal(body, &user); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, err
	}

	if user.ID == "" {
		return nil, fmt.Errorf("não foi possível obter informações do usuário")
	}

	return &user, nil
}
