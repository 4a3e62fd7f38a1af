package fbclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	fbdomain "github.com/alexnetofit/facedash/infrastructure/integrator/facebook/domain"
	"github.com/alexnetofit/facedash/internal/config"
)

type Client interface {
	ListAdAccounts(accessToken string) ([]fbdomain.AdAccount, error)
	GetDailyInsights(accountExternalID, accessToken string, startDate, endDate time.Time) ([]fbdomain.InsightRow, error)
	DebugToken(inputToken string) (*fbdomain.TokenDebugData, error)
	GetMe(accessToken string) (*fbdomain.FacebookUser, error)
}

type FacebookClient struct {
	Cfg *config.Config
}

func NewClient(cfg *config.Config) Client {
	return &FacebookClient{
		Cfg: cfg,
	}
}

// handleResponse lê o corpo da resposta e verifica o envelope de erro da
// Graph API antes de entregar os bytes ao chamador
func (c *FacebookClient) handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta da Graph API: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp fbdomain.ErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
			if errResp.IsTokenExpired() {
				return nil, fmt.Errorf("token do Facebook expirado: %s", errResp.Error.Message)
			}
			return nil, fmt.Errorf("erro da Graph API (%d): %s", errResp.Error.Code, errResp.Error.Message)
		}
		return nil, fmt.Errorf("erro na requisição à Graph API: status %s", resp.Status)
	}

	return body, nil
}
