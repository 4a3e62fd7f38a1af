package domain

import (
	"time"
)

// MetricRecord representa uma linha de métricas diárias de uma conta de anúncios.
// Existe no máximo uma linha por (usuário, conta, data) -- a restrição é
// garantida pela tabela, não pelo agregador.
type MetricRecord struct {
	ID          string    `json:"id"`
	UserID      int       `json:"user_id"`
	AdAccountID string    `json:"ad_account_id"`
	Date        string    `json:"data"` // data ISO (YYYY-MM-DD), sem componente de hora
	Spend       float64   `json:"spend"`
	CPM         float64   `json:"cpm"`
	CPC         float64   `json:"cpc"`
	CTR         float64   `json:"ctr"` // fração em [0,1]
	Conversions int       `json:"conversions"`
	CreatedAt   time.Time `json:"created_at"`
}

// WeeklySummary é o rollup semanal derivado -- nunca persistido
type WeeklySummary struct {
	Spend       float64 `json:"spend"`
	CPM         float64 `json:"cpm"`
	CPC         float64 `json:"cpc"`
	CTR         float64 `json:"ctr"`
	Conversions int     `json:"conversions"`
}

// ChartDatasets contém os valores por data, na mesma ordem de Labels
type ChartDatasets struct {
	Spend       []float64 `json:"spend"`
	CPM         []float64 `json:"cpm"`
	CPC         []float64 `json:"cpc"`
	CTR         []float64 `json:"ctr"`
	Conversions []int     `json:"conversions"`
}

// ChartSeries é a série temporal derivada para os gráficos do dashboard.
// Labels vem ordenado de forma ascendente (ordem lexicográfica == cronológica
// para datas ISO).
type ChartSeries struct {
	Labels   []string      `json:"labels"`
	Datasets ChartDatasets `json:"datasets"`
}

// DashboardMetricsResponse é a resposta completa do endpoint de métricas
type DashboardMetricsResponse struct {
	Daily  []*MetricRecord `json:"daily"`
	Weekly WeeklySummary   `json:"weekly"`
	Chart  *ChartSeries    `json:"chart"`
}
