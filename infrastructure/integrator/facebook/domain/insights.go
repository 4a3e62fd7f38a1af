package fbdomain

// Action representa uma ação (conversão, clique em link etc.) dentro de um
// insight da Graph API
type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// InsightRow representa uma linha de insights diários retornada por
// /act_<id>/insights com time_increment=1. Os valores numéricos chegam como
// strings na Graph API.
type InsightRow struct {
	AccountID   string   `json:"account_id"`
	AccountName string   `json:"account_name"`
	Spend       string   `json:"spend"`
	Impressions string   `json:"impressions"`
	Clicks      string   `json:"clicks"`
	CPM         string   `json:"cpm"`
	CPC         string   `json:"cpc"`
	CTR         string   `json:"ctr"` // percentual, ex: "2.34"
	Actions     []Action `json:"actions"`
	DateStart   string   `json:"date_start"`
	DateStop    string   `json:"date_stop"`
}

// Tipos de ação contabilizados como conversão
var ConversionActionTypes = map[string]bool{
	"offsite_conversion":                   true,
	"offsite_conversion.fb_pixel_purchase": true,
	"purchase":                             true,
	"lead":                                 true,
}
