package facebook

import (
	"testing"

	"github.com/stretchr/testify/assert"

	fbdomain "github.com/alexnetofit/facedash/infrastructure/integrator/facebook/domain"
)

func TestFactoryMetricRecord(t *testing.T) {
	tests := []struct {
		name     string
		row      fbdomain.InsightRow
		validate func(t *testing.T, spend, cpm, cpc, ctr float64, conversions int, date string)
	}{
		{
			name: "Deve converter os campos numéricos e normalizar o CTR para fração",
			row: fbdomain.InsightRow{
				DateStart: "2024-01-15",
				Spend:     "123.45",
				CPM:       "11.20",
				CPC:       "0.87",
				CTR:       "2.5", // percentual na Graph API
				Actions: []fbdomain.Action{
					{ActionType: "purchase", Value: "3"},
					{ActionType: "lead", Value: "2"},
				},
			},
			validate: func(t *testing.T, spend, cpm, cpc, ctr float64, conversions int, date string) {
				assert.Equal(t, "2024-01-15", date)
				assert.InDelta(t, 123.45, spend, 1e-9)
				assert.InDelta(t, 11.20, cpm, 1e-9)
				assert.InDelta(t, 0.87, cpc, 1e-9)
				assert.InDelta(t, 0.025, ctr, 1e-9)
				assert.Equal(t, 5, conversions)
			},
		},
		{
			name: "Campos vazios viram zero",
			row: fbdomain.InsightRow{
				DateStart: "2024-01-16",
			},
			validate: func(t *testing.T, spend, cpm, cpc, ctr float64, conversions int, date string) {
				assert.Zero(t, spend)
				assert.Zero(t, cpm)
				assert.Zero(t, cpc)
				assert.Zero(t, ctr)
				assert.Zero(t, conversions)
			},
		},
		{
			name: "Valores não numéricos viram zero sem falhar",
			row: fbdomain.InsightRow{
				DateStart: "2024-01-17",
				Spend:     "nao-e-numero",
				CTR:       "x",
			},
			validate: func(t *testing.T, spend, cpm, cpc, ctr float64, conversions int, date string) {
				assert.Zero(t, spend)
				assert.Zero(t, ctr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := factoryMetricRecord(tt.row)
			tt.validate(t, record.Spend, record.CPM, record.CPC, record.CTR, record.Conversions, record.Date)
		})
	}
}

func TestExtractConversions(t *testing.T) {
	tests := []struct {
		name     string
		actions  []fbdomain.Action
		expected int
	}{
		{
			name:     "Sem ações deve retornar zero",
			actions:  nil,
			expected: 0,
		},
		{
			name: "Deve somar apenas as ações contabilizadas como conversão",
			actions: []fbdomain.Action{
				{ActionType: "purchase", Value: "3"},
				{ActionType: "offsite_conversion", Value: "2"},
				{ActionType: "link_click", Value: "100"}, // não é conversão
				{ActionType: "lead", Value: "1"},
			},
			expected: 6,
		},
		{
			name: "Valor não numérico é ignorado",
			actions: []fbdomain.Action{
				{ActionType: "purchase", Value: "abc"},
				{ActionType: "lead", Value: "2"},
			},
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractConversions(tt.actions))
		})
	}
}
