package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	t.Run("Data ISO válida", func(t *testing.T) {
		date, err := ParseDate("2024-01-15")

		assert.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), *date)
	})

	t.Run("Formato inválido deve retornar erro", func(t *testing.T) {
		date, err := ParseDate("15/01/2024")

		assert.Error(t, err)
		assert.Nil(t, date)
	})

	t.Run("String vazia retorna zero value", func(t *testing.T) {
		date, err := ParseDate("")

		assert.NoError(t, err)
		assert.True(t, date.IsZero())
	})
}

func TestDateRange(t *testing.T) {
	t.Run("Intervalo de uma semana gera sete datas", func(t *testing.T) {
		start := time.Date(2024, 1, 9, 10, 30, 0, 0, time.UTC)
		end := time.Date(2024, 1, 15, 5, 0, 0, 0, time.UTC)

		dates := DateRange(start, end)

		assert.Len(t, dates, 7)
		assert.Equal(t, time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), dates[0])
		assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), dates[6])
	})

	t.Run("Início igual ao fim gera uma única data", func(t *testing.T) {
		day := time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC)

		dates := DateRange(day, day)

		assert.Len(t, dates, 1)
	})

	t.Run("Início após o fim gera intervalo vazio", func(t *testing.T) {
		start := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

		dates := DateRange(start, end)

		assert.Empty(t, dates)
	})

	t.Run("Intervalo que cruza a virada do mês", func(t *testing.T) {
		start := time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)

		dates := DateRange(start, end)

		assert.Len(t, dates, 4)
		assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), dates[2])
	})
}
