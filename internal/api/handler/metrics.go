package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/alexnetofit/facedash/internal/domain"
	"github.com/alexnetofit/facedash/internal/usecases/reporting"
	"github.com/alexnetofit/facedash/pkg/apiErrors"
	"github.com/alexnetofit/facedash/pkg/middleware"
)

// GetDashboardMetrics retorna as métricas agregadas do dashboard para o
// usuário logado: linhas diárias, resumo da janela e série temporal
func GetDashboardMetrics(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		windowDays := 7
		if raw := r.URL.Query().Get("window_days"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro window_days inválido", nil)
				return
			}
			windowDays = parsed
		}

		response, err := service.GetDashboardMetrics(r.Context(), userClaims.UserID, windowDays)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userClaims.UserID,
				"error":   err.Error(),
			}).Error("Erro ao montar métricas do dashboard")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao obter métricas do dashboard", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}
