package cache

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/alexnetofit/facedash/internal/config"
	"github.com/alexnetofit/facedash/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// TTL do cache de métricas agregadas. Uma hora é suficiente porque os
	// dados só mudam na sincronização diária ou em uma importação manual.
	metricsTTL = time.Hour
)

// MetricsCache guarda respostas agregadas do dashboard no Redis. O cache é
// consultivo: qualquer falha de leitura ou escrita degrada para o banco, nunca
// para erro.
type MetricsCache interface {
	GetDashboard(ctx context.Context, userID, windowDays int) (*domain.DashboardMetricsResponse, bool)
	SetDashboard(ctx context.Context, userID, windowDays int, response *domain.DashboardMetricsResponse)
	InvalidateUser(ctx context.Context, userID int)
	Close() error
}

type redisMetricsCache struct {
	client *redis.Client
}

// NewRedisMetricsCache conecta ao Redis e retorna o cache de métricas. Falha
// de conexão é erro do chamador decidir: em geral o servidor sobe sem cache.
func NewRedisMetricsCache(ctx context.Context, cfg config.Redis) (MetricsCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("erro ao conectar no Redis: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"addr": cfg.Addr,
		"db":   cfg.DB,
	}).Info("Conectado ao Redis")

	return &redisMetricsCache{client: client}, nil
}

func dashboardKey(userID, windowDays int) string {
	return fmt.Sprintf("facedash:dashboard:%d:%d", userID, windowDays)
}

func (c *redisMetricsCache) GetDashboard(ctx context.Context, userID, windowDays int) (*domain.DashboardMetricsResponse, bool) {
	payload, err := c.client.Get(ctx, dashboardKey(userID, windowDays)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logrus.WithError(err).Warn("cache: erro ao ler métricas do Redis")
		return nil, false
	}

	var response domain.DashboardMetricsResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		logrus.WithError(err).Warn("cache: payload inválido no Redis, ignorando")
		return nil, false
	}

	return &response, true
}

func (c *redisMetricsCache) SetDashboard(ctx context.Context, userID, windowDays int, response *domain.DashboardMetricsResponse) {
	payload, err := json.Marshal(response)
	if err != nil {
		logrus.WithError(err).Warn("cache: erro ao serializar métricas")
		return
	}

	if err := c.client.Set(ctx, dashboardKey(userID, windowDays), payload, metricsTTL).Err(); err != nil {
		logrus.WithError(err).Warn("cache: erro ao gravar métricas no Redis")
	}
}

// InvalidateUser remove as entradas de dashboard do usuário. Chamado após
// importação de contas, alteração de seleção e sincronização de métricas.
func (c *redisMetricsCache) InvalidateUser(ctx context.Context, userID int) {
	pattern := fmt.Sprintf("facedash:dashboard:%d:*", userID)

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			logrus.WithError(err).Warn("cache: erro ao invalidar chave")
		}
	}

	if err := iter.Err(); err != nil {
		logrus.WithError(err).Warn("cache: erro ao varrer chaves para invalidação")
	}
}

func (c *redisMetricsCache) Close() error {
	return c.client.Close()
}

// NoopCache é usado quando o Redis está desabilitado ou indisponível -- todas
// as leituras falham e as escritas são descartadas.
type NoopCache struct{}

func NewNoopCache() MetricsCache {
	return &NoopCache{}
}

func (NoopCache) GetDashboard(context.Context, int, int) (*domain.DashboardMetricsResponse, bool) {
	return nil, false
}

func (NoopCache) SetDashboard(context.Context, int, int, *domain.DashboardMetricsResponse) {}

func (NoopCache) InvalidateUser(context.Context, int) {}

func (NoopCache) Close() error { return nil }
