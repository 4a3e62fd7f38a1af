package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alexnetofit/facedash/infrastructure/cache"
	"github.com/alexnetofit/facedash/infrastructure/database/postgres"
	"github.com/alexnetofit/facedash/infrastructure/integrator/facebook"
	"github.com/alexnetofit/facedash/infrastructure/integrator/facebook/fbclient"
	"github.com/alexnetofit/facedash/infrastructure/repository"
	"github.com/alexnetofit/facedash/internal/api"
	"github.com/alexnetofit/facedash/internal/config"
	"github.com/alexnetofit/facedash/internal/scheduler"
	"github.com/alexnetofit/facedash/internal/usecases/account"
	"github.com/alexnetofit/facedash/internal/usecases/authenticating"
	"github.com/alexnetofit/facedash/internal/usecases/reporting"
	"github.com/alexnetofit/facedash/internal/usecases/seeding"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	accountRepo := repository.NewAccountRepository(pgConn)
	metricRepo := repository.NewMetricRepository(pgConn)

	facebookClient := fbclient.NewClient(cfg)
	facebookIntegrator := facebook.New(cfg, facebookClient)

	metricsCache := newMetricsCache(ctx, cfg)
	defer metricsCache.Close()

	authenticator := authenticating.NewService(userRepo, facebookIntegrator, cfg)
	accountService := account.NewService(accountRepo, facebookIntegrator, metricsCache)

	// Inicializa o serviço de agregação com cache e seeder de demonstração
	reportingService := reporting.NewService(accountRepo, metricRepo).WithCache(metricsCache)
	if cfg.DemoSeed.Enabled {
		reportingService = reportingService.WithSeeder(seeding.NewService(metricRepo))
	}

	// Inicializa o agendador de sincronização diária de métricas
	metricsSyncService := scheduler.NewMetricsSyncService(
		userRepo,
		accountRepo,
		metricRepo,
		facebookIntegrator,
		metricsCache,
		cfg,
	)

	if err := metricsSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de métricas")
	} else {
		logrus.Info("Agendador de sincronização de métricas iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		reportingService,
		accountService,
		authenticator,
		metricsSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// newMetricsCache conecta ao Redis quando habilitado; qualquer falha degrada
// para o cache nulo, o servidor nunca deixa de subir por causa do cache
func newMetricsCache(ctx context.Context, cfg *config.Config) cache.MetricsCache {
	if !cfg.Redis.Enabled {
		logrus.Info("Cache Redis desabilitado por configuração")
		return cache.NewNoopCache()
	}

	metricsCache, err := cache.NewRedisMetricsCache(ctx, cfg.Redis)
	if err != nil {
		logrus.WithError(err).Warn("Erro ao conectar no Redis, seguindo sem cache")
		return cache.NewNoopCache()
	}

	return metricsCache
}
