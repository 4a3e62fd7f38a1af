package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/alexnetofit/facedash/infrastructure/cache"
	"github.com/alexnetofit/facedash/infrastructure/integrator/facebook"
	"github.com/alexnetofit/facedash/infrastructure/repository"
	"github.com/alexnetofit/facedash/internal/config"
	"github.com/alexnetofit/facedash/internal/domain"
)

// MetricsSyncConfig representa a configuração do agendador de sincronização de métricas
type MetricsSyncConfig struct {
	CronSchedule        string
	LookbackDays        int
	RequestDelaySeconds int
	RetentionDays       int
	SyncEnabled         bool
}

// MetricsSyncService gerencia o agendamento e execução da sincronização
// diária de métricas da Graph API
type MetricsSyncService struct {
	scheduler           *gocron.Scheduler
	config              MetricsSyncConfig
	userRepo            repository.UserRepository
	accountRepo         repository.AccountRepository
	metricRepo          repository.MetricRepository
	adsService          facebook.AdsIntegrator
	metricsCache        cache.MetricsCache
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewMetricsSyncService cria uma nova instância do serviço de sincronização de métricas
func NewMetricsSyncService(
	userRepo repository.UserRepository,
	accountRepo repository.AccountRepository,
	metricRepo repository.MetricRepository,
	adsService facebook.AdsIntegrator,
	metricsCache cache.MetricsCache,
	appConfig *config.Config,
) *MetricsSyncService {
	syncConfig := MetricsSyncConfig{
		CronSchedule:        appConfig.MetricsSync.CronSchedule,
		LookbackDays:        appConfig.MetricsSync.LookbackDays,
		RequestDelaySeconds: appConfig.MetricsSync.RequestDelaySeconds,
		RetentionDays:       appConfig.MetricsSync.RetentionDays,
		SyncEnabled:         appConfig.MetricsSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"lookback_days":         syncConfig.LookbackDays,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"sync_enabled":          syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de sincronização de métricas carregada")

	return &MetricsSyncService{
		scheduler:    scheduler,
		config:       syncConfig,
		userRepo:     userRepo,
		accountRepo:  accountRepo,
		metricRepo:   metricRepo,
		adsService:   adsService,
		metricsCache: metricsCache,
		syncRunning:  false,
	}
}

// Start inicia o agendador
func (s *MetricsSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de métricas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de métricas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllUserMetrics()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de métricas: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de métricas")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAllUserMetrics sincroniza as métricas de todos os usuários com conta
// do Facebook conectada
func (s *MetricsSyncService) syncAllUserMetrics() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de métricas já em andamento, ignorando")
		return
	}
	startTime := time.Now()
	s.syncRunning = true
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando sincronização de métricas para todos os usuários conectados")

	users, err := s.userRepo.ListUsersWithFacebookToken()
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar usuários para sincronização de métricas")
		return
	}

	if len(users) == 0 {
		logrus.Info("Nenhum usuário com conta do Facebook conectada")
		return
	}

	endDate := time.Now().AddDate(0, 0, -1) // Até ontem: o dia corrente ainda está incompleto
	startDate := endDate.AddDate(0, 0, -(s.config.LookbackDays - 1))

	logrus.WithFields(logrus.Fields{
		"users":      len(users),
		"start_date": startDate.Format(time.DateOnly),
		"end_date":   endDate.Format(time.DateOnly),
	}).Info("Período para sincronização de métricas")

	for _, user := range users {
		s.processUserMetrics(user, startDate, endDate)
	}

	s.pruneOldMetrics()

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"users":    len(users),
		"days":     s.config.LookbackDays,
	}).Info("Sincronização de métricas concluída")

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = time.Now()
	s.syncMutex.Unlock()
}

// processUserMetrics sincroniza as métricas das contas selecionadas de um usuário
func (s *MetricsSyncService) processUserMetrics(user *domain.User, startDate, endDate time.Time) {
	if !user.HasFacebookConnection() {
		logrus.WithField("user_id", user.ID).Warn("Usuário sem token do Facebook. Pulando.")
		return
	}

	accounts, err := s.accountRepo.ListSelectedByUser(user.ID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,
			"error":   err.Error(),
		}).Error("Erro ao listar contas selecionadas do usuário")
		return
	}

	if len(accounts) == 0 {
		logrus.WithField("user_id", user.ID).Info("Usuário sem contas selecionadas para sincronização")
		return
	}

	synced := 0
	for _, account := range accounts {
		if s.processAccountMetrics(user, account, startDate, endDate) {
			synced++
		}

		// Aguardar antes da próxima requisição para evitar sobrecarga na API
		time.Sleep(time.Duration(s.config.RequestDelaySeconds) * time.Second)
	}

	if synced > 0 {
		s.metricsCache.InvalidateUser(context.Background(), user.ID)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"accounts": len(accounts),
		"synced":   synced,
	}).Info("Métricas do usuário sincronizadas")
}

// processAccountMetrics busca e persiste as métricas diárias de uma conta
func (s *MetricsSyncService) processAccountMetrics(user *domain.User, account *domain.AdAccount, startDate, endDate time.Time) bool {
	logrus.WithFields(logrus.Fields{
		"user_id":      user.ID,
		"account_id":   account.ID,
		"external_id":  account.ExternalID,
		"account_name": account.Name,
	}).Info("Obtendo métricas da Graph API para conta")

	records, err := s.adsService.FetchDailyMetrics(account.ExternalID, *user.FacebookAccessToken, startDate, endDate)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":     user.ID,
			"external_id": account.ExternalID,
			"error":       err.Error(),
		}).Error("Erro ao obter métricas da Graph API para conta")
		return false
	}

	if len(records) == 0 {
		logrus.WithFields(logrus.Fields{
			"user_id":     user.ID,
			"external_id": account.ExternalID,
		}).Warn("Nenhuma métrica obtida para conta no período")
		return false
	}

	saved := 0
	for _, record := range records {
		record.ID = uuid.NewString()
		record.UserID = user.ID
		record.AdAccountID = account.ExternalID

		if err := s.metricRepo.SaveOrUpdate(record); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id":     user.ID,
				"external_id": account.ExternalID,
				"date":        record.Date,
				"error":       err.Error(),
			}).Error("Erro ao salvar métrica no banco de dados")
			continue
		}
		saved++
	}

	logrus.WithFields(logrus.Fields{
		"user_id":     user.ID,
		"external_id": account.ExternalID,
		"saved":       saved,
	}).Info("Métricas salvas com sucesso para conta")

	return saved > 0
}

// pruneOldMetrics remove métricas fora da janela de retenção
func (s *MetricsSyncService) pruneOldMetrics() {
	if s.config.RetentionDays <= 0 {
		return
	}

	removed, err := s.metricRepo.DeleteOlderThan(s.config.RetentionDays)
	if err != nil {
		logrus.WithError(err).Error("Erro ao remover métricas antigas")
		return
	}

	if removed > 0 {
		logrus.WithFields(logrus.Fields{
			"removed":        removed,
			"retention_days": s.config.RetentionDays,
		}).Info("Métricas antigas removidas")
	}
}

// TriggerManualSync inicia manualmente uma sincronização de métricas
func (s *MetricsSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de métricas já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de métricas")
	go s.syncAllUserMetrics()
}

// GetStatus retorna o status atual do agendador. Os timestamps são escritos
// pela goroutine de sincronização, por isso a leitura é feita sob o mutex.
func (s *MetricsSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	startedAt := s.lastSyncStartedAt
	completedAt := s.lastSyncCompletedAt
	s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"sync_request_delay_s":   s.config.RequestDelaySeconds,
		"last_sync_started_at":   startedAt,
		"last_sync_completed_at": completedAt,
	}
}
