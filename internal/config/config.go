package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Facebook    Facebook    `mapstructure:",squash"`
	Redis       Redis       `mapstructure:",squash"`
	MetricsSync MetricsSync `mapstructure:",squash"`
	DemoSeed    DemoSeed    `mapstructure:",squash"`
	SecretKey   string      `mapstructure:"secret_key"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Facebook struct {
	BaseURL   string `mapstructure:"facebook_base_url"`
	URL       string `mapstructure:"-"`
	Version   string `mapstructure:"facebook_version"`
	AppID     string `mapstructure:"facebook_app_id"`
	AppSecret string `mapstructure:"facebook_app_secret"`
}

// AppToken monta o token de aplicativo usado na verificação de tokens de
// usuário via debug_token
func (f Facebook) AppToken() string {
	return fmt.Sprintf("%s|%s", f.AppID, f.AppSecret)
}

type Redis struct {
	Enabled  bool   `mapstructure:"redis_enabled"`
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

type MetricsSync struct {
	CronSchedule        string `mapstructure:"metrics_sync_cron"`
	LookbackDays        int    `mapstructure:"metrics_sync_lookback_days"`
	RequestDelaySeconds int    `mapstructure:"metrics_sync_request_delay_seconds"`
	RetentionDays       int    `mapstructure:"metrics_sync_retention_days"`
	Enabled             bool   `mapstructure:"metrics_sync_enabled"`
}

type DemoSeed struct {
	Enabled bool `mapstructure:"demo_seed_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/facedash")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("FACEBOOK_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("FACEBOOK_VERSION", "v19.0")
	viper.SetDefault("FACEBOOK_APP_ID", "your_app_id")
	viper.SetDefault("FACEBOOK_APP_SECRET", "your_app_secret")

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	// Defaults para sincronização diária de métricas
	viper.SetDefault("METRICS_SYNC_CRON", "0 3 * * *")        // Todos os dias às 3h da manhã
	viper.SetDefault("METRICS_SYNC_LOOKBACK_DAYS", 7)         // Janela de 7 dias
	viper.SetDefault("METRICS_SYNC_REQUEST_DELAY_SECONDS", 2) // 2 segundos entre requisições
	viper.SetDefault("METRICS_SYNC_RETENTION_DAYS", 90)       // 0 desativa a limpeza
	viper.SetDefault("METRICS_SYNC_ENABLED", false)

	viper.SetDefault("DEMO_SEED_ENABLED", true) // Dados de demonstração quando a base está vazia

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Facebook.URL = fmt.Sprintf("%s/%s", config.Facebook.BaseURL, config.Facebook.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
