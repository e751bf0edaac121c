package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Judge    JudgeConfig
	Chatbot  ChatbotConfig
	Mail     MailConfig
	Queue    QueueConfig
	Storage  StorageConfig
	CORS     CORSConfig
	Upload   UploadConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	WSPort      string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type JudgeConfig struct {
	BaseURL      string
	RapidAPIHost string
	RapidAPIKey  string
	Timeout      time.Duration
}

type ChatbotConfig struct {
	Provider     string
	BaseURL      string
	GeminiAPIKey string
	GeminiModel  string
	Timeout      time.Duration
}

type MailConfig struct {
	SMTPHost     string
	SMTPPort     string
	Username     string
	Password     string
	From         string
	AdminAddress string
}

type QueueConfig struct {
	URL      string
	Exchange string
}

type StorageConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type UploadConfig struct {
	MaxResumeBytes int
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads configuration from the process environment, after merging an optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()
	return load(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("WS_PORT", "8081")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_CONNECT_TIMEOUT", "5s")
	v.SetDefault("DB_POOL_MAX_CONNS", 10)
	v.SetDefault("JWT_ACCESS_EXPIRES_IN", "24h")
	v.SetDefault("JWT_REFRESH_EXPIRES_IN", "720h")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_TTL", "600s")
	v.SetDefault("JUDGE_BASE_URL", "https://judge0-ce.p.rapidapi.com")
	v.SetDefault("JUDGE_RAPIDAPI_HOST", "judge0-ce.p.rapidapi.com")
	v.SetDefault("JUDGE_TIMEOUT", "30s")
	v.SetDefault("CHATBOT_PROVIDER", "http")
	v.SetDefault("CHATBOT_BASE_URL", "http://localhost:5000")
	v.SetDefault("CHATBOT_TIMEOUT", "60s")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("SMTP_PORT", "587")
	v.SetDefault("AMQP_EXCHANGE", "placement_events")
	v.SetDefault("S3_REGION", "auto")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5500,http://localhost:3000")
	v.SetDefault("UPLOAD_MAX_RESUME_BYTES", 5<<20)

	return v
}

func load(v *viper.Viper) (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, key)
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		WSPort:      opt("WS_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:                opt("DB_HOST"),
		DBPort:                opt("DB_PORT"),
		DBName:                opt("DB_NAME"),
		DBUser:                opt("DB_USER"),
		DBPassword:            v.GetString("DB_PASSWORD"),
		DBSSLMode:             opt("DB_SSL_MODE"),
		ConnectTimeout:        v.GetDuration("DB_CONNECT_TIMEOUT"),
		PoolMaxConns:          v.GetInt32("DB_POOL_MAX_CONNS"),
		PoolMinConns:          v.GetInt32("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   v.GetDuration("DB_POOL_MAX_CONN_LIFETIME"),
		PoolMaxConnIdleTime:   v.GetDuration("DB_POOL_MAX_CONN_IDLE_TIME"),
		PoolHealthCheckPeriod: v.GetDuration("DB_POOL_HEALTH_CHECK_PERIOD"),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  v.GetDuration("JWT_ACCESS_EXPIRES_IN"),
		RefreshExpiresIn: v.GetDuration("JWT_REFRESH_EXPIRES_IN"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      v.GetDuration("REDIS_TTL"),
	}

	cfg.Judge = JudgeConfig{
		BaseURL:      opt("JUDGE_BASE_URL"),
		RapidAPIHost: opt("JUDGE_RAPIDAPI_HOST"),
		RapidAPIKey:  opt("JUDGE0_API_KEY"),
		Timeout:      v.GetDuration("JUDGE_TIMEOUT"),
	}

	cfg.Chatbot = ChatbotConfig{
		Provider:     strings.ToLower(opt("CHATBOT_PROVIDER")),
		BaseURL:      opt("CHATBOT_BASE_URL"),
		GeminiAPIKey: opt("GEMINI_API_KEY"),
		GeminiModel:  opt("GEMINI_MODEL"),
		Timeout:      v.GetDuration("CHATBOT_TIMEOUT"),
	}

	cfg.Mail = MailConfig{
		SMTPHost:     opt("SMTP_HOST"),
		SMTPPort:     opt("SMTP_PORT"),
		Username:     opt("EMAIL_USER"),
		Password:     v.GetString("EMAIL_APP_PASSWORD"),
		From:         opt("EMAIL_FROM"),
		AdminAddress: opt("ADMIN_NOTIFY_EMAIL"),
	}
	if cfg.Mail.From == "" {
		cfg.Mail.From = cfg.Mail.Username
	}

	cfg.Queue = QueueConfig{
		URL:      opt("RABBITMQ_URL"),
		Exchange: opt("AMQP_EXCHANGE"),
	}

	cfg.Storage = StorageConfig{
		Endpoint:  opt("S3_ENDPOINT"),
		Region:    opt("S3_REGION"),
		AccessKey: opt("S3_ACCESS_KEY"),
		SecretKey: v.GetString("S3_SECRET_KEY"),
		Bucket:    opt("S3_BUCKET"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitList(opt("CORS_ALLOWED_ORIGINS"))}
	cfg.Upload = UploadConfig{MaxResumeBytes: v.GetInt("UPLOAD_MAX_RESUME_BYTES")}

	if cfg.Chatbot.Provider == "gemini" && cfg.Chatbot.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func splitList(raw string) []string {
	out := make([]string, 0)
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (c StorageConfig) Enabled() bool {
	return c.Bucket != "" && c.AccessKey != "" && c.SecretKey != ""
}

func (c MailConfig) Enabled() bool {
	return c.SMTPHost != "" && c.AdminAddress != ""
}

func (c QueueConfig) Enabled() bool {
	return c.URL != ""
}
