package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Sessions
	SessionSecret string
	SessionCookie string

	// External job search (Adzuna)
	AdzunaAppID   string
	AdzunaAppKey  string
	AdzunaBaseURL string

	// Chat assistant
	OpenAIAPIKey string
	OpenAIAPIURL string
	OpenAIModel  string
	AITimeout    time.Duration

	// Messaging (optional)
	RabbitMQURL string

	// Server
	Port        string
	CORSOrigins string
	PublicDir   string
}

// Load reads configuration from the environment. Secrets have no defaults;
// callers must refuse to start without the ones they need.
func Load() *Config {
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_NAME", "intrack")
	viper.SetDefault("DB_SSLMODE", "disable")

	viper.SetDefault("SESSION_COOKIE", "intrack_session")

	viper.SetDefault("ADZUNA_API_URL", "https://api.adzuna.com/v1/api")
	viper.SetDefault("OPENAI_API_URL", "https://api.openai.com/v1/chat/completions")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	viper.SetDefault("AI_TIMEOUT", "60s")

	viper.SetDefault("PORT", "5000")
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("PUBLIC_DIR", "./public")

	viper.AutomaticEnv()

	return &Config{
		DBHost:     viper.GetString("DB_HOST"),
		DBPort:     viper.GetString("DB_PORT"),
		DBUser:     viper.GetString("DB_USER"),
		DBPassword: viper.GetString("DB_PASSWORD"),
		DBName:     viper.GetString("DB_NAME"),
		DBSSLMode:  viper.GetString("DB_SSLMODE"),

		SessionSecret: viper.GetString("SESSION_SECRET"),
		SessionCookie: viper.GetString("SESSION_COOKIE"),

		AdzunaAppID:   viper.GetString("ADZUNA_APP_ID"),
		AdzunaAppKey:  viper.GetString("ADZUNA_APP_KEY"),
		AdzunaBaseURL: viper.GetString("ADZUNA_API_URL"),

		OpenAIAPIKey: viper.GetString("OPENAI_API_KEY"),
		OpenAIAPIURL: viper.GetString("OPENAI_API_URL"),
		OpenAIModel:  viper.GetString("OPENAI_MODEL"),
		AITimeout:    parseDuration(viper.GetString("AI_TIMEOUT")),

		RabbitMQURL: viper.GetString("RABBITMQ_URL"),

		Port:        viper.GetString("PORT"),
		CORSOrigins: viper.GetString("CORS_ORIGINS"),
		PublicDir:   viper.GetString("PUBLIC_DIR"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 60 * time.Second
	}
	return d
}
