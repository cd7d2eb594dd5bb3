package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env         string `mapstructure:"ENV"`
	Port        string `mapstructure:"PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	CORSAllowed string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	WebhookVerifyToken string `mapstructure:"WEBHOOK_VERIFY_TOKEN"`
	AllowedSender      string `mapstructure:"ALLOWED_SENDER"`

	WhatsAppAccessToken   string `mapstructure:"WHATSAPP_ACCESS_TOKEN"`
	WhatsAppPhoneNumberID string `mapstructure:"WHATSAPP_PHONE_NUMBER_ID"`

	OpenAIAPIKey  string `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL string `mapstructure:"OPENAI_BASE_URL"`
	OpenAIModel   string `mapstructure:"OPENAI_MODEL"`

	ProvidersServiceURL string  `mapstructure:"PROVIDERS_SERVICE_URL"`
	APIGatewayURL       string  `mapstructure:"API_GATEWAY_URL"`
	GeocodingURL        string  `mapstructure:"GEOCODING_URL"`
	MatchRadiusKm       float64 `mapstructure:"MATCH_RADIUS_KM"`

	FrontendURL  string `mapstructure:"FRONTEND_URL"`
	TermsVersion string `mapstructure:"TERMS_VERSION"`

	CategorySynonymsPath string `mapstructure:"CATEGORY_SYNONYMS_PATH"`

	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	SessionTTL    time.Duration `mapstructure:"SESSION_TTL"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("MATCH_RADIUS_KM", 40.0)
	v.SetDefault("TERMS_VERSION", "2025-01")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("REDIS_DB", 0)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ProvidersBaseURL resolves the provider-directory base URL. A directly
// configured service URL takes precedence over the gateway route.
func (c Config) ProvidersBaseURL() string {
	if c.ProvidersServiceURL != "" {
		return c.ProvidersServiceURL
	}
	return c.APIGatewayURL
}
