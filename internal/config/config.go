package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Env            string   `mapstructure:"env"`
		Port           string   `mapstructure:"port"`
		PublicURL      string   `mapstructure:"public_url"`
		AllowedOrigins []string `mapstructure:"allowed_origins"`
		TrustedProxies []string `mapstructure:"trusted_proxies"`
		MaxUploadBytes int64    `mapstructure:"max_upload_bytes"`
	} `mapstructure:"app"`
	DB struct {
		Driver string `mapstructure:"driver"`
		DSN    string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string        `mapstructure:"addr"`
		Password string        `mapstructure:"password"`
		CacheTTL time.Duration `mapstructure:"cache_ttl"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers      []string `mapstructure:"brokers"`
		MediaTopic   string   `mapstructure:"media_topic"`
		MessageTopic string   `mapstructure:"message_topic"`
		GroupID      string   `mapstructure:"group_id"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
	} `mapstructure:"auth"`
	RateLimit struct {
		Messages int           `mapstructure:"messages"`
		Window   time.Duration `mapstructure:"window"`
	} `mapstructure:"rate_limit"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	} `mapstructure:"cloudinary"`
	Jaeger struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"jaeger"`
	Account AccountDefaults `mapstructure:"account"`
	Owner   struct {
		Name     string `mapstructure:"name"`
		Email    string `mapstructure:"email"`
		Password string `mapstructure:"password"`
	} `mapstructure:"owner"`
}

// AccountDefaults seed the account singleton the first time it is read.
type AccountDefaults struct {
	Name    string `mapstructure:"default_name"`
	Email   string `mapstructure:"default_email"`
	Phone   string `mapstructure:"default_phone"`
	Summary string `mapstructure:"default_summary"`
	About   string `mapstructure:"default_about"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "5000")
	v.SetDefault("app.public_url", "http://localhost:3000")
	v.SetDefault("app.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("app.max_upload_bytes", 5<<20)
	v.SetDefault("db.driver", "postgres")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.cache_ttl", 5*time.Minute)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.media_topic", "media.events")
	v.SetDefault("kafka.message_topic", "message.events")
	v.SetDefault("kafka.group_id", "portfolio-worker")
	v.SetDefault("auth.token_lifespan", 720*time.Hour)
	v.SetDefault("rate_limit.messages", 5)
	v.SetDefault("rate_limit.window", 10*time.Minute)
	v.SetDefault("account.default_name", "Your Name")
	v.SetDefault("account.default_email", "your.email@example.com")
	v.SetDefault("account.default_phone", "+1 (555) 123-4567")
	v.SetDefault("account.default_summary", "Full-stack developer building for the web.")
	v.SetDefault("account.default_about", "Tell visitors about yourself here.")
	v.SetDefault("owner.name", "Owner")
}

// LoadConfig reads config.yaml from path (when present), then .env, then the
// environment. Later sources win.
func LoadConfig(path string) (cfg Config, err error) {
	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read env only. Error: %v", err)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("app.env", "APP_ENV")
	_ = v.BindEnv("app.port", "APP_PORT", "PORT")
	_ = v.BindEnv("app.public_url", "PUBLIC_URL")
	_ = v.BindEnv("app.allowed_origins", "ALLOWED_ORIGINS")
	_ = v.BindEnv("app.trusted_proxies", "TRUSTED_PROXIES")
	_ = v.BindEnv("app.max_upload_bytes", "MAX_UPLOAD_BYTES")
	_ = v.BindEnv("db.driver", "DB_DRIVER")
	_ = v.BindEnv("db.dsn", "DB_DSN")
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("redis.cache_ttl", "REDIS_CACHE_TTL")
	_ = v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	_ = v.BindEnv("kafka.media_topic", "KAFKA_MEDIA_TOPIC")
	_ = v.BindEnv("kafka.message_topic", "KAFKA_MESSAGE_TOPIC")
	_ = v.BindEnv("kafka.group_id", "KAFKA_GROUP_ID")
	_ = v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	_ = v.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")
	_ = v.BindEnv("rate_limit.messages", "RATE_LIMIT_MESSAGES")
	_ = v.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")

	_ = v.BindEnv("cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	_ = v.BindEnv("cloudinary.api_key", "CLOUDINARY_API_KEY")
	_ = v.BindEnv("cloudinary.api_secret", "CLOUDINARY_API_SECRET")

	_ = v.BindEnv("jaeger.otlp_endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")

	_ = v.BindEnv("account.default_name", "ACCOUNT_DEFAULT_NAME")
	_ = v.BindEnv("account.default_email", "ACCOUNT_DEFAULT_EMAIL")
	_ = v.BindEnv("account.default_phone", "ACCOUNT_DEFAULT_PHONE")
	_ = v.BindEnv("account.default_summary", "ACCOUNT_DEFAULT_SUMMARY")
	_ = v.BindEnv("account.default_about", "ACCOUNT_DEFAULT_ABOUT")

	_ = v.BindEnv("owner.name", "OWNER_NAME")
	_ = v.BindEnv("owner.email", "OWNER_EMAIL")
	_ = v.BindEnv("owner.password", "OWNER_PASSWORD")

	err = v.Unmarshal(&cfg)
	return
}
