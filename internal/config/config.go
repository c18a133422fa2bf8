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
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
	} `mapstructure:"auth"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	} `mapstructure:"cloudinary"`
	Embeddings struct {
		Provider string `mapstructure:"provider"` // local|openai
		Host     string `mapstructure:"host"`
		APIKey   string `mapstructure:"api_key"`
		Model    string `mapstructure:"model"`
	} `mapstructure:"embeddings"`
	Extraction struct {
		Host   string `mapstructure:"host"`
		APIKey string `mapstructure:"api_key"`
		Model  string `mapstructure:"model"`
	} `mapstructure:"extraction"`
	BrightData struct {
		Enabled   bool          `mapstructure:"enabled"`
		APIKey    string        `mapstructure:"api_key"`
		BaseURL   string        `mapstructure:"base_url"`
		DatasetID string        `mapstructure:"dataset_id"`
		PollEvery time.Duration `mapstructure:"poll_every"`
		MaxWait   time.Duration `mapstructure:"max_wait"`
	} `mapstructure:"brightdata"`
	Jaeger struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"jaeger"`
}

func LoadConfig(paths ...string) (cfg Config, err error) {

	err = godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		viper.AddConfigPath(p)
	}
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if err = viper.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("app.port", "APP_PORT")
	viper.BindEnv("app.env", "APP_ENV")
	viper.BindEnv("db.dsn", "DB_DSN")
	viper.BindEnv("redis.addr", "REDIS_ADDR")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	viper.BindEnv("auth.jwt_secret", "JWT_SECRET")
	viper.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")

	viper.BindEnv("cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	viper.BindEnv("cloudinary.api_key", "CLOUDINARY_API_KEY")
	viper.BindEnv("cloudinary.api_secret", "CLOUDINARY_API_SECRET")

	viper.BindEnv("embeddings.provider", "EMBEDDINGS_PROVIDER")
	viper.BindEnv("embeddings.host", "EMBEDDINGS_HOST")
	viper.BindEnv("embeddings.api_key", "EMBEDDINGS_API_KEY")
	viper.BindEnv("embeddings.model", "EMBEDDINGS_MODEL")

	viper.BindEnv("extraction.host", "EXTRACTION_HOST")
	viper.BindEnv("extraction.api_key", "EXTRACTION_API_KEY")
	viper.BindEnv("extraction.model", "EXTRACTION_MODEL")

	viper.BindEnv("brightdata.enabled", "BRIGHTDATA_ENABLED")
	viper.BindEnv("brightdata.api_key", "BRIGHTDATA_API_KEY")
	viper.BindEnv("brightdata.base_url", "BRIGHTDATA_BASE_URL")
	viper.BindEnv("brightdata.dataset_id", "BRIGHTDATA_DATASET_ID")
	viper.BindEnv("brightdata.poll_every", "BRIGHTDATA_POLL_EVERY")
	viper.BindEnv("brightdata.max_wait", "BRIGHTDATA_MAX_WAIT")

	viper.BindEnv("jaeger.otlp_endpoint", "JAEGER_OTLP_ENDPOINT")

	viper.SetDefault("app.port", "8000")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("auth.token_lifespan", "168h")
	viper.SetDefault("embeddings.provider", "local")
	viper.SetDefault("embeddings.model", "nomic-embed-text")
	viper.SetDefault("extraction.model", "gpt-4o-mini")
	viper.SetDefault("brightdata.base_url", "https://api.brightdata.com")
	viper.SetDefault("brightdata.poll_every", "5s")
	viper.SetDefault("brightdata.max_wait", "3m")

	err = viper.Unmarshal(&cfg)
	return
}
