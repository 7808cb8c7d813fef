package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port          string `env:"PORT,            default=8080"`
	Env           string `env:"ENV,             default=development"`
	JWTSecret     string `env:"JWT_SECRET"`
	LogLevel      string `env:"LOG_LEVEL,       default=info"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL, default=http://localhost:8080"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Market MarketConfig
	Stripe StripeConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=taskbid"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// MarketConfig holds the marketplace rule constants. Prices are whole major
// currency units; the platform fee is flat and waived when the task price
// does not exceed it.
type MarketConfig struct {
	MinTaskPrice int    `env:"MARKET_MIN_TASK_PRICE, default=1"`
	MaxTaskPrice int    `env:"MARKET_MAX_TASK_PRICE, default=10"`
	PlatformFee  int    `env:"MARKET_PLATFORM_FEE,   default=1"`
	Lifecycle    string `env:"MARKET_LIFECYCLE,      default=full"`
}

type StripeConfig struct {
	SecretKey string `env:"STRIPE_SECRET_KEY"`
	APIURL    string `env:"STRIPE_API_URL, default=https://api.stripe.com"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
