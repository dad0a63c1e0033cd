package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var Cfg Config

type Config struct {
	// service
	ServerPort  string `env:"SERVER_PORT" envDefault:"8888"`
	ServerHost  string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production
	ServiceName string `env:"SERVICE_NAME" envDefault:"tripplanner"`
	Version     string `env:"SERVICE_VERSION" envDefault:"0.1.0"`

	// upstream planning service
	PlannerBaseURL        string `env:"PLANNER_BASE_URL" envDefault:"http://localhost:8000"`
	PlannerPath           string `env:"PLANNER_PATH" envDefault:"/api/agentic/plan"`
	PlannerTimeoutSeconds int    `env:"PLANNER_TIMEOUT_SECONDS" envDefault:"120"`

	// redis
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"tripplanner"`

	// plan cache
	PlanCacheEnabled    bool `env:"PLAN_CACHE_ENABLED" envDefault:"true"`
	PlanCacheTTLMinutes int  `env:"PLAN_CACHE_TTL_MINUTES" envDefault:"60"`

	// rabbitmq
	RabbitMQAddr     string `env:"RABBITMQ_ADDR" envDefault:"localhost"`
	RabbitMQPort     string `env:"RABBITMQ_PORT" envDefault:"5672"`
	RabbitMQUsername string `env:"RABBITMQ_USERNAME" envDefault:"guest"`
	RabbitMQPassword string `env:"RABBITMQ_PASSWORD" envDefault:"guest"`
	RabbitMQVhost    string `env:"RABBITMQ_VHOST" envDefault:"/"`

	// snowflake id generator
	SnowflakeMachineID  int64 `env:"SNOWFLAKE_MACHINE_ID" envDefault:"1"`
	SnowflakeDataCenter int64 `env:"SNOWFLAKE_DATACENTER_ID" envDefault:"1"`

	// logging
	LoggerLevel      string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat     string `env:"LOGGER_FORMAT" envDefault:"text"` // json, text
	LoggerOutputPath string `env:"LOGGER_OUTPUT_PATH" envDefault:"stdout"`

	// tracing / metrics
	TracingEnabled  bool    `env:"TRACING_ENABLED" envDefault:"false"`
	TracingEndpoint string  `env:"TRACING_ENDPOINT" envDefault:"localhost:4317"`
	TracingSampler  float64 `env:"TRACING_SAMPLER" envDefault:"0.1"`

	// rate limiting, wired inside the middleware
	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitRPS     int  `env:"RATE_LIMIT_RPS" envDefault:"100"`

	// session housekeeping
	SessionIdleTTLMinutes int `env:"SESSION_IDLE_TTL_MINUTES" envDefault:"120"`
}

func init() {

	if err := godotenv.Load(); err != nil {

		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}

	Cfg = Config{}
	if err := env.Parse(&Cfg); err != nil {
		log.Fatalf("Failed to parse environment variables: %v", err)
	}

	validateConfig()
}

func validateConfig() {
	if Cfg.PlannerBaseURL == "" {
		log.Fatal("PLANNER_BASE_URL is required")
	}

	if Cfg.PlannerTimeoutSeconds <= 0 {
		log.Fatal("PLANNER_TIMEOUT_SECONDS must be positive")
	}

	if Cfg.RabbitMQAddr == "" {
		log.Printf("WARN: RABBITMQ_ADDR is not set, notifications will not be delivered")
	}
}

func (c *Config) GetPlannerURL() string {
	return c.PlannerBaseURL + c.PlannerPath
}

func (c *Config) GetRabbitMQURL() string {
	return "amqp://" + c.RabbitMQUsername + ":" + c.RabbitMQPassword + "@" + c.RabbitMQAddr + ":" + c.RabbitMQPort + c.RabbitMQVhost
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
