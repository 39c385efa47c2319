package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	Storage    `yaml:"storage"`
	Mongo      `yaml:"mongo"`
	Tokens     `yaml:"tokens"`
	RabbitMQ   `yaml:"rabbitmq"`
	Redis      `yaml:"redis"`
	Email      `yaml:"email"`
}

// SenderConfig configures cmd/mail_sender, which needs only the broker and SMTP.
type SenderConfig struct {
	Env      string `yaml:"env" env:"ENV" env-default:"local"`
	RabbitMQ `yaml:"rabbitmq"`
	Email    `yaml:"email"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:5000"`
	Timeout     time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"mongo"`
}

type Mongo struct {
	URI      string        `yaml:"uri" env:"MONGO_URI" env-default:"mongodb://127.0.0.1:27017"`
	Database string        `yaml:"database" env:"MONGO_DATABASE" env-default:"todolistDB"`
	Timeout  time.Duration `yaml:"timeout" env:"MONGO_TIMEOUT" env-default:"10s"`
}

type Tokens struct {
	Secret         string        `yaml:"secret" env:"JWT_SECRET"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"ACCESS_TOKEN_TTL" env-default:"1h"`
	PasswordCost   int           `yaml:"password_cost" env:"PASSWORD_COST" env-default:"10"`
}

// RabbitMQ publishing is disabled when URL is empty.
type RabbitMQ struct {
	URL       string `yaml:"url" env:"RABBITMQ_URL"`
	QueueName string `yaml:"queue_name" env:"RABBITMQ_QUEUE" env-default:"account_events"`
}

// Redis backs the rate-limit counters when Addr is set.
type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type Email struct {
	Host     string `yaml:"host" env:"SMTP_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	Username string `yaml:"username" env:"SMTP_USERNAME"`
	Password string `yaml:"password" env:"SMTP_PASSWORD"`
	From     string `yaml:"from" env:"SMTP_FROM"`
}

var (
	ErrMissingSecret  = errors.New("tokens.secret (JWT_SECRET) is required")
	ErrUnknownStorage = errors.New("unknown storage driver")
	ErrMissingBroker  = errors.New("rabbitmq.url (RABBITMQ_URL) is required")
)

// Load reads configPath when it exists and the environment otherwise.
// Environment variables override file values in both cases.
func Load(configPath string) (*Config, error) {
	const op = "config.Load"

	var cfg Config

	if err := read(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cfg, nil
}

// LoadSender is Load for the mail sender.
func LoadSender(configPath string) (*SenderConfig, error) {
	const op = "config.LoadSender"

	var cfg SenderConfig

	if err := read(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if cfg.RabbitMQ.URL == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingBroker)
	}

	return &cfg, nil
}

func read(configPath string, cfg any) error {
	if _, err := os.Stat(configPath); configPath != "" && err == nil {
		return cleanenv.ReadConfig(configPath, cfg)
	}

	return cleanenv.ReadEnv(cfg)
}

func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic("Failed to read config: " + err.Error())
	}

	return cfg
}

func MustLoadSender(configPath string) *SenderConfig {
	cfg, err := LoadSender(configPath)
	if err != nil {
		panic("Failed to read config: " + err.Error())
	}

	return cfg
}

// FetchConfigPath returns the -config flag value, falling back to CONFIG_PATH.
func FetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}

func (c *Config) validate() error {
	if c.Tokens.Secret == "" {
		return ErrMissingSecret
	}

	switch c.Storage.Driver {
	case StorageMongo, StorageMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorage, c.Storage.Driver)
	}

	return nil
}
