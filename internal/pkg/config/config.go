// Package config предоставляет управление конфигурацией приложения
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Server содержит конфигурацию сервера
type Server struct {
	Host                   string `json:"host" yaml:"host"`
	Port                   int    `json:"port" yaml:"port"`
	ShutdownTimeoutSeconds int    `json:"shutdown_timeout_seconds" yaml:"shutdown_timeout_seconds"`
}

// SlackAPI содержит конфигурацию Slack Web API
type SlackAPI struct {
	Token                 string `json:"token" yaml:"token"`
	ChannelID             string `json:"channel_id" yaml:"channel_id"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds" yaml:"request_timeout_seconds"`
}

// Processing содержит конфигурацию обработки
type Processing struct {
	TaskTimeoutSeconds int `json:"task_timeout_seconds" yaml:"task_timeout_seconds"` // 0 - без ограничений
	CacheTTLMinutes    int `json:"cache_ttl_minutes" yaml:"cache_ttl_minutes"`
}

// CacheTTL возвращает срок жизни кеша как time.Duration
func (p Processing) CacheTTL() time.Duration {
	return time.Duration(p.CacheTTLMinutes) * time.Minute
}

// Conversion содержит конфигурацию сервиса конвертации сообщений
type Conversion struct {
	PoolSize      int   `json:"pool_size" yaml:"pool_size"`
	UserIDBase    int64 `json:"user_id_base" yaml:"user_id_base"`
	ChannelIDBase int64 `json:"channel_id_base" yaml:"channel_id_base"`
}

// Logging содержит конфигурацию логирования
type Logging struct {
	Level string `json:"level" yaml:"level"` // debug, info, warn, error
}

// Config содержит конфигурацию приложения
type Config struct {
	Server     Server     `json:"server" yaml:"server"`
	SlackAPI   SlackAPI   `json:"slack_api" yaml:"slack_api"`
	Processing Processing `json:"processing" yaml:"processing"`
	Conversion Conversion `json:"conversion" yaml:"conversion"`
	Logging    Logging    `json:"logging" yaml:"logging"`
}

// LoadConfig загружает конфигурацию приложения из переменных окружения, .env файла или config.yml
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла, если он существует
	if err := godotenv.Load(); err != nil {
		// Если .env файла не существует, это нормально, мы будем полагаться на переменные окружения или config.yml
	}

	// Попытка загрузки из config.yml сначала
	cfg, err := loadFromYAML("config.yml")
	if err != nil {
		// Если загрузка YAML не удалась, используем переменные окружения
		cfg, err = loadFromEnv()
		if err != nil {
			return nil, fmt.Errorf("failed to load config from env: %w", err)
		}
	}

	return cfg, nil
}

// loadFromYAML загружает конфигурацию из YAML-файла
func loadFromYAML(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml config: %w", err)
	}

	return &cfg, nil
}

// loadFromEnv загружает конфигурацию из переменных окружения (обратная совместимость)
func loadFromEnv() (*Config, error) {
	token := getEnv("SLACK_TOKEN", "")
	channelID := getEnv("SLACK_CHANNEL_ID", "")
	host := getEnv("SERVER_HOST", DefaultServerHost)
	portStr := getEnv("SERVER_PORT", strconv.Itoa(DefaultServerPort))
	taskTimeoutStr := getEnv("TASK_TIMEOUT_SECONDS", "30")
	cacheTTLStr := getEnv("CACHE_TTL_MINUTES", "60")
	poolSizeStr := getEnv("CONVERSION_POOL_SIZE", strconv.Itoa(DefaultConversionPoolSize))

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	taskTimeout, err := strconv.Atoi(taskTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid TASK_TIMEOUT_SECONDS: %w", err)
	}

	cacheTTL, err := strconv.Atoi(cacheTTLStr)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL_MINUTES: %w", err)
	}

	poolSize, err := strconv.Atoi(poolSizeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid CONVERSION_POOL_SIZE: %w", err)
	}

	return &Config{
		Server: Server{
			Host:                   host,
			Port:                   port,
			ShutdownTimeoutSeconds: int(DefaultShutdownTimeout.Seconds()),
		},
		SlackAPI: SlackAPI{
			Token:     token,
			ChannelID: channelID,
		},
		Processing: Processing{
			TaskTimeoutSeconds: taskTimeout,
			CacheTTLMinutes:    cacheTTL,
		},
		Conversion: Conversion{
			PoolSize:      poolSize,
			UserIDBase:    DefaultUserIDBase,
			ChannelIDBase: DefaultChannelIDBase,
		},
		Logging: Logging{
			Level: getEnv("LOG_LEVEL", DefaultLogLevel),
		},
	}, nil
}

// Address возвращает адрес сервера в формате "host:port"
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Validate проверяет, являются ли значения конфигурации допустимыми
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be a valid port number (1-65535)")
	}

	if c.Server.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("server.shutdown_timeout_seconds must be positive")
	}

	if c.Processing.TaskTimeoutSeconds < 0 {
		return fmt.Errorf("processing.task_timeout_seconds must be non-negative (0 for no limit)")
	}

	if c.Processing.CacheTTLMinutes <= 0 {
		return fmt.Errorf("processing.cache_ttl_minutes must be a positive integer")
	}

	if c.Conversion.PoolSize <= 0 {
		return fmt.Errorf("conversion.pool_size must be positive")
	}

	if c.Conversion.UserIDBase < 0 {
		return fmt.Errorf("conversion.user_id_base must be non-negative")
	}

	if c.Conversion.ChannelIDBase < 0 {
		return fmt.Errorf("conversion.channel_id_base must be non-negative")
	}

	if c.SlackAPI.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("slack_api.request_timeout_seconds must be non-negative")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// all good
	default:
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	return nil
}

// getEnv извлекает значение переменной окружения или возвращает значение по умолчанию, если она не установлена
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
