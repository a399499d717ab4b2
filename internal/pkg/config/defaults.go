package config

import "time"

// Default values for configuration.
const (
	// Server defaults
	DefaultServerHost      = "0.0.0.0"
	DefaultServerPort      = 8080
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
	DefaultMaxUploadSizeMB = 10
	DefaultCleanupInterval = 1 * time.Hour

	// Processing defaults
	DefaultTaskTimeout = 600 * time.Second
	DefaultCacheTTL    = 60 * time.Minute

	// Slack API defaults
	DefaultSlackRequestTimeout = 60 * time.Second

	// Conversion defaults
	DefaultConversionPoolSize = 4
	DefaultUserIDBase         = int64(0)
	DefaultChannelIDBase      = int64(0)

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)
