package config

import "time"

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRequestTimeout = 10 * time.Second
	DefaultMaxRequestSize = 1 << 20 // 1 MiB
	DefaultIdempotencyTTL = 24 * time.Hour

	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 15 * time.Second

	DefaultSeedDealerName     = "Oscar Mobility Main"
	DefaultSeedDealerLocation = "Munich, Germany"
)
