package config

const (
	EnvPort     = "DEALERSHIP_PORT"
	EnvLogLevel = "DEALERSHIP_LOG_LEVEL"

	EnvRequestTimeout = "DEALERSHIP_REQUEST_TIMEOUT"
	EnvMaxRequestSize = "DEALERSHIP_MAX_REQUEST_SIZE"
	EnvIdempotencyTTL = "DEALERSHIP_IDEMPOTENCY_TTL"

	EnvReadTimeout     = "DEALERSHIP_READ_TIMEOUT"
	EnvWriteTimeout    = "DEALERSHIP_WRITE_TIMEOUT"
	EnvIdleTimeout     = "DEALERSHIP_IDLE_TIMEOUT"
	EnvShutdownTimeout = "DEALERSHIP_SHUTDOWN_TIMEOUT"

	EnvSeedDealerName     = "DEALERSHIP_SEED_DEALER_NAME"
	EnvSeedDealerLocation = "DEALERSHIP_SEED_DEALER_LOCATION"
)
