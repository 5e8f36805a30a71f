package config

const (
	DefaultLogLevel = "warn"
	DefaultBackend  = "sqlite"

	// DefaultCapacityBytes matches a typical browser origin quota.
	DefaultCapacityBytes int64 = 5 << 20

	DefaultBackupInterval = "5m"
	DefaultBackupDebounce = "1s"
	DefaultBackupRetain   = 5
)
