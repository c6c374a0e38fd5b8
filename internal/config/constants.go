package config

// Default server configuration
const (
	DefaultPort = 8080
)

// Default production-formula tuning. These mirror the catalog balance sheet
// and can be overridden per environment.
const (
	DefaultGlobalTimeMultiplier      = 1.0
	DefaultMasterySpeedBonusPerLvl   = 0.02
	DefaultMasteryQualityBonusPerLvl = 0.01
	DefaultBaseQualityUpgradeChance  = 0.05
	DefaultMaxQueueSize              = 8
	DefaultTickIntervalMillis        = 500
)
