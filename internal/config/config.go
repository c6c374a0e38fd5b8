package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Yumichan48/foxrunner/internal/database"
)

// QueuePersistPolicy selects what happens to in-flight jobs across a restart.
type QueuePersistPolicy string

const (
	// QueueDropRefund refunds consumed ingredients on shutdown and restarts
	// the queue empty. This is the implemented policy.
	QueueDropRefund QueuePersistPolicy = "drop_refund"
	// QueuePersistTimestamps would persist start/completion timestamps
	// verbatim. Recognized but not implemented; Load rejects it.
	QueuePersistTimestamps QueuePersistPolicy = "persist_timestamps"
)

// Tuning holds the numeric knobs of the production formulas.
type Tuning struct {
	GlobalTimeMultiplier     float64
	MasterySpeedBonusPerLvl  float64
	MasteryQualityBonusPerLvl float64
	BaseQualityUpgradeChance float64
	MaxQueueSize             int
	TickInterval             time.Duration
}

// Config holds the application configuration
type Config struct {
	Port       int
	LogLevel   string
	LogFormat  string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	APIKey     string
	ConfigDir  string // directory holding the catalog JSON files
	Tuning     Tuning
	QueuePolicy QueuePersistPolicy
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFormat:  getEnv("LOG_FORMAT", "text"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "foxrunner"),
		APIKey:     getEnv("API_KEY", ""),
		ConfigDir:  getEnv("CONFIG_DIR", "configs"),
	}

	port, err := getEnvInt("PORT", DefaultPort)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	tuning, err := loadTuning()
	if err != nil {
		return nil, err
	}
	cfg.Tuning = tuning

	policy := QueuePersistPolicy(getEnv("QUEUE_PERSIST_POLICY", string(QueueDropRefund)))
	switch policy {
	case QueueDropRefund:
		cfg.QueuePolicy = policy
	case QueuePersistTimestamps:
		return nil, fmt.Errorf("QUEUE_PERSIST_POLICY %q is recognized but not implemented", policy)
	default:
		return nil, fmt.Errorf("invalid QUEUE_PERSIST_POLICY value: %q", policy)
	}

	return cfg, nil
}

func loadTuning() (Tuning, error) {
	t := Tuning{}

	var err error
	if t.GlobalTimeMultiplier, err = getEnvFloat("CRAFT_GLOBAL_TIME_MULTIPLIER", DefaultGlobalTimeMultiplier); err != nil {
		return t, err
	}
	if t.MasterySpeedBonusPerLvl, err = getEnvFloat("CRAFT_MASTERY_SPEED_BONUS", DefaultMasterySpeedBonusPerLvl); err != nil {
		return t, err
	}
	if t.MasteryQualityBonusPerLvl, err = getEnvFloat("CRAFT_MASTERY_QUALITY_BONUS", DefaultMasteryQualityBonusPerLvl); err != nil {
		return t, err
	}
	if t.BaseQualityUpgradeChance, err = getEnvFloat("CRAFT_BASE_QUALITY_UPGRADE_CHANCE", DefaultBaseQualityUpgradeChance); err != nil {
		return t, err
	}
	if t.MaxQueueSize, err = getEnvInt("CRAFT_MAX_QUEUE_SIZE", DefaultMaxQueueSize); err != nil {
		return t, err
	}

	tickMillis, err := getEnvInt("CRAFT_TICK_INTERVAL_MS", DefaultTickIntervalMillis)
	if err != nil {
		return t, err
	}
	if tickMillis <= 0 || tickMillis > 1000 {
		return t, fmt.Errorf("CRAFT_TICK_INTERVAL_MS must be in (0, 1000], got %d", tickMillis)
	}
	t.TickInterval = time.Duration(tickMillis) * time.Millisecond

	if t.BaseQualityUpgradeChance < 0 || t.BaseQualityUpgradeChance > 1 {
		return t, fmt.Errorf("CRAFT_BASE_QUALITY_UPGRADE_CHANCE must be in [0,1], got %g", t.BaseQualityUpgradeChance)
	}
	if t.MaxQueueSize <= 0 {
		return t, fmt.Errorf("CRAFT_MAX_QUEUE_SIZE must be positive, got %d", t.MaxQueueSize)
	}

	return t, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return database.ConnString(c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}
