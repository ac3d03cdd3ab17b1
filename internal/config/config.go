package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	DataSource      string
	MinYear         int
	DateColumn      string
	MaxColumn       string
	MinColumn       string
	LoadTimeout     time.Duration
	City            string
	StyleFile       string
	RenderCacheSize int

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Kafka bucket publishing.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is read first if present;
// variables already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load() // optional

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	loadTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("LOAD_TIMEOUT", "30s"))
	if err != nil || loadTimeout <= 0 {
		return nil, errors.New("invalid LOAD_TIMEOUT")
	}

	minYear, err := strconv.Atoi(sharedcfg.EnvOrDefault("MIN_YEAR", "2008"))
	if err != nil || minYear < 1 {
		return nil, errors.New("invalid MIN_YEAR")
	}

	cacheSize, err := parsePositiveInt("RENDER_CACHE_SIZE", 32)
	if err != nil {
		return nil, err
	}

	_, brokersSet := os.LookupEnv("KAFKA_BROKERS")
	kafkaEnabled := brokersSet
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		DataSource:      sharedcfg.EnvOrDefault("DATA_SOURCE", "temperature_daily.csv"),
		MinYear:         minYear,
		DateColumn:      sharedcfg.EnvOrDefault("DATE_COLUMN", "date"),
		MaxColumn:       sharedcfg.EnvOrDefault("MAX_COLUMN", "max_temperature"),
		MinColumn:       sharedcfg.EnvOrDefault("MIN_COLUMN", "min_temperature"),
		LoadTimeout:     loadTimeout,
		City:            sharedcfg.EnvOrDefault("CITY", "HKG"),
		StyleFile:       os.Getenv("STYLE_FILE"),
		RenderCacheSize: cacheSize,
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		KafkaEnabled:    kafkaEnabled,
		KafkaBrokers:    sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:      sharedcfg.EnvOrDefault("KAFKA_TOPIC", "monthly-temperature-buckets"),
	}

	if cfg.DataSource == "" {
		return nil, errors.New("DATA_SOURCE is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_ENABLED is true")
	}

	return cfg, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", key)
	}
	return n, nil
}
