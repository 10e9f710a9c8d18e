package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Poller    PollerConfig
	Mikrotik  MikrotikConfig
	MQTT      MQTTConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	Environment string
}

// StorageConfig names the on-disk JSON resources. Every collection is a
// single file rewritten in full through the atomic store.
type StorageConfig struct {
	DataDir           string
	BackupDir         string
	DevicesFile       string
	NotificationsFile string
	OutagesFile       string
	HistoryFile       string
	OccupancyLogFile  string
}

type PollerConfig struct {
	Enabled           bool
	LivenessInterval  time.Duration
	OccupancyInterval time.Duration
	ProbeTimeout      time.Duration
	ProbeAttempts     int
	FailureBackoff    time.Duration
}

type MikrotikConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Mock     bool
}

type MQTTConfig struct {
	Enabled  bool
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
}

type RateLimitConfig struct {
	GeneralRPS   float64
	GeneralBurst int
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AddConfigPath(".")
	if homeDir, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(homeDir)
	}
	viper.AutomaticEnv()

	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("BACKUP_DIR", "backups")
	viper.SetDefault("DEVICES_FILE", "onts.json")
	viper.SetDefault("NOTIFICATIONS_FILE", "notifications.json")
	viper.SetDefault("OUTAGES_FILE", "outages.json")
	viper.SetDefault("HISTORY_FILE", "history.json")
	viper.SetDefault("OCCUPANCY_LOG_FILE", "user_log.json")
	viper.SetDefault("POLLER_ENABLED", true)
	viper.SetDefault("LIVENESS_INTERVAL", "30s")
	viper.SetDefault("OCCUPANCY_INTERVAL", "300s")
	viper.SetDefault("PROBE_TIMEOUT", "1s")
	viper.SetDefault("PROBE_ATTEMPTS", 3)
	viper.SetDefault("POLLER_FAILURE_BACKOFF", "10s")
	viper.SetDefault("MIKROTIK_PORT", 8728)
	viper.SetDefault("MQTT_TOPIC", "ontwatch/events/status")
	viper.SetDefault("RATE_LIMIT_GENERAL_RPS", 50.0)
	viper.SetDefault("RATE_LIMIT_GENERAL_BURST", 100)

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Printf("Warning: config file not found: %v. Falling back to environment variables only.", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:        viper.GetString("SERVER_PORT"),
			Host:        viper.GetString("SERVER_HOST"),
			Environment: viper.GetString("ENVIRONMENT"),
		},
		Storage: StorageConfig{
			DataDir:           viper.GetString("DATA_DIR"),
			BackupDir:         viper.GetString("BACKUP_DIR"),
			DevicesFile:       viper.GetString("DEVICES_FILE"),
			NotificationsFile: viper.GetString("NOTIFICATIONS_FILE"),
			OutagesFile:       viper.GetString("OUTAGES_FILE"),
			HistoryFile:       viper.GetString("HISTORY_FILE"),
			OccupancyLogFile:  viper.GetString("OCCUPANCY_LOG_FILE"),
		},
		Poller: PollerConfig{
			Enabled:           viper.GetBool("POLLER_ENABLED"),
			LivenessInterval:  viper.GetDuration("LIVENESS_INTERVAL"),
			OccupancyInterval: viper.GetDuration("OCCUPANCY_INTERVAL"),
			ProbeTimeout:      viper.GetDuration("PROBE_TIMEOUT"),
			ProbeAttempts:     viper.GetInt("PROBE_ATTEMPTS"),
			FailureBackoff:    viper.GetDuration("POLLER_FAILURE_BACKOFF"),
		},
		Mikrotik: MikrotikConfig{
			Host:     viper.GetString("MIKROTIK_HOST"),
			Port:     viper.GetInt("MIKROTIK_PORT"),
			Username: viper.GetString("MIKROTIK_USER"),
			Password: viper.GetString("MIKROTIK_PASSWORD"),
			Mock:     viper.GetBool("MOCK_COLLECTOR"),
		},
		MQTT: MQTTConfig{
			Enabled:  viper.GetBool("MQTT_ENABLED"),
			Broker:   viper.GetString("MQTT_BROKER"),
			ClientID: viper.GetString("MQTT_CLIENT_ID"),
			Username: viper.GetString("MQTT_USER"),
			Password: viper.GetString("MQTT_PASSWORD"),
			Topic:    viper.GetString("MQTT_TOPIC"),
		},
		RateLimit: RateLimitConfig{
			GeneralRPS:   viper.GetFloat64("RATE_LIMIT_GENERAL_RPS"),
			GeneralBurst: viper.GetInt("RATE_LIMIT_GENERAL_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods:   viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders:   viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
			ExposedHeaders:   viper.GetStringSlice("CORS_EXPOSED_HEADERS"),
			AllowCredentials: viper.GetBool("CORS_ALLOW_CREDENTIALS"),
			MaxAge:           viper.GetInt("CORS_MAX_AGE"),
		},
	}

	return config, nil
}
