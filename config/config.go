package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Hotel    HotelConfig    `yaml:"hotel"`
	Worker   WorkerConfig   `yaml:"worker"`
	Log      LogConfig      `yaml:"log"`
}

type HTTPConfig struct {
	Address        string  `yaml:"address"`
	SwaggerDir     string  `yaml:"swagger_dir"`
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// MigrationURL is the pgx5:// form expected by the migrate pgx/v5 driver.
func (d DatabaseConfig) MigrationURL() string {
	u := url.URL{
		Scheme:   "pgx5",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	return u.String()
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	EventsTopic        string   `yaml:"events_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type HotelConfig struct {
	Currency                 string `yaml:"currency"`
	BookingLockTTLSeconds    int    `yaml:"booking_lock_ttl_seconds"`
	DashboardCacheTTLSeconds int    `yaml:"dashboard_cache_ttl_seconds"`
	DefaultReservationStatus string `yaml:"default_reservation_status"`
}

type WorkerConfig struct {
	ReportSchedule string `yaml:"report_schedule"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()
	cfg.overrideWithEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) overrideWithEnv() {
	if val := os.Getenv("HTTP_ADDRESS"); val != "" {
		c.HTTP.Address = val
	}
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			c.Database.Port = port
		}
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Name = val
	}
	if val := os.Getenv("REDIS_ADDR"); val != "" {
		c.Redis.Addr = val
	}
	if val := os.Getenv("KAFKA_BROKERS"); val != "" {
		c.Kafka.Brokers = strings.Split(val, ",")
	}
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Hotel.Currency == "" {
		c.Hotel.Currency = "GNF"
	}
	if c.Hotel.BookingLockTTLSeconds == 0 {
		c.Hotel.BookingLockTTLSeconds = 10
	}
	if c.Hotel.DashboardCacheTTLSeconds == 0 {
		c.Hotel.DashboardCacheTTLSeconds = 30
	}
	if c.Hotel.DefaultReservationStatus == "" {
		c.Hotel.DefaultReservationStatus = "PENDING"
	}
	if c.Worker.ReportSchedule == "" {
		c.Worker.ReportSchedule = "0 0 23 * * *"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return errors.New("database host is required")
	}
	if c.Database.Name == "" {
		return errors.New("database name is required")
	}
	switch c.Hotel.DefaultReservationStatus {
	case "PENDING", "CONFIRMED":
	default:
		return fmt.Errorf("default reservation status must be PENDING or CONFIRMED, got %q", c.Hotel.DefaultReservationStatus)
	}
	if c.HTTP.RateLimitRPS < 0 || c.HTTP.RateLimitBurst < 0 {
		return errors.New("rate limit settings must not be negative")
	}
	return nil
}
