package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/barber-booking/internal/availability"
	"github.com/m04kA/barber-booking/internal/domain"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	Redis          RedisConfig          `toml:"redis"`
	RateLimit      RateLimitConfig      `toml:"rate_limit"`
	CatalogService CatalogServiceConfig `toml:"catalog_service"`
	Booking        BookingConfig        `toml:"booking"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к Postgres
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig настройки кэша правил. Пустой Addr - кэш выключен
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTL      int    `toml:"ttl"` // секунды
}

// Enabled включен ли кэш
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// TTLDuration время жизни записи кэша
func (r RedisConfig) TTLDuration() time.Duration {
	return time.Duration(r.TTL) * time.Second
}

// RateLimitConfig ограничение частоты запросов на клиента. RPS = 0 - выключено
type RateLimitConfig struct {
	RPS   float64 `toml:"rps"`
	Burst int     `toml:"burst"`
	// TrustProxy клиент определяется по X-Forwarded-For. Включать только за своим прокси
	TrustProxy bool `toml:"trust_proxy"`
}

// CatalogServiceConfig настройки клиента каталога услуг
type CatalogServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// BookingConfig правила бронирования по умолчанию для всех барбершопов
type BookingConfig struct {
	Timezone                      string   `toml:"timezone"`
	WorkingDays                   []string `toml:"working_days"`
	StartHour                     *int     `toml:"start_hour"`
	EndHour                       *int     `toml:"end_hour"`
	IntervalMinutes               *int     `toml:"interval_minutes"`
	SameDayCutoffHour             *int     `toml:"same_day_cutoff_hour"`
	SameDayMinAdvanceMinutes      *int     `toml:"same_day_min_advance_minutes"`
	DefaultServiceDurationMinutes *int     `toml:"default_service_duration_minutes"`
}

// Rules строит правила бронирования: значения по умолчанию, переопределённые конфигом
func (b BookingConfig) Rules() (domain.BookingRules, error) {
	override := domain.ShopRules{
		StartHour:                     b.StartHour,
		EndHour:                       b.EndHour,
		IntervalMinutes:               b.IntervalMinutes,
		SameDayCutoffHour:             b.SameDayCutoffHour,
		SameDayMinAdvanceMinutes:      b.SameDayMinAdvanceMinutes,
		DefaultServiceDurationMinutes: b.DefaultServiceDurationMinutes,
	}
	if len(b.WorkingDays) > 0 {
		days := availability.ResolveWorkingDays(b.WorkingDays)
		override.WorkingDays = &days
	}

	rules := override.Apply(domain.DefaultBookingRules())
	if err := rules.Validate(); err != nil {
		return domain.BookingRules{}, fmt.Errorf("%w: booking: %v", ErrInvalidConfig, err)
	}
	return rules, nil
}

// Location часовой пояс барбершопов. Пусто - UTC
func (b BookingConfig) Location() (*time.Location, error) {
	if b.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}
	return loc, nil
}

// Load читает .env (если есть), затем TOML файл, подставляя ${VAR} из окружения
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	return Parse(os.ExpandEnv(string(data)))
}

// Parse разбирает TOML и проставляет значения по умолчанию
func Parse(data string) (*Config, error) {
	cfg := defaults()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: decode toml: %v", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs:           LogsConfig{Level: "info"},
		Metrics:        MetricsConfig{Path: "/metrics", ServiceName: "barber-booking"},
		Redis:          RedisConfig{TTL: 300},
		CatalogService: CatalogServiceConfig{Timeout: 5},
	}
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range", ErrInvalidConfig)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("%w: rate_limit must not be negative", ErrInvalidConfig)
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = int(c.RateLimit.RPS) + 1
	}
	if c.Redis.Enabled() && c.Redis.TTL <= 0 {
		return fmt.Errorf("%w: redis.ttl must be positive", ErrInvalidConfig)
	}
	if _, err := c.Booking.Rules(); err != nil {
		return err
	}
	if _, err := c.Booking.Location(); err != nil {
		return err
	}
	return nil
}
