package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/doelski/mabinihub-backend-go/internal/pkg/shift"
	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Storage  StorageConfig
	Shift    shift.Schedule
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT verification configuration. Tokens are issued by the
// account service; this backend only validates them.
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	Timezone    string
	FrontendURL string
}

type StorageConfig struct {
	Type     string
	BasePath string
	BaseURL  string
}

func Load() (*Config, error) {
	// A missing .env file is fine in deployed environments; real env vars win.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "mabinihub"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Timezone:    getEnv("APP_TIMEZONE", "Asia/Manila"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	config.Storage = StorageConfig{
		Type:     getEnv("STORAGE_TYPE", "local"),
		BasePath: getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
	}

	// Shift schedule configuration. Boundaries are clock times on the
	// business date; deployments with different shifts override these.
	schedule, err := loadShiftSchedule()
	if err != nil {
		return nil, err
	}
	config.Shift = schedule

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadShiftSchedule() (shift.Schedule, error) {
	schedule := shift.DefaultSchedule()

	clockEnvs := []struct {
		key    string
		target *time.Duration
	}{
		{"SHIFT_PRESENT_END", &schedule.PresentEnd},
		{"SHIFT_LATE_END", &schedule.LateEnd},
		{"SHIFT_UNDERTIME_END", &schedule.UndertimeEnd},
		{"SHIFT_OUT_START", &schedule.OutStart},
		{"SHIFT_OUT_END", &schedule.OutEnd},
		{"SHIFT_OVERTIME_START", &schedule.OvertimeStart},
		{"SHIFT_ABSENT_CUTOFF", &schedule.AbsentCutoff},
	}

	for _, e := range clockEnvs {
		raw := getEnv(e.key, "")
		if raw == "" {
			continue
		}
		d, err := shift.ParseClock(raw)
		if err != nil {
			return shift.Schedule{}, fmt.Errorf("invalid %s: %w", e.key, err)
		}
		*e.target = d
	}

	if raw := getEnv("SHIFT_REST_DAYS", ""); raw != "" {
		var restDays []time.Weekday
		for _, name := range strings.Split(raw, ",") {
			day, err := parseWeekday(strings.TrimSpace(name))
			if err != nil {
				return shift.Schedule{}, fmt.Errorf("invalid SHIFT_REST_DAYS: %w", err)
			}
			restDays = append(restDays, day)
		}
		schedule.RestDays = restDays
	}

	return schedule, nil
}

func parseWeekday(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), name) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Location returns the application timezone; Validate already checked it
// loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
