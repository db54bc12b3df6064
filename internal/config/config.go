package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string

	APIPort        int
	APISecret      string
	AllowedOrigins []string
	MaxConns       int

	MorningTime    string
	Timezone       string
	StuckThreshold int
	FocusItems     int
	RefocusLimit   int

	ArticlesFile string
	WebhookURL   string
	LogLevel     string

	location *time.Location
}

// Load reads defaults, then the optional config file, then the environment.
// An empty file means "look for focus.yaml in the working directory".
func Load(file string) (*Config, error) {
	v := viper.New()

	v.SetDefault("db_driver", "postgres")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_path", "focus.db")
	v.SetDefault("api_port", 8080)
	v.SetDefault("allowed_origins", []string{"chrome-extension://*", "http://localhost:*"})
	v.SetDefault("max_conns", 64)
	v.SetDefault("morning_time", "11:30")
	v.SetDefault("timezone", "Asia/Karachi")
	v.SetDefault("stuck_threshold", 3)
	v.SetDefault("focus_items", 3)
	v.SetDefault("refocus_limit", 5)
	v.SetDefault("log_level", "info")

	// Unprefixed names, same as the deployment env files.
	v.AutomaticEnv()
	_ = v.BindEnv("api_port", "API_PORT", "PORT")

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("focus")
		v.SetConfigType("yaml")
		v.AddConfigPath("./")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		DBDriver:   strings.ToLower(v.GetString("db_driver")),
		DBHost:     v.GetString("db_host"),
		DBPort:     v.GetInt("db_port"),
		DBUser:     v.GetString("db_user"),
		DBPassword: v.GetString("db_password"),
		DBName:     v.GetString("db_name"),
		DBPath:     v.GetString("db_path"),

		APIPort:        v.GetInt("api_port"),
		APISecret:      v.GetString("api_secret"),
		AllowedOrigins: splitList(v.GetStringSlice("allowed_origins")),
		MaxConns:       v.GetInt("max_conns"),

		MorningTime:    v.GetString("morning_time"),
		Timezone:       v.GetString("timezone"),
		StuckThreshold: v.GetInt("stuck_threshold"),
		FocusItems:     v.GetInt("focus_items"),
		RefocusLimit:   v.GetInt("refocus_limit"),

		ArticlesFile: v.GetString("articles_file"),
		WebhookURL:   v.GetString("webhook_url"),
		LogLevel:     v.GetString("log_level"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("config: unsupported db_driver %q", c.DBDriver)
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
	}
	c.location = loc

	if _, _, err := ParseClock(c.MorningTime); err != nil {
		return fmt.Errorf("config: morning_time: %w", err)
	}
	if c.StuckThreshold < 1 {
		return fmt.Errorf("config: stuck_threshold must be positive, got %d", c.StuckThreshold)
	}
	if c.FocusItems < 0 || c.RefocusLimit < 1 {
		return errors.New("config: focus_items must be >= 0 and refocus_limit >= 1")
	}
	return nil
}

func (c *Config) ConnString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

// DSN returns the data source name for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "sqlite" {
		return c.DBPath
	}
	return c.ConnString()
}

func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// NewLogger builds the process logger at the configured level. Unknown
// levels fall back to info.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// MorningClock returns the configured daily trigger time.
func (c *Config) MorningClock() (hour, minute int) {
	hour, minute, _ = ParseClock(c.MorningTime)
	return hour, minute
}

// ParseClock parses a 24h "HH:MM" wall-clock time.
func ParseClock(s string) (hour, minute int, err error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid clock %q, want HH:MM", s)
	}
	hour, err = strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err = strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, minute, nil
}

// splitList accepts both YAML lists and comma separated env values.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
