package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverSupabase = "supabase"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

type Config struct {
	AppName     string         `yaml:"app_name"`
	Debug       bool           `yaml:"debug"`
	Environment string         `yaml:"environment"`
	LogLevel    string         `yaml:"log_level"`
	Server      ServerConfig   `yaml:"server"`
	CORS        CORSConfig     `yaml:"cors"`
	Database    DatabaseConfig `yaml:"database"`
	Gemini      GeminiConfig   `yaml:"gemini"`
	RabbitMQ    RabbitMQConfig `yaml:"rabbitmq"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type DatabaseConfig struct {
	Driver          string `yaml:"driver"`
	URL             string `yaml:"url"`
	SupabaseURL     string `yaml:"supabase_url"`
	SupabaseAnonKey string `yaml:"supabase_anon_key"`
	Table           string `yaml:"table"`
}

type GeminiConfig struct {
	APIKey    string        `yaml:"api_key"`
	Model     string        `yaml:"model"`
	Timeout   time.Duration `yaml:"timeout"`
	Mock      bool          `yaml:"mock"`
	MockCount int           `yaml:"mock_count"`
}

// Live reports whether ideas come from the Gemini API rather than the
// template generator.
func (g GeminiConfig) Live() bool {
	return !g.Mock && g.APIKey != ""
}

type RabbitMQConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

func (r RabbitMQConfig) Enabled() bool {
	return r.URL != ""
}

// Load reads the YAML file at path, if it exists, then applies environment
// variables (including those from .env) and defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.AppName, "APP_NAME")
	setString(&c.Environment, "ENVIRONMENT")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.Server.Addr, "HTTP_ADDR")
	setString(&c.Database.Driver, "DATABASE_DRIVER")
	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.Database.SupabaseURL, "SUPABASE_URL")
	setString(&c.Database.SupabaseAnonKey, "SUPABASE_ANON_KEY")
	setString(&c.Gemini.APIKey, "GEMINI_API_KEY")
	setString(&c.Gemini.Model, "GEMINI_MODEL")
	setString(&c.RabbitMQ.URL, "RABBITMQ_URL")

	if err := setBool(&c.Debug, "DEBUG"); err != nil {
		return err
	}
	return setBool(&c.Gemini.Mock, "GEMINI_MOCK")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	*dst = b
	return nil
}

func (c *Config) setDefaults() {
	if c.AppName == "" {
		c.AppName = "Instagram Reel Planner API"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Debug {
		c.LogLevel = "debug"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8000"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 90 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverSupabase
	}
	if c.Database.Table == "" {
		c.Database.Table = "saved_ideas"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-1.5-flash"
	}
	if c.Gemini.Timeout == 0 {
		c.Gemini.Timeout = 60 * time.Second
	}
	if c.Gemini.MockCount == 0 {
		c.Gemini.MockCount = 5
	}
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "reel_planner"
	}
	if c.RabbitMQ.RoutingKey == "" {
		c.RabbitMQ.RoutingKey = "ideas"
	}
	if c.RabbitMQ.QueueName == "" {
		c.RabbitMQ.QueueName = "saved_ideas_events"
	}
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSupabase:
		var missing []string
		if c.Database.SupabaseURL == "" {
			missing = append(missing, "SUPABASE_URL")
		}
		if c.Database.SupabaseAnonKey == "" {
			missing = append(missing, "SUPABASE_ANON_KEY")
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
		}
	case DriverPostgres, DriverSQLite:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for driver %s", c.Database.Driver)
		}
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}

	return nil
}
