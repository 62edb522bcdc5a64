package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingAPIKey is returned by Load when no catalog API key is configured.
var ErrMissingAPIKey = errors.New("API key for the Harvard Art Museums catalog not found")

// Settings holds the runtime configuration of the service.
type Settings struct {
	Debug    bool
	Database Database
	Harvard  Harvard
	Server   Server
	Auth     Auth
}

// Database describes how to reach the relational store. DSN, when set,
// takes precedence over the individual fields.
type Database struct {
	Driver   string // mysql, postgres or sqlite
	DSN      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Harvard struct {
	APIKey   string
	BaseURL  string
	PageSize int
}

type Server struct {
	Host           string
	AllowedOrigins []string
}

type Auth struct {
	JWTSecret string
	// Seed user created on first start when it does not exist yet.
	AdminUser     string
	AdminPassword string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", "3306")
	v.SetDefault("database.name", "museum_insights")

	v.SetDefault("harvard.baseurl", "https://api.harvardartmuseums.org")
	v.SetDefault("harvard.pagesize", 100)

	v.SetDefault("server.host", ":8080")

	v.SetDefault("auth.adminuser", "insights")
}

// New returns a viper instance with defaults, environment binding and the
// optional config.yaml search paths in place. Callers may bind flags onto it
// before calling Load.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("INSIGHTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/museum-insights")
	return v
}

// Load reads .env (if present), config.yaml (if present) and the environment
// into Settings. A missing API key is an error: nothing works without it.
func Load(v *viper.Viper) (*Settings, error) {
	// .env is optional, values already set in the environment win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	settings := &Settings{
		Debug: v.GetBool("debug"),
		Database: Database{
			Driver:   strings.ToLower(v.GetString("database.driver")),
			DSN:      v.GetString("database.dsn"),
			Host:     v.GetString("database.host"),
			Port:     v.GetString("database.port"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			Name:     v.GetString("database.name"),
		},
		Harvard: Harvard{
			APIKey:   v.GetString("harvard.apikey"),
			BaseURL:  strings.TrimRight(v.GetString("harvard.baseurl"), "/"),
			PageSize: v.GetInt("harvard.pagesize"),
		},
		Server: Server{
			Host:           v.GetString("server.host"),
			AllowedOrigins: v.GetStringSlice("server.allowedorigins"),
		},
		Auth: Auth{
			JWTSecret:     v.GetString("auth.jwtsecret"),
			AdminUser:     v.GetString("auth.adminuser"),
			AdminPassword: v.GetString("auth.adminpassword"),
		},
	}

	if settings.Harvard.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if settings.Harvard.PageSize <= 0 {
		return nil, fmt.Errorf("harvard.pagesize must be positive, got %d", settings.Harvard.PageSize)
	}
	return settings, nil
}

