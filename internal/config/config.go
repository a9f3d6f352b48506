package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	GinMode     string
	DBDriver    string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	CORSOrigins []string
	LogLevel    string
	LogFormat   string
	SeedData    bool
}

// Load reads an optional config.yaml and applies environment variable
// overrides (SERVER_PORT, DB_HOST, ...).
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.gin_mode", "debug")
	v.SetDefault("server.cors_origins", []string{"http://localhost:4200"})
	v.SetDefault("db.driver", "mysql")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "3306")
	v.SetDefault("db.user", "paperuser")
	v.SetDefault("db.password", "paperpassword")
	v.SetDefault("db.name", "paper_review")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("seed.enabled", true)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Port:        v.GetString("server.port"),
		GinMode:     v.GetString("server.gin_mode"),
		DBDriver:    v.GetString("db.driver"),
		DBHost:      v.GetString("db.host"),
		DBPort:      v.GetString("db.port"),
		DBUser:      v.GetString("db.user"),
		DBPassword:  v.GetString("db.password"),
		DBName:      v.GetString("db.name"),
		DBSSLMode:   v.GetString("db.sslmode"),
		CORSOrigins: v.GetStringSlice("server.cors_origins"),
		LogLevel:    v.GetString("log.level"),
		LogFormat:   v.GetString("log.format"),
		SeedData:    v.GetBool("seed.enabled"),
	}

	switch cfg.DBDriver {
	case "mysql", "postgres":
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
	}

	return cfg, nil
}
