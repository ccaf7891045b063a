package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	ServerAddress   string        `mapstructure:"SERVER_ADDRESS"`
	GinMode         string        `mapstructure:"GIN_MODE"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	LogFormat       string        `mapstructure:"LOG_FORMAT"`
	ReadTimeout     time.Duration `mapstructure:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `mapstructure:"WRITE_TIMEOUT"`
	ReferenceSource string        `mapstructure:"REFERENCE_SOURCE"`
	ReferenceFiles  []string      `mapstructure:"REFERENCE_FILES"`
	ReferenceTables []string      `mapstructure:"REFERENCE_TABLES"`
	DBSource        string        `mapstructure:"DB_SOURCE"`
}

// LoadConfig reads configuration from app.env in path, overridden by environment variables
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("SERVER_ADDRESS", ":8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("READ_TIMEOUT", 10*time.Second)
	v.SetDefault("WRITE_TIMEOUT", 30*time.Second)
	v.SetDefault("REFERENCE_SOURCE", SourceFile)
	v.SetDefault("REFERENCE_FILES", []string{"data/ConUS_SD1.csv", "data/ConUS_SDS.csv"})
	v.SetDefault("REFERENCE_TABLES", []string{"conus_sd1", "conus_sds"})
	v.SetDefault("DB_SOURCE", "")

	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: failed to read config file: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: failed to unmarshal: %w", err)
	}

	return config, config.validate()
}

func (c Config) validate() error {
	switch c.ReferenceSource {
	case SourceFile:
		if len(c.ReferenceFiles) == 0 {
			return errors.New("config: REFERENCE_FILES must list at least one file")
		}
	case SourcePostgres:
		if c.DBSource == "" {
			return errors.New("config: DB_SOURCE is required when REFERENCE_SOURCE is postgres")
		}
		if len(c.ReferenceTables) == 0 {
			return errors.New("config: REFERENCE_TABLES must list at least one table")
		}
	default:
		return fmt.Errorf("config: unknown REFERENCE_SOURCE %q", c.ReferenceSource)
	}
	return nil
}
