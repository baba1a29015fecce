package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration from a .env file using the provided base
// name, then applies environment variable overrides.
func LoadConfig(configName string) (*Config, error) {
	configFileName := fmt.Sprintf("%s.env", configName)
	return loadConfig(configFileName, "env")
}

func loadConfig(configName, configType string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(configName)
	if configType != "" {
		v.SetConfigType(configType)
	}

	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Info().Msgf("no config file '%s' found, relying on environment variables and defaults", configName)
		} else {
			log.Warn().Err(err).Msgf("error reading config file %s", v.ConfigFileUsed())
		}
	} else {
		log.Info().Msgf("config loaded from file: %s", v.ConfigFileUsed())
	}

	v.AutomaticEnv()

	config := &Config{
		Application: ApplicationConfig{
			Env:  v.GetString("APP_ENV"),
			Name: v.GetString("APP_NAME"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Server: ServerConfig{
			Port:            v.GetInt("SERVER_PORT"),
			ShutdownTimeout: v.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
			ReadTimeout:     v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:     v.GetDuration("SERVER_IDLE_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Path: v.GetString("DB_PATH"),
		},
		API: APIConfig{
			URL: v.GetString("API_URL"),
		},
		JWT: JWTConfig{
			Secret:        v.GetString("JWT_SECRET"),
			TokenLifetime: v.GetDuration("JWT_TOKEN_LIFETIME"),
			BcryptCost:    v.GetInt("BCRYPT_COST"),
		},
		CORS: CORSConfig{
			AllowOrigins: v.GetStringSlice("CORS_ALLOW_ORIGINS"),
		},
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults initializes configuration with sensible default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 25*time.Second)
	v.SetDefault("SERVER_READ_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_IDLE_TIMEOUT", 120*time.Second)

	v.SetDefault("DB_PATH", "data/centsible.db")

	v.SetDefault("API_URL", "http://localhost:8080")

	v.SetDefault("JWT_TOKEN_LIFETIME", 24*time.Hour)
	v.SetDefault("BCRYPT_COST", 10)

	v.SetDefault("CORS_ALLOW_ORIGINS", []string{"*"})

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "centsible-backend")
}
