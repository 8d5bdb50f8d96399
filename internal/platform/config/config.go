package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	// MutationRateLimit is a ulule/limiter formatted rate applied to form
	// posts, e.g. "30-M" for 30 requests per minute per IP.
	MutationRateLimit string
	// DevSeed controls whether the demonstration accounts are created at
	// startup.
	DevSeed bool
}

// LoadConfig loads configuration from environment variables and a .env file if
// present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("MUTATION_RATE_LIMIT", "30-M")
	viper.SetDefault("DEV_SEED", true)

	viper.AutomaticEnv()

	cfg := &Config{
		Port:              viper.GetString("PORT"),
		IsProduction:      viper.GetBool("IS_PRODUCTION"),
		MutationRateLimit: viper.GetString("MUTATION_RATE_LIMIT"),
		DevSeed:           viper.GetBool("DEV_SEED"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	return cfg, nil
}
