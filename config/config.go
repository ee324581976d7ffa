package config

import (
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

// Config holds all configuration for the leads service. Everything that
// used to be ambient state (partition names, campaign list, timezone) is
// carried here and handed to the components that need it.
type Config struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Server configuration
	Host string
	Port string

	// Lead store partitions, tried in order; the first existing one wins.
	PartitionCandidates []string

	// Launch campaigns tracked as first-class categories.
	Campaigns []string

	// Timezone for lead timestamps and ids.
	TimezoneName string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "server"),
		DBPassword: getEnv("DB_PASSWORD", "secret"),
		DBName:     getEnv("DB_NAME", "leads"),

		Host: getEnv("HOST", "0.0.0.0"),
		Port: getEnv("PORT", "8080"),

		TimezoneName: getEnv("LEADS_TIMEZONE", "America/Sao_Paulo"),
	}

	cfg.PartitionCandidates = splitList(getEnv(
		"LEAD_PARTITIONS", "leads_todos_imoveis,leads_lancamentos,sheet1"))
	cfg.Campaigns = splitList(getEnv(
		"LAUNCH_CAMPAIGNS", "Wind Oceanica,Tresor Camboinhas"))

	return cfg
}

// Location resolves the configured timezone, falling back to UTC if the
// name cannot be loaded.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimezoneName)
	if err != nil {
		log.Warnf("Unknown timezone %q, falling back to UTC: %v", c.TimezoneName, err)
		return time.UTC
	}
	return loc
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
