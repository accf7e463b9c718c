package config

import (
	"os"
)

type Config struct {
	DatabasePath  string
	ServerAddress string
}

func Load() *Config {
	return &Config{
		DatabasePath:  getEnv("DATABASE_PATH", "./opladen-thuis.db"),
		ServerAddress: getEnv("SERVER_ADDRESS", ":8081"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
