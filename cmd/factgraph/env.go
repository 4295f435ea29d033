package main

import (
	"github.com/joho/godotenv"
	"os"
	"strconv"
)

// Environment variables
const (
	envDebug    = "FACTGRAPH_DEBUG"
	envRules    = "FACTGRAPH_RULES"
	envLayout   = "FACTGRAPH_LAYOUT"
	envStrategy = "FACTGRAPH_STRATEGY"
)

// loadEnv loads .env when present, system variables take precedence
func loadEnv() bool {
	return godotenv.Load() == nil
}

func getEnvString(key string, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	result, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return result
}
