package config

import (
	"os"
	"strconv"
)

// Environment variable keys
const (
	EnvCatalogURL      = "TIMETABLER_CATALOG_URL"
	EnvPageSize        = "TIMETABLER_PAGE_SIZE"
	EnvListenAddr      = "TIMETABLER_LISTEN_ADDR"
	EnvLogLevel        = "TIMETABLER_LOG_LEVEL"
	EnvSnapshotTTL     = "TIMETABLER_SNAPSHOT_TTL"
	EnvDisableSnapshot = "TIMETABLER_DISABLE_SNAPSHOT"
)

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func GetInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
