package config

import (
	"os"
	"strconv"
)

// ApplyEnv overrides file-derived settings from environment variables.
// PORT matches the original deployment convention.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("SCHEDULER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if _, err := strconv.Atoi(v); err == nil {
			c.Server.Addr = ":" + v
		}
	}
	if v := os.Getenv("SCHEDULER_DATA_DIR"); v != "" {
		c.Data.Dir = v
	}
	if v := getEnvInt("SCHEDULER_SWEEP_INTERVAL_SECONDS"); v > 0 {
		c.Sweep.IntervalSeconds = v
	}
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}
