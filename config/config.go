package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Load reads .env style files into the process environment. Variables
// already set are left alone and missing files are only logged.
func Load(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		log.Warn().Err(err).Msg("Could not load .env file")
	}
}

// New snapshots the process environment into a map.
func New() map[string]string {
	environ := os.Environ()
	env := make(map[string]string, len(environ))
	for _, entry := range environ {
		if key, value, ok := strings.Cut(entry, "="); ok && key != "" {
			env[key] = value
		}
	}
	return env
}

// GetString returns defaultValue for missing and empty keys.
func GetString(config map[string]string, key string, defaultValue string) string {
	if val := config[key]; val != "" {
		return val
	}
	return defaultValue
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	s, ok := config[key]
	if !ok {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}
	return n
}

// GetBool accepts the forms understood by strconv.ParseBool.
func GetBool(config map[string]string, key string, defaultValue bool) bool {
	s, ok := config[key]
	if !ok {
		return defaultValue
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}
	return b
}

// GetDuration reads values like "30s" or "5m". Bare integers are seconds.
func GetDuration(config map[string]string, key string, defaultValue time.Duration) time.Duration {
	s, ok := config[key]
	if !ok || strings.TrimSpace(s) == "" {
		return defaultValue
	}
	s = strings.TrimSpace(s)
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultValue
	}
	return d
}

// GetList splits a comma separated value, dropping empty entries.
func GetList(config map[string]string, key string, defaultValue []string) []string {
	s, ok := config[key]
	if !ok || strings.TrimSpace(s) == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
