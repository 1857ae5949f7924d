package config

import "os"

// Get returns the value of an environment variable, or fallback when unset
// or empty. Call godotenv.Load before using this in a composition root.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
