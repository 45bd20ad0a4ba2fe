package util

import (
	"os"
	"strings"
)

// GetEnv returns the value of the environment variable named by key or def if empty.
func GetEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// GetEnvList splits a comma separated environment variable, trimming blanks.
// def is used when the variable is unset.
func GetEnvList(key, def string) []string {
	raw := GetEnv(key, def)
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
