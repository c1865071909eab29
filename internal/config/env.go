package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// lookup returns the trimmed value of k, or "" when unset or blank.
func lookup(k string) string {
	v, _ := os.LookupEnv(k)
	return strings.TrimSpace(v)
}

func getenv(k, def string) string {
	if v := lookup(k); v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if f, err := strconv.ParseFloat(lookup(k), 64); err == nil {
		return f
	}
	return def
}

func getint(k string, def int) int {
	if i, err := strconv.Atoi(lookup(k)); err == nil {
		return i
	}
	return def
}

func getbool(k string, def bool) bool {
	switch strings.ToLower(lookup(k)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	}
	return def
}

// getdur accepts Go durations ("90s", "24h") or a bare number of seconds.
func getdur(k string, def time.Duration) time.Duration {
	v := lookup(k)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures a leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	return "/" + p
}
