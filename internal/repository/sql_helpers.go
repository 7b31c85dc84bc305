package repository

import (
	"strings"
	"time"
)

func formatTime(value time.Time) string {
	return value.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, value)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// joinURLs serializes a URL history list to its stored newline-joined form.
func joinURLs(urls []string) string {
	return strings.Join(urls, "\n")
}

// splitURLs parses a stored newline-joined URL history, dropping blanks.
func splitURLs(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "\n")
	urls := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}
	if len(urls) == 0 {
		return nil
	}
	return urls
}
