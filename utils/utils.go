// utils/utils.go
package utils

import (
	"path/filepath"
	"strings"
)

// TrimLineEnding removes one trailing "\n" or "\r\n" from a line read with its terminator.
func TrimLineEnding(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// SplitAndTrim splits a comma-separated list and drops empty entries.
func SplitAndTrim(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	cleanedParts := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			cleanedParts = append(cleanedParts, trimmed)
		}
	}
	return cleanedParts
}

// SlashRelative returns path relative to root using forward slashes, the form
// glob and .gitignore patterns are written in.
func SlashRelative(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
