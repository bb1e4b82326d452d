package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GetIgnorePatterns reads and returns the patterns from the
// .litedoc-ignore file under the input root. If the file does not exist,
// it returns an empty pattern list.
func GetIgnorePatterns(root string) ([]string, error) {
	ignorePath := filepath.Join(root, ".litedoc-ignore")

	content, err := os.ReadFile(ignorePath)
	if os.IsNotExist(err) {
		return []string{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("error reading .litedoc-ignore: %w", err)
	}

	var patterns []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			patterns = append(patterns, line)
		}
	}
	return patterns, nil
}

// IsDefaultIgnored reports whether a relative path falls under the
// built-in ignore set: VCS metadata, build output, editor state.
func IsDefaultIgnored(path string) bool {
	ignorePatterns := []string{
		".git",
		".svn",
		".idea",
		".vscode",
		".cache",
		"bin",
		"obj",
		"dist",
		"out",
		"node_modules",
	}

	parts := strings.Split(path, string(filepath.Separator))
	for _, part := range parts {
		part = strings.ToLower(part)
		for _, pattern := range ignorePatterns {
			if part == pattern {
				return true
			}
		}
	}
	return false
}

// IsIgnored checks if a file path matches any of the user-supplied
// ignore patterns.
func IsIgnored(path string, patterns []string) bool {
	for _, pattern := range patterns {
		match, _ := filepath.Match(pattern, path)
		if match {
			return true
		}
		// Handle patterns like "dir/" that ignore entire directories
		if strings.HasSuffix(pattern, "/") && strings.HasPrefix(path, pattern) {
			return true
		}
	}
	return false
}

// HasSourceExtension reports whether the file carries one of the
// configured source extensions.
func HasSourceExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}
