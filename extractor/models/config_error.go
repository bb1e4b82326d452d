package models

import "fmt"

// ConfigError is fatal to the whole run and is reported before any
// per-file processing starts: unreadable input/output root, or a
// conditional directive referencing a symbol absent from the configured
// symbol table.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

func ConfigErrorf(format string, args ...interface{}) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}
