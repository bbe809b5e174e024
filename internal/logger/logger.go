// Package logger writes a small append-only log next to the configuration.
// Until Init succeeds every call is a no-op.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	logFile *os.File
	mu      sync.Mutex
	enabled = true
)

const maxLogSize = 5 * 1024 * 1024 // 5MB

// Path is $XDG_CONFIG_HOME/idex/idex.log, else ~/.config/idex/idex.log.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "idex", "idex.log"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "idex", "idex.log"), nil
}

// Init opens the default log file.
func Init() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return InitAt(path)
}

// InitAt opens (or creates) the log at path, rotating it to path+".old" once
// it grows past 5MB.
func InitAt(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create log directory: %w", err)
	}

	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		oldPath := path + ".old"
		_ = os.Remove(oldPath)
		_ = os.Rename(path, oldPath)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = file
	return nil
}

// Close closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// Disable stops writing without closing the file.
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
}

func Info(format string, args ...any) {
	log("INFO", format, args...)
}

func Warn(format string, args ...any) {
	log("WARN", format, args...)
}

func Error(format string, args ...any) {
	log("ERROR", format, args...)
}

func log(level string, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || logFile == nil {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(logFile, "[%s] %s: %s\n", timestamp, level, message)
}
