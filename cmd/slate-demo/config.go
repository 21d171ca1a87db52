package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "slate"
	prefsFile  = "demo.yaml"
	prefsModel = 1
)

// Preferences are the stored defaults for demo runs. Command-line flags
// override them per invocation.
type Preferences struct {
	Version    int    `yaml:"version"`
	LogName    string `yaml:"log_name,omitempty"`
	LogLevel   int    `yaml:"log_level"`
	SyslogAddr string `yaml:"syslog_addr,omitempty"`
	Simple     bool   `yaml:"simple,omitempty"`
}

// DefaultPreferences returns the out-of-the-box demo configuration.
func DefaultPreferences() *Preferences {
	return &Preferences{
		Version:  prefsModel,
		LogLevel: 4,
	}
}

// PrefsDir returns the OS-appropriate configuration directory:
//   - Linux: $XDG_CONFIG_HOME/slate or $HOME/.config/slate
//   - macOS: $HOME/.config/slate
//   - Windows: %LOCALAPPDATA%\slate
func PrefsDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			return filepath.Join(userProfile, "AppData", "Local", appName), nil
		}
		return filepath.Join(localAppData, appName), nil

	default:
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			return filepath.Join(xdgConfigHome, appName), nil
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(homeDir, ".config", appName), nil
	}
}

// PrefsPath returns the full path to the preferences file.
func PrefsPath() (string, error) {
	dir, err := PrefsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, prefsFile), nil
}

// LoadPreferences reads the stored preferences, returning defaults when no
// file exists yet.
func LoadPreferences() (*Preferences, error) {
	path, err := PrefsPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultPreferences(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}

	var prefs Preferences
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("failed to parse preferences: %w", err)
	}
	if prefs.Version != prefsModel {
		return nil, fmt.Errorf("unsupported preferences version: %d (expected %d)", prefs.Version, prefsModel)
	}
	return &prefs, nil
}

// Save writes the preferences to disk with an atomic rename.
func (p *Preferences) Save() error {
	dir, err := PrefsDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	path := filepath.Join(dir, prefsFile)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary preferences file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}
