package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	dirName  = "recordterm"
	fileName = "config.yaml"

	// DefaultTitle is the heading shown above the record form.
	DefaultTitle = "Student Form"
)

// Store manages the runtime configuration for the record manager.
type Store struct {
	path   string
	Config Data

	// saved mirrors the file; fields overridden for this run are written
	// back from here instead of from Config.
	saved          Data
	strictOverride bool
	levelOverride  bool
}

// Data represents persisted user preferences.
type Data struct {
	Title            string `yaml:"title"`
	StrictValidation bool   `yaml:"strict_validation"`
	LogLevel         string `yaml:"log_level"`
	LogFile          string `yaml:"log_file"`
}

// Load retrieves the config from the default location, creating defaults if needed.
func Load() (*Store, error) {
	cfgPath, err := resolvePath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(cfgPath)
}

// LoadFrom retrieves the config at path, writing defaults when the file is missing.
func LoadFrom(cfgPath string) (*Store, error) {
	cfg := Data{}
	if _, err := os.Stat(cfgPath); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config: %w", err)
		}
		cfg = defaultConfig(cfgPath)
		if err := writeConfig(cfgPath, cfg); err != nil {
			return nil, err
		}
	} else {
		bytes, err := os.ReadFile(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(bytes, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if strings.TrimSpace(cfg.Title) == "" {
		cfg.Title = DefaultTitle
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = log.InfoLevel.String()
	}
	if cfg.LogFile == "" {
		cfg.LogFile = defaultLogFile(cfgPath)
	}

	return &Store{path: cfgPath, Config: cfg, saved: cfg}, nil
}

// Save writes the current config values to disk.
func (s *Store) Save() error {
	if s == nil {
		return errors.New("nil config store")
	}
	out := s.Config
	if s.strictOverride {
		out.StrictValidation = s.saved.StrictValidation
	}
	if s.levelOverride {
		out.LogLevel = s.saved.LogLevel
	}
	if err := writeConfig(s.path, out); err != nil {
		return err
	}
	s.saved = out
	return nil
}

// OverrideStrict sets strict validation for this run without saving it.
func (s *Store) OverrideStrict(on bool) {
	s.Config.StrictValidation = on
	s.strictOverride = true
}

// OverrideLevel sets the log level for this run without saving it.
func (s *Store) OverrideLevel(name string) error {
	lvl, err := parseLevel(name)
	if err != nil {
		return err
	}
	s.Config.LogLevel = lvl.String()
	s.levelOverride = true
	return nil
}

// SetStrict changes strict validation; the next Save persists it.
func (s *Store) SetStrict(on bool) {
	s.Config.StrictValidation = on
	s.strictOverride = false
}

// Path returns the file the store reads from and saves to.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Level returns the configured log level, defaulting to info on error.
func (s *Store) Level() log.Level {
	if s == nil {
		return log.InfoLevel
	}
	if lvl, err := log.ParseLevel(s.Config.LogLevel); err == nil {
		return lvl
	}
	return log.InfoLevel
}

// SetLevel validates and stores a log level name; the next Save persists it.
func (s *Store) SetLevel(name string) error {
	lvl, err := parseLevel(name)
	if err != nil {
		return err
	}
	s.Config.LogLevel = lvl.String()
	s.levelOverride = false
	return nil
}

func parseLevel(name string) (log.Level, error) {
	lvl, err := log.ParseLevel(strings.TrimSpace(name))
	if err != nil {
		return lvl, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}

func resolvePath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		base = os.Getenv("HOME")
		if base == "" {
			return "", fmt.Errorf("cannot resolve config directory: %w", err)
		}
	}
	return filepath.Join(base, dirName, fileName), nil
}

func writeConfig(path string, cfg Data) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	bytes, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, bytes, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func defaultConfig(cfgPath string) Data {
	return Data{
		Title:    DefaultTitle,
		LogLevel: log.InfoLevel.String(),
		LogFile:  defaultLogFile(cfgPath),
	}
}

func defaultLogFile(cfgPath string) string {
	return filepath.Join(filepath.Dir(cfgPath), "recordterm.log")
}
