package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// ProjectConfigFile is the name of the project-level config file
	ProjectConfigFile = "woql.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/woql"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
)

// Loader handles configuration loading with layered precedence.
type Loader struct {
	logger  *slog.Logger
	homeDir string
	workDir string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithHomeDir overrides the directory the user config is read from.
func WithHomeDir(dir string) LoaderOption {
	return func(l *Loader) { l.homeDir = dir }
}

// WithWorkDir overrides the directory the project config is read from.
func WithWorkDir(dir string) LoaderOption {
	return func(l *Loader) { l.workDir = dir }
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *slog.Logger, opts ...LoaderOption) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Loader{logger: logger}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/woql/config.yaml)
// 3. Project config (woql.yaml in the working directory)
//
// A non-empty explicit path replaces both files and must exist.
func (l *Loader) Load(explicit string) (*Config, error) {
	config := DefaultConfig()

	if explicit != "" {
		file, err := readFile(explicit)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("loaded config", slog.String("path", explicit))
		config.Merge(file)
		if err := config.Validate(); err != nil {
			return nil, err
		}
		return config, nil
	}

	for _, path := range []string{l.userConfigPath(), l.projectConfigPath()} {
		if path == "" {
			continue
		}
		file, err := readFile(path)
		switch {
		case err == nil:
			l.logger.Debug("loaded config", slog.String("path", path))
			config.Merge(file)
		case errors.Is(err, fs.ErrNotExist):
			l.logger.Debug("no config file", slog.String("path", path))
		default:
			return nil, err
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (l *Loader) userConfigPath() string {
	home := l.homeDir
	if home == "" {
		var err error
		if home, err = os.UserHomeDir(); err != nil {
			return ""
		}
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

func (l *Loader) projectConfigPath() string {
	dir := l.workDir
	if dir == "" {
		var err error
		if dir, err = os.Getwd(); err != nil {
			return ""
		}
	}
	return filepath.Join(dir, ProjectConfigFile)
}
