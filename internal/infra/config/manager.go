package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/runoshun/task-reminder/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages configuration files.
type Manager struct {
	dataDir       string // Path to the data directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/task-reminder)
}

// NewManager creates a new Manager.
func NewManager(dataDir string) *Manager {
	return &Manager{
		dataDir:       dataDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewManagerWithGlobalDir creates a new Manager with a custom global config directory.
// This is useful for testing.
func NewManagerWithGlobalDir(dataDir, globalConfDir string) *Manager {
	return &Manager{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// GetDataConfigInfo returns information about the data directory config file.
func (m *Manager) GetDataConfigInfo() domain.ConfigInfo {
	return m.getConfigInfo(domain.DataConfigPath(m.dataDir))
}

// GetGlobalConfigInfo returns information about the global config file.
func (m *Manager) GetGlobalConfigInfo() domain.ConfigInfo {
	if m.globalConfDir == "" {
		return domain.ConfigInfo{
			Path:   "",
			Exists: false,
		}
	}
	path := filepath.Join(m.globalConfDir, domain.ConfigFileName)
	return m.getConfigInfo(path)
}

// getConfigInfo reads a config file and returns its info.
func (m *Manager) getConfigInfo(path string) domain.ConfigInfo {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.ConfigInfo{
			Path:   path,
			Exists: false,
		}
	}
	return domain.ConfigInfo{
		Path:    path,
		Content: string(content),
		Exists:  true,
	}
}

// InitDataConfig writes config.toml into the data directory, creating the directory if needed.
func (m *Manager) InitDataConfig(cfg *domain.Config) error {
	if err := os.MkdirAll(m.dataDir, 0o750); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	return writeNewConfig(domain.DataConfigPath(m.dataDir), cfg)
}

// InitGlobalConfig writes the global config.toml.
func (m *Manager) InitGlobalConfig(cfg *domain.Config) error {
	if m.globalConfDir == "" {
		return errors.New("global config directory not available")
	}
	if err := os.MkdirAll(m.globalConfDir, 0o700); err != nil {
		return fmt.Errorf("create global config directory: %w", err)
	}
	return writeNewConfig(filepath.Join(m.globalConfDir, domain.ConfigFileName), cfg)
}

// writeNewConfig renders cfg into path. An existing file is never overwritten.
func writeNewConfig(path string, cfg *domain.Config) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, fs.ErrExist) {
		return domain.ErrConfigExists
	}
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	_, werr := f.WriteString(domain.RenderConfigTemplate(cfg))
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return fmt.Errorf("write %s: %w", path, werr)
	}
	return nil
}
