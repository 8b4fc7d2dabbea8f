// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/task-reminder/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	dataDir       string // Path to the data directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/task-reminder)
}

// NewLoader creates a new Loader.
func NewLoader(dataDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(dataDir, globalConfDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalAppDir(configHome)
}

// Load returns the merged configuration (data directory + global).
// Data directory config takes precedence over global config.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	data, err := l.LoadData()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	// Merge: default <- global <- data (later takes precedence)
	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if data != nil {
		base = mergeConfigs(base, data)
	}

	if err := validate(base); err != nil {
		return nil, err
	}
	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// LoadData returns only the data directory configuration.
func (l *Loader) LoadData() (*domain.Config, error) {
	return l.loadFile(domain.DataConfigPath(l.dataDir))
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// validate rejects values that would only fail later, deep inside a command.
func validate(cfg *domain.Config) error {
	switch cfg.Storage.Format {
	case "json", "yaml", "yml":
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownCodec, cfg.Storage.Format)
	}
	switch cfg.Mail.Transport {
	case domain.MailTransportOutbox, domain.MailTransportSMTP:
	default:
		return fmt.Errorf("unknown mail transport: %q", cfg.Mail.Transport)
	}
	return nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
// Zero values mean "not set" and are skipped by mergeConfigs.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	unknown := func(section, key string) {
		warnings = append(warnings, fmt.Sprintf("unknown key in [%s]: %s", section, key))
	}

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}
		switch section {
		case "storage":
			for k, v := range m {
				switch k {
				case "format":
					res.Storage.Format = asString(v)
				case "locking":
					if b, ok := v.(bool); ok {
						res.Storage.Locking = &b
					}
				default:
					unknown(section, k)
				}
			}
		case "server":
			for k, v := range m {
				switch k {
				case "addr":
					res.Server.Addr = asString(v)
				case "static_dir":
					res.Server.StaticDir = asString(v)
				case "base_url":
					res.Server.BaseURL = asString(v)
				default:
					unknown(section, k)
				}
			}
		case "mail":
			for k, v := range m {
				switch k {
				case "from":
					res.Mail.From = asString(v)
				case "transport":
					res.Mail.Transport = asString(v)
				case "outbox_dir":
					res.Mail.OutboxDir = asString(v)
				case "smtp_host":
					res.Mail.SMTPHost = asString(v)
				case "smtp_port":
					if n, ok := v.(int64); ok {
						res.Mail.SMTPPort = int(n)
					}
				case "smtp_username":
					res.Mail.SMTPUsername = asString(v)
				case "smtp_password":
					res.Mail.SMTPPassword = asString(v)
				default:
					unknown(section, k)
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					res.Log.Level = asString(v)
				default:
					unknown(section, k)
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Storage:  base.Storage,
		Server:   base.Server,
		Mail:     base.Mail,
		Log:      base.Log,
		Warnings: append([]string{}, base.Warnings...),
	}

	result.Warnings = append(result.Warnings, override.Warnings...)

	if override.Storage.Format != "" {
		result.Storage.Format = override.Storage.Format
	}
	if override.Storage.Locking != nil {
		locking := *override.Storage.Locking
		result.Storage.Locking = &locking
	}
	if override.Server.Addr != "" {
		result.Server.Addr = override.Server.Addr
	}
	if override.Server.StaticDir != "" {
		result.Server.StaticDir = override.Server.StaticDir
	}
	if override.Server.BaseURL != "" {
		result.Server.BaseURL = override.Server.BaseURL
	}
	if override.Mail.From != "" {
		result.Mail.From = override.Mail.From
	}
	if override.Mail.Transport != "" {
		result.Mail.Transport = override.Mail.Transport
	}
	if override.Mail.OutboxDir != "" {
		result.Mail.OutboxDir = override.Mail.OutboxDir
	}
	if override.Mail.SMTPHost != "" {
		result.Mail.SMTPHost = override.Mail.SMTPHost
	}
	if override.Mail.SMTPPort != 0 {
		result.Mail.SMTPPort = override.Mail.SMTPPort
	}
	if override.Mail.SMTPUsername != "" {
		result.Mail.SMTPUsername = override.Mail.SMTPUsername
	}
	if override.Mail.SMTPPassword != "" {
		result.Mail.SMTPPassword = override.Mail.SMTPPassword
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}

	return result
}
