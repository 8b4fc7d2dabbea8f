package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"text/template"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string      `toml:"-"`       // Unknown keys found while loading
	Mail     MailConfig    `toml:"mail"`    // [mail] settings
	Server   ServerConfig  `toml:"server"`  // [server] settings
	Storage  StorageConfig `toml:"storage"` // [storage] settings
	Log      LogConfig     `toml:"log"`     // [log] settings
}

// StorageConfig holds collection store settings from [storage] section.
type StorageConfig struct {
	Format  string `toml:"format"`  // Collection codec: json or yaml
	Locking *bool  `toml:"locking"` // Serialize writers (nil = default true)
}

// LockingEnabled reports whether writers are serialized.
func (s StorageConfig) LockingEnabled() bool {
	return s.Locking == nil || *s.Locking
}

// ServerConfig holds HTTP settings from [server] section.
type ServerConfig struct {
	Addr      string `toml:"addr"`       // Listen address
	StaticDir string `toml:"static_dir"` // Directory served at /
	BaseURL   string `toml:"base_url"`   // Public URL used in mail links
}

// MailConfig holds outgoing mail settings from [mail] section.
// Fields are ordered to minimize memory padding.
type MailConfig struct {
	From         string `toml:"from"`          // Sender address
	Transport    string `toml:"transport"`     // outbox or smtp
	OutboxDir    string `toml:"outbox_dir"`    // Directory for outbox transport (relative to data dir)
	SMTPHost     string `toml:"smtp_host"`     // SMTP server host
	SMTPUsername string `toml:"smtp_username"` // SMTP PLAIN auth user (empty = no auth)
	SMTPPassword string `toml:"smtp_password"` // SMTP PLAIN auth password
	SMTPPort     int    `toml:"smtp_port"`     // SMTP server port
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level"` // Log level: debug, info, warn, error
}

// Default configuration values.
const (
	DefaultStorageFormat = "json"
	DefaultServerAddr    = ":8080"
	DefaultStaticDir     = "static"
	DefaultBaseURL       = "http://localhost:8080"
	DefaultMailFrom      = "reminders@localhost"
	DefaultMailTransport = MailTransportOutbox
	DefaultOutboxDir     = "outbox"
	DefaultSMTPPort      = 587
	DefaultLogLevel      = "info"
)

// Mail transports.
const (
	MailTransportOutbox = "outbox"
	MailTransportSMTP   = "smtp"
)

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Format: DefaultStorageFormat,
		},
		Server: ServerConfig{
			Addr:      DefaultServerAddr,
			StaticDir: DefaultStaticDir,
			BaseURL:   DefaultBaseURL,
		},
		Mail: MailConfig{
			From:      DefaultMailFrom,
			Transport: DefaultMailTransport,
			OutboxDir: DefaultOutboxDir,
			SMTPPort:  DefaultSMTPPort,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Directory and file names.
const (
	AppDirName     = "task-reminder" // Global config directory name
	ConfigFileName = "config.toml"   // Config file name
	LogsDirName    = "logs"          // Log directory inside the data dir
	LogFileName    = "reminder.log"  // Log file name
)

// DataConfigPath returns the config path inside a data directory.
func DataConfigPath(dataDir string) string {
	return filepath.Join(dataDir, ConfigFileName)
}

// GlobalAppDir returns the global config directory path.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalAppDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalAppDir(configHome), ConfigFileName)
}

// LogPath returns the path to the log file.
func LogPath(dataDir string) string {
	return filepath.Join(dataDir, LogsDirName, LogFileName)
}

// ResolvePath returns p unchanged if absolute, otherwise joined to base.
func ResolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// RenderConfigTemplate renders the commented config template with cfg's values.
func RenderConfigTemplate(cfg *Config) string {
	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}
	return buf.String()
}
