package domain

import (
	"context"
	"time"
)

// Collection names one of the durably stored collections.
type Collection string

// Stored collections, in lock acquisition order.
const (
	CollectionTasks                Collection = "tasks"
	CollectionSubscribers          Collection = "subscribers"
	CollectionPendingSubscriptions Collection = "pending-subscriptions"
)

// Collections lists every collection in canonical order.
var Collections = []Collection{
	CollectionTasks,
	CollectionSubscribers,
	CollectionPendingSubscriptions,
}

// StoreInitializer initializes the data store.
type StoreInitializer interface {
	// Initialize creates the storage location and any missing empty collections.
	// It is idempotent.
	Initialize() error

	// IsInitialized checks whether every collection exists.
	IsInitialized() bool
}

// CollectionStore loads and rewrites whole collections.
// Loads never fail: unreadable content is logged and treated as empty.
// Saves replace the collection in full and return any write failure.
type CollectionStore interface {
	LoadTasks() []Task
	SaveTasks(tasks []Task) error

	LoadSubscribers() []string
	SaveSubscribers(emails []string) error

	LoadPendingSubscriptions() map[string]PendingSubscription
	SavePendingSubscriptions(pending map[string]PendingSubscription) error

	// Lock acquires exclusive write access to the given collections for the
	// span of a load-mutate-save sequence. The returned func releases it.
	Lock(collections ...Collection) (unlock func(), err error)
}

// TokenGenerator produces identifiers that must not be guessable or collide.
type TokenGenerator interface {
	// NewTaskID returns a fresh task identifier.
	NewTaskID() string

	// NewVerificationCode returns a fresh single-use verification code.
	NewVerificationCode() (string, error)
}

// Mailer delivers verification and reminder messages.
type Mailer interface {
	// SendVerification sends the verification code to email.
	SendVerification(ctx context.Context, email, code string) error

	// SendReminder sends the list of pending tasks to email.
	SendReminder(ctx context.Context, email string, tasks []Task) error
}

// Logger records diagnostics by category.
type Logger interface {
	Debug(category, msg string)
	Info(category, msg string)
	Warn(category, msg string)
	Error(category, msg string)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, string) {}
func (NopLogger) Info(string, string)  {}
func (NopLogger) Warn(string, string)  {}
func (NopLogger) Error(string, string) {}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (data dir + global).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	// GetDataConfigInfo returns information about the data directory config file.
	GetDataConfigInfo() ConfigInfo

	// GetGlobalConfigInfo returns information about the global config file.
	GetGlobalConfigInfo() ConfigInfo

	// InitDataConfig creates a data directory config file with the default template.
	InitDataConfig(cfg *Config) error

	// InitGlobalConfig creates a global config file with the default template.
	InitGlobalConfig(cfg *Config) error
}

// ConfigInfo describes a config file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
