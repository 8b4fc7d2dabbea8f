// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/runoshun/task-reminder/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// LogEntry is a single message captured by MockLogger.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
}

// MockLogger is a test double for domain.Logger that records every entry.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

func (m *MockLogger) add(level, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, Category: category, Msg: msg})
}

// Debug records a debug entry.
func (m *MockLogger) Debug(category, msg string) { m.add("DEBUG", category, msg) }

// Info records an info entry.
func (m *MockLogger) Info(category, msg string) { m.add("INFO", category, msg) }

// Warn records a warning entry.
func (m *MockLogger) Warn(category, msg string) { m.add("WARN", category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(category, msg string) { m.add("ERROR", category, msg) }

// Count returns how many entries were recorded at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockTokenGenerator is a test double for domain.TokenGenerator.
// It returns sequential, predictable tokens.
type MockTokenGenerator struct {
	CodeErr error
	Prefix  string
	taskN   int
	codeN   int
	mu      sync.Mutex
}

// NewTaskID returns task-1, task-2, ...
func (m *MockTokenGenerator) NewTaskID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.taskN++
	return fmt.Sprintf("%stask-%d", m.Prefix, m.taskN)
}

// NewVerificationCode returns code-1, code-2, ...
func (m *MockTokenGenerator) NewVerificationCode() (string, error) {
	if m.CodeErr != nil {
		return "", m.CodeErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codeN++
	return fmt.Sprintf("%scode-%d", m.Prefix, m.codeN), nil
}

// SentVerification records a SendVerification call.
type SentVerification struct {
	Email string
	Code  string
}

// SentReminder records a SendReminder call.
type SentReminder struct {
	Email string
	Tasks []domain.Task
}

// MockMailer is a test double for domain.Mailer.
// Fields are ordered to minimize memory padding.
type MockMailer struct {
	VerifyErr     error
	ReminderErrs  map[string]error // Per-recipient failures
	Verifications []SentVerification
	Reminders     []SentReminder
	mu            sync.Mutex
}

// SendVerification records the call.
func (m *MockMailer) SendVerification(_ context.Context, email, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.VerifyErr != nil {
		return m.VerifyErr
	}
	m.Verifications = append(m.Verifications, SentVerification{Email: email, Code: code})
	return nil
}

// SendReminder records the call.
func (m *MockMailer) SendReminder(_ context.Context, email string, tasks []domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ReminderErrs[email]; err != nil {
		return err
	}
	m.Reminders = append(m.Reminders, SentReminder{Email: email, Tasks: slices.Clone(tasks)})
	return nil
}

// MockCollectionStore is an in-memory test double for domain.CollectionStore.
// Loads return copies so callers cannot mutate stored state without saving.
// Fields are ordered to minimize memory padding.
type MockCollectionStore struct {
	Tasks           []domain.Task
	Subscribers     []string
	Pending         map[string]domain.PendingSubscription
	SaveTasksErr    error
	SaveSubsErr     error
	SavePendingErr  error
	LockErr         error
	TaskSaves       int
	SubscriberSaves int
	PendingSaves    int
	Locks           [][]domain.Collection
	mu              sync.Mutex
}

// NewMockCollectionStore creates an empty MockCollectionStore.
func NewMockCollectionStore() *MockCollectionStore {
	return &MockCollectionStore{
		Tasks:       []domain.Task{},
		Subscribers: []string{},
		Pending:     make(map[string]domain.PendingSubscription),
	}
}

// LoadTasks returns a copy of the stored tasks.
func (m *MockCollectionStore) LoadTasks() []domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Task{}, m.Tasks...)
}

// SaveTasks stores a copy of tasks.
func (m *MockCollectionStore) SaveTasks(tasks []domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveTasksErr != nil {
		return m.SaveTasksErr
	}
	m.TaskSaves++
	m.Tasks = append([]domain.Task{}, tasks...)
	return nil
}

// LoadSubscribers returns a copy of the stored subscribers.
func (m *MockCollectionStore) LoadSubscribers() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.Subscribers...)
}

// SaveSubscribers stores a copy of emails.
func (m *MockCollectionStore) SaveSubscribers(emails []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveSubsErr != nil {
		return m.SaveSubsErr
	}
	m.SubscriberSaves++
	m.Subscribers = append([]string{}, emails...)
	return nil
}

// LoadPendingSubscriptions returns a copy of the pending records.
func (m *MockCollectionStore) LoadPendingSubscriptions() map[string]domain.PendingSubscription {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.Pending)
}

// SavePendingSubscriptions stores a copy of pending.
func (m *MockCollectionStore) SavePendingSubscriptions(pending map[string]domain.PendingSubscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SavePendingErr != nil {
		return m.SavePendingErr
	}
	m.PendingSaves++
	m.Pending = maps.Clone(pending)
	if m.Pending == nil {
		m.Pending = make(map[string]domain.PendingSubscription)
	}
	return nil
}

// Lock records the requested collections.
func (m *MockCollectionStore) Lock(collections ...domain.Collection) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LockErr != nil {
		return nil, m.LockErr
	}
	m.Locks = append(m.Locks, slices.Clone(collections))
	return func() {}, nil
}

// MockStoreInitializer is a test double for domain.StoreInitializer.
type MockStoreInitializer struct {
	InitErr     error
	Initialized bool
	Calls       int
}

// Initialize marks the store initialized.
func (m *MockStoreInitializer) Initialize() error {
	m.Calls++
	if m.InitErr != nil {
		return m.InitErr
	}
	m.Initialized = true
	return nil
}

// IsInitialized reports the current state.
func (m *MockStoreInitializer) IsInitialized() bool {
	return m.Initialized
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitDataErr      error
	InitGlobalErr    error
	InitConfig       *domain.Config // Last config passed to an Init call
	DataConfigInfo   domain.ConfigInfo
	GlobalConfigInfo domain.ConfigInfo
	InitDataCalled   bool
	InitGlobalCalled bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{}
}

// GetDataConfigInfo returns DataConfigInfo.
func (m *MockConfigManager) GetDataConfigInfo() domain.ConfigInfo {
	return m.DataConfigInfo
}

// GetGlobalConfigInfo returns GlobalConfigInfo.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalConfigInfo
}

// InitDataConfig records the call.
func (m *MockConfigManager) InitDataConfig(cfg *domain.Config) error {
	m.InitDataCalled = true
	m.InitConfig = cfg
	return m.InitDataErr
}

// InitGlobalConfig records the call.
func (m *MockConfigManager) InitGlobalConfig(cfg *domain.Config) error {
	m.InitGlobalCalled = true
	m.InitConfig = cfg
	return m.InitGlobalErr
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config       *domain.Config
	GlobalConfig *domain.Config
	LoadErr      error
}

// NewMockConfigLoader creates a MockConfigLoader returning default configs.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{
		Config:       domain.NewDefaultConfig(),
		GlobalConfig: domain.NewDefaultConfig(),
	}
}

// Load returns Config.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// LoadGlobal returns GlobalConfig.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.GlobalConfig, nil
}
