// Package filestore provides the flat-file implementation of domain.CollectionStore.
// Each collection lives in its own file and is always rewritten in full.
package filestore

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/runoshun/task-reminder/internal/domain"
)

// Ensure Store implements the store ports.
var (
	_ domain.CollectionStore  = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)

const logCategory = "store"

// baseNames maps each collection to its file name without extension.
var baseNames = map[domain.Collection]string{
	domain.CollectionTasks:                "tasks",
	domain.CollectionSubscribers:          "subscribers",
	domain.CollectionPendingSubscriptions: "pending_subscriptions",
}

// Options configures a Store.
type Options struct {
	Codec  Codec         // nil = JSON
	Logger domain.Logger // nil = discard
	// DisableLocking turns Lock into a no-op. Concurrent writers can then
	// overwrite each other's changes.
	DisableLocking bool
}

// Store keeps the task, subscriber and pending-subscription collections
// under a single directory.
// Fields are ordered to minimize memory padding.
type Store struct {
	codec   Codec
	logger  domain.Logger
	mutexes map[domain.Collection]*sync.Mutex
	dir     string
	locking bool
}

// New creates a new Store rooted at dir.
// The directory does not need to exist; Initialize creates it.
func New(dir string, opts Options) *Store {
	codec := opts.Codec
	if codec == nil {
		codec = JSONCodec{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = domain.NopLogger{}
	}
	mutexes := make(map[domain.Collection]*sync.Mutex, len(domain.Collections))
	for _, c := range domain.Collections {
		mutexes[c] = &sync.Mutex{}
	}
	return &Store{
		dir:     dir,
		codec:   codec,
		logger:  logger,
		mutexes: mutexes,
		locking: !opts.DisableLocking,
	}
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file holding collection c.
func (s *Store) Path(c domain.Collection) string {
	return filepath.Join(s.dir, baseNames[c]+"."+s.codec.Ext())
}

func (s *Store) lockPath(c domain.Collection) string {
	return filepath.Join(s.dir, "."+baseNames[c]+".lock")
}

// === Tasks ===

// LoadTasks returns the stored tasks in insertion order.
func (s *Store) LoadTasks() []domain.Task {
	var tasks []domain.Task
	if err := s.load(domain.CollectionTasks, &tasks); err != nil {
		s.logLoadError("tasks", err)
		return []domain.Task{}
	}
	if tasks == nil {
		return []domain.Task{}
	}
	return tasks
}

// SaveTasks replaces the stored tasks.
func (s *Store) SaveTasks(tasks []domain.Task) error {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	if err := s.write(domain.CollectionTasks, tasks); err != nil {
		return fmt.Errorf("write tasks: %w", err)
	}
	return nil
}

// === Subscribers ===

// LoadSubscribers returns the confirmed subscriber emails.
func (s *Store) LoadSubscribers() []string {
	var emails []string
	if err := s.load(domain.CollectionSubscribers, &emails); err != nil {
		s.logLoadError("subscribers", err)
		return []string{}
	}
	if emails == nil {
		return []string{}
	}
	return domain.UniqueEmails(emails)
}

// SaveSubscribers replaces the confirmed subscriber set.
// Duplicates are dropped, keeping first-seen order.
func (s *Store) SaveSubscribers(emails []string) error {
	if err := s.write(domain.CollectionSubscribers, domain.UniqueEmails(emails)); err != nil {
		return fmt.Errorf("write subscribers: %w", err)
	}
	return nil
}

// === Pending subscriptions ===

// LoadPendingSubscriptions returns pending verification records keyed by email.
func (s *Store) LoadPendingSubscriptions() map[string]domain.PendingSubscription {
	var pending map[string]domain.PendingSubscription
	if err := s.load(domain.CollectionPendingSubscriptions, &pending); err != nil {
		s.logLoadError("pending subscriptions", err)
		return make(map[string]domain.PendingSubscription)
	}
	if pending == nil {
		return make(map[string]domain.PendingSubscription)
	}
	return pending
}

// SavePendingSubscriptions replaces the pending verification records.
func (s *Store) SavePendingSubscriptions(pending map[string]domain.PendingSubscription) error {
	if pending == nil {
		pending = make(map[string]domain.PendingSubscription)
	}
	if err := s.write(domain.CollectionPendingSubscriptions, pending); err != nil {
		return fmt.Errorf("write pending subscriptions: %w", err)
	}
	return nil
}

// === Initialization ===

// IsInitialized checks if every collection file exists.
func (s *Store) IsInitialized() bool {
	for _, c := range domain.Collections {
		if _, err := os.Stat(s.Path(c)); err != nil {
			return false
		}
	}
	return true
}

// Initialize creates the data directory and writes an empty collection for
// every file that does not exist yet. Existing files are left untouched.
func (s *Store) Initialize() error {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	empties := map[domain.Collection]any{
		domain.CollectionTasks:                []domain.Task{},
		domain.CollectionSubscribers:          []string{},
		domain.CollectionPendingSubscriptions: map[string]domain.PendingSubscription{},
	}
	for _, c := range domain.Collections {
		if _, err := os.Stat(s.Path(c)); err == nil {
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", c, err)
		}
		if err := s.write(c, empties[c]); err != nil {
			return fmt.Errorf("initialize %s: %w", c, err)
		}
		s.logger.Info(logCategory, fmt.Sprintf("created empty %s collection", c))
	}
	return nil
}

// === Locking ===

// Lock acquires exclusive write access to the given collections, in canonical
// order, and returns a func that releases them. The lock is both an in-process
// mutex and an advisory flock on a sidecar file, so other processes sharing
// the data directory are serialized too.
func (s *Store) Lock(collections ...domain.Collection) (func(), error) {
	if !s.locking {
		return func() {}, nil
	}

	wanted := make(map[domain.Collection]bool, len(collections))
	for _, c := range collections {
		if _, ok := s.mutexes[c]; !ok {
			return nil, fmt.Errorf("lock: unknown collection %q", c)
		}
		wanted[c] = true
	}

	var releases []func()
	releaseAll := func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
		releases = nil
	}

	for _, c := range domain.Collections {
		if !wanted[c] {
			continue
		}
		mu := s.mutexes[c]
		mu.Lock()
		f, err := s.acquireFileLock(c)
		if err != nil {
			mu.Unlock()
			releaseAll()
			return nil, err
		}
		releases = append(releases, func() {
			releaseFileLock(f)
			mu.Unlock()
		})
	}

	var once sync.Once
	return func() { once.Do(releaseAll) }, nil
}

func (s *Store) acquireFileLock(c domain.Collection) (*os.File, error) {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath(c), os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), syscall.LOCK_EX); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func releaseFileLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

// === File I/O ===

// load decodes collection c into v. An empty or whitespace-only file leaves v untouched.
func (s *Store) load(c domain.Collection, v any) error {
	content, err := os.ReadFile(s.Path(c))
	if err != nil {
		return fmt.Errorf("read %s: %w", s.Path(c), err)
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return nil
	}
	if err := s.codec.Unmarshal(content, v); err != nil {
		return fmt.Errorf("parse %s: %w", s.Path(c), err)
	}
	return nil
}

func (s *Store) logLoadError(what string, err error) {
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Warn(logCategory, fmt.Sprintf("load %s: %v (treating as empty)", what, err))
		return
	}
	s.logger.Error(logCategory, fmt.Sprintf("load %s: %v (treating as empty)", what, err))
}

// write replaces collection c with v.
// The content goes to a temp file in the same directory first, then is renamed
// over the target, so readers see either the old or the new collection.
func (s *Store) write(c domain.Collection, v any) error {
	content, err := s.codec.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", c, err)
	}

	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+baseNames[c]+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.Path(c)); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
