// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/runoshun/task-reminder/internal/domain"
	"github.com/runoshun/task-reminder/internal/infra/config"
	"github.com/runoshun/task-reminder/internal/infra/filestore"
	"github.com/runoshun/task-reminder/internal/infra/logging"
	"github.com/runoshun/task-reminder/internal/infra/mail"
	"github.com/runoshun/task-reminder/internal/infra/token"
	"github.com/runoshun/task-reminder/internal/service"
	"github.com/runoshun/task-reminder/internal/usecase"
	"github.com/runoshun/task-reminder/internal/web"
)

// Config holds the application configuration paths.
type Config struct {
	DataDir string // Directory holding the collections, config.toml and logs
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Store            domain.CollectionStore
	StoreInitializer domain.StoreInitializer
	Tokens           domain.TokenGenerator
	Mailer           domain.Mailer
	Clock            domain.Clock
	ConfigLoader     domain.ConfigLoader
	ConfigManager    domain.ConfigManager
	Logger           domain.Logger

	// Pointer fields
	AppConfig  *domain.Config
	SlogLogger *slog.Logger
	closeLog   func() error

	// Configuration
	Config Config
}

// New creates a new Container for the given data directory.
func New(dataDir string) (*Container, error) {
	abs, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("resolve data directory: %w", err)
	}
	cfg := Config{DataDir: abs}

	configLoader := config.NewLoader(cfg.DataDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := logging.ParseLevel(appConfig.Log.Level)
	fileLogger := logging.New(cfg.DataDir, level)

	codec, err := filestore.CodecFor(appConfig.Storage.Format)
	if err != nil {
		return nil, err
	}
	store := filestore.New(cfg.DataDir, filestore.Options{
		Codec:          codec,
		Logger:         fileLogger,
		DisableLocking: !appConfig.Storage.LockingEnabled(),
	})

	tokens, err := token.New(0)
	if err != nil {
		return nil, err
	}

	clock := domain.RealClock{}
	transport, err := mail.NewTransport(appConfig.Mail, cfg.DataDir, clock)
	if err != nil {
		return nil, err
	}
	mailer := mail.New(transport, appConfig.Mail.From, appConfig.Server.BaseURL, clock, fileLogger)

	slogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	return &Container{
		Store:            store,
		StoreInitializer: store,
		Tokens:           tokens,
		Mailer:           mailer,
		Clock:            clock,
		ConfigLoader:     configLoader,
		ConfigManager:    config.NewManager(cfg.DataDir),
		Logger:           fileLogger,
		AppConfig:        appConfig,
		SlogLogger:       slogger,
		closeLog:         fileLogger.Close,
		Config:           cfg,
	}, nil
}

// Deps are the ports NewWithDeps binds. Nil fields fall back to test-friendly defaults.
type Deps struct {
	Store            domain.CollectionStore
	StoreInitializer domain.StoreInitializer
	Tokens           domain.TokenGenerator
	Mailer           domain.Mailer
	Clock            domain.Clock
	ConfigLoader     domain.ConfigLoader
	ConfigManager    domain.ConfigManager
	Logger           domain.Logger
	AppConfig        *domain.Config
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, deps Deps) *Container {
	c := &Container{
		Store:            deps.Store,
		StoreInitializer: deps.StoreInitializer,
		Tokens:           deps.Tokens,
		Mailer:           deps.Mailer,
		Clock:            deps.Clock,
		ConfigLoader:     deps.ConfigLoader,
		ConfigManager:    deps.ConfigManager,
		Logger:           deps.Logger,
		AppConfig:        deps.AppConfig,
		SlogLogger:       slog.New(slog.NewTextHandler(os.Stderr, nil)),
		Config:           cfg,
	}
	if c.Clock == nil {
		c.Clock = domain.RealClock{}
	}
	if c.Logger == nil {
		c.Logger = domain.NopLogger{}
	}
	if c.AppConfig == nil {
		c.AppConfig = domain.NewDefaultConfig()
	}
	return c
}

// MirrorLog copies file log entries to w as well.
func (c *Container) MirrorLog(w io.Writer) {
	if l, ok := c.Logger.(*logging.Logger); ok {
		l.Mirror(w)
	}
}

// Close releases the log file.
func (c *Container) Close() error {
	if c.closeLog == nil {
		return nil
	}
	return c.closeLog()
}

// EnsureInitialized creates the data directory and any missing collection.
// Existing collections are left untouched.
func (c *Container) EnsureInitialized() error {
	if c.StoreInitializer == nil || c.StoreInitializer.IsInitialized() {
		return nil
	}
	if err := c.StoreInitializer.Initialize(); err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	return nil
}

// Services

// TaskService returns the task service.
func (c *Container) TaskService() *service.Tasks {
	return service.NewTasks(c.Store, c.Tokens, c.Logger)
}

// SubscriptionService returns the subscription service.
func (c *Container) SubscriptionService() *service.Subscriptions {
	return service.NewSubscriptions(c.Store, c.Tokens, c.Mailer, c.Clock, c.Logger)
}

// WebServer returns the HTTP server.
func (c *Container) WebServer() *web.Server {
	return web.NewServer(web.Config{
		Tasks:         c.TaskService(),
		Subscriptions: c.SubscriptionService(),
		Logger:        c.SlogLogger,
		StaticDir:     c.AppConfig.Server.StaticDir,
	})
}

// UseCase factory methods

// InitStoreUseCase returns a new InitStore use case.
func (c *Container) InitStoreUseCase() *usecase.InitStore {
	return usecase.NewInitStore(c.StoreInitializer)
}

// AddTaskUseCase returns a new AddTask use case.
func (c *Container) AddTaskUseCase() *usecase.AddTask {
	return usecase.NewAddTask(c.Store, c.Tokens, c.Logger)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Store)
}

// ShowTaskUseCase returns a new ShowTask use case.
func (c *Container) ShowTaskUseCase() *usecase.ShowTask {
	return usecase.NewShowTask(c.Store)
}

// CompleteTaskUseCase returns a new CompleteTask use case.
func (c *Container) CompleteTaskUseCase() *usecase.CompleteTask {
	return usecase.NewCompleteTask(c.Store, c.Logger)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Store, c.Logger)
}

// SubscribeEmailUseCase returns a new SubscribeEmail use case.
func (c *Container) SubscribeEmailUseCase() *usecase.SubscribeEmail {
	return usecase.NewSubscribeEmail(c.Store, c.Tokens, c.Mailer, c.Clock, c.Logger)
}

// VerifySubscriptionUseCase returns a new VerifySubscription use case.
func (c *Container) VerifySubscriptionUseCase() *usecase.VerifySubscription {
	return usecase.NewVerifySubscription(c.Store, c.Logger)
}

// UnsubscribeEmailUseCase returns a new UnsubscribeEmail use case.
func (c *Container) UnsubscribeEmailUseCase() *usecase.UnsubscribeEmail {
	return usecase.NewUnsubscribeEmail(c.Store, c.Logger)
}

// ListSubscribersUseCase returns a new ListSubscribers use case.
func (c *Container) ListSubscribersUseCase() *usecase.ListSubscribers {
	return usecase.NewListSubscribers(c.Store)
}

// SendRemindersUseCase returns a new SendReminders use case.
func (c *Container) SendRemindersUseCase() *usecase.SendReminders {
	return usecase.NewSendReminders(c.Store, c.Mailer, c.Logger)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// ShowConfigTemplateUseCase returns a new ShowConfigTemplate use case.
func (c *Container) ShowConfigTemplateUseCase() *usecase.ShowConfigTemplate {
	return usecase.NewShowConfigTemplate()
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}
