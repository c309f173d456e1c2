package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/pileus-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/pileus-cli/internal/adapters/driven/pileus"
	"github.com/custodia-labs/pileus-cli/internal/adapters/driven/script"
	"github.com/custodia-labs/pileus-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pileus-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/pileus-cli/internal/core/domain"
	"github.com/custodia-labs/pileus-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pileus-cli/internal/core/services"
	"github.com/custodia-labs/pileus-cli/internal/logger"
)

// Environment variables read at startup.
const (
	envConfig = "PILEUS_CONFIG"
	envHome   = "PILEUS_HOME"
)

// defaultConfigFile is used when neither --config nor PILEUS_CONFIG is set.
const defaultConfigFile = "config.ini"

// configPath resolves the config.ini location: flag, then environment, then ./config.ini.
func configPath(flag string, getenv func(string) string) string {
	if flag != "" {
		return flag
	}
	if p := getenv(envConfig); p != "" {
		return p
	}
	return defaultConfigFile
}

// settingsDir resolves the settings directory. Empty means ~/.pileus.
func settingsDir(flag string, getenv func(string) string) string {
	if flag != "" {
		return flag
	}
	return getenv(envHome)
}

// closers runs cleanup functions in reverse order.
type closers []func() error

func (c closers) close() {
	for i := len(c) - 1; i >= 0; i-- {
		if err := c[i](); err != nil {
			logger.Warn("cleanup: %v", err)
		}
	}
}

// wire builds the services for one run.
func wire(ctx context.Context, opts cli.Options) (*cli.Services, func(), error) {
	dir := settingsDir(opts.SettingsDir, os.Getenv)

	var (
		configStore driven.ConfigStore
		fileStore   *file.ConfigStore
	)
	fileStore, err := file.NewConfigStore(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: settings unavailable, using defaults: %v\n", err)
		configStore = memory.NewConfigStore()
	} else {
		configStore = fileStore
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("loading settings: %w", err)
	}

	logPath, closeLog, err := logger.Setup(logger.Config{Dir: settings.Logging.Dir, Verbose: opts.Verbose})
	if err != nil {
		return nil, nil, err
	}
	cleanup := closers{closeLog}
	logger.Debug("Logging to %s", logPath)

	credentials := file.NewCredentialsStore(configPath(opts.ConfigPath, os.Getenv))
	history, closeHistory := openHistory(settings, dir)
	if closeHistory != nil {
		cleanup = append(cleanup, closeHistory)
	}

	api := pileus.NewClient(pileus.Config{
		AuthURL:           settings.API.AuthURL,
		BaseURL:           settings.API.BaseURL,
		BaseURLV2:         settings.API.BaseURLV2,
		Timeout:           settings.API.Timeout(),
		RequestsPerSecond: settings.API.RequestsPerSecond,
		UserAgent:         "pileus-cli/" + version,
	})

	authService := services.NewAuthService(api, credentials, settingsService)
	svc := &cli.Services{
		Credentials: services.NewCredentialsService(credentials),
		Settings:    settingsService,
		Auth:        authService,
		Users:       services.NewUserService(api, authService),
		Onboarding: services.NewOnboardingService(api, authService, services.OnboardingDeps{
			Settings: settingsService,
			History:  history,
			Scripts:  script.NewWriter(settings.Onboarding.OutputDir),
			Opener:   script.NewOpener(),
		}),
	}

	if opts.LongRunning {
		closeWatcher, err := watchConfig(ctx, credentials.Path(), authService.Invalidate, fileStore)
		if err != nil {
			logger.Warn("config changes will not be picked up: %v", err)
		} else {
			cleanup = append(cleanup, closeWatcher)
		}
	}

	return svc, cleanup.close, nil
}

// openHistory opens the SQLite history, falling back to memory when it is
// disabled or cannot be opened.
func openHistory(settings *domain.AppSettings, dir string) (driven.OnboardingStore, func() error) {
	if !settings.History.Enabled {
		return memory.NewOnboardingStore(), nil
	}

	dataDir := ""
	if dir != "" {
		dataDir = filepath.Join(dir, "data")
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		logger.Warn("onboarding history unavailable, keeping it in memory: %v", err)
		return memory.NewOnboardingStore(), nil
	}
	logger.Debug("Onboarding history: %s", store.Path())
	return store.OnboardingStore(), store.Close
}

// watchConfig follows config.ini and settings.toml. A config.ini change drops
// the cached session. A settings.toml change reloads the settings.
func watchConfig(
	ctx context.Context, credentialsPath string, invalidate func(), settings *file.ConfigStore,
) (func() error, error) {
	w, err := file.NewWatcher(file.DefaultDebounce)
	if err != nil {
		return nil, err
	}

	if _, err := w.Watch(credentialsPath, func() {
		logger.Info("Config file changed, credentials will be reloaded: %s", credentialsPath)
		invalidate()
	}); err != nil {
		return nil, errors.Join(err, w.Close())
	}

	if settings != nil {
		if _, err := w.Watch(settings.Path(), func() {
			if err := settings.Load(); err != nil {
				logger.Warn("reloading settings: %v", err)
				return
			}
			logger.Info("Settings reloaded: %s", settings.Path())
		}); err != nil {
			return nil, errors.Join(err, w.Close())
		}
	}

	w.Start(ctx)
	return w.Close, nil
}
