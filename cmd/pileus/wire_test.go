package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/custodia-labs/pileus-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/pileus-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/pileus-cli/internal/core/domain"
)

func env(values map[string]string) func(string) string {
	return func(k string) string { return values[k] }
}

func TestConfigPath(t *testing.T) {
	tests := []struct {
		name string
		flag string
		env  map[string]string
		want string
	}{
		{"default", "", nil, "config.ini"},
		{"environment", "", map[string]string{envConfig: "/etc/pileus.ini"}, "/etc/pileus.ini"},
		{"flag wins", "mine.ini", map[string]string{envConfig: "/etc/pileus.ini"}, "mine.ini"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, configPath(tt.flag, env(tt.env)))
		})
	}
}

func TestSettingsDir(t *testing.T) {
	assert.Empty(t, settingsDir("", env(nil)))
	assert.Equal(t, "/srv/pileus", settingsDir("", env(map[string]string{envHome: "/srv/pileus"})))
	assert.Equal(t, "/flag", settingsDir("/flag", env(map[string]string{envHome: "/srv/pileus"})))
}

// writeSettings points logs and scripts at tmp so the test leaves nothing behind.
func writeSettings(t *testing.T, dir, tmp string, historyEnabled bool) {
	t.Helper()
	content := fmt.Sprintf("[logging]\ndir = %q\n\n[onboarding]\noutput_dir = %q\n\n[history]\nenabled = %t\n",
		filepath.Join(tmp, "logs"), filepath.Join(tmp, "out"), historyEnabled)
	require.NoError(t, os.WriteFile(filepath.Join(dir, file.SettingsFileName), []byte(content), 0o600))
}

func TestWire_BuildsServices(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "home")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	writeSettings(t, dir, tmp, true)
	configFile := filepath.Join(tmp, "config.ini")

	svc, cleanup, err := wire(context.Background(), cli.Options{ConfigPath: configFile, SettingsDir: dir})
	require.NoError(t, err)
	defer cleanup()

	require.NotNil(t, svc.Credentials)
	require.NotNil(t, svc.Settings)
	require.NotNil(t, svc.Auth)
	require.NotNil(t, svc.Users)
	require.NotNil(t, svc.Onboarding)

	assert.Equal(t, configFile, svc.Credentials.Path())

	settings, err := svc.Settings.Get()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, "out"), settings.Onboarding.OutputDir)

	assert.FileExists(t, filepath.Join(dir, "data", sqlite.DatabaseFileName))

	logs, err := os.ReadDir(filepath.Join(tmp, "logs"))
	require.NoError(t, err)
	assert.Len(t, logs, 1)

	records, err := svc.Onboarding.History(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestWire_HistoryDisabled(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "home")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	writeSettings(t, dir, tmp, false)

	svc, cleanup, err := wire(context.Background(), cli.Options{
		ConfigPath:  filepath.Join(tmp, "config.ini"),
		SettingsDir: dir,
	})
	require.NoError(t, err)
	defer cleanup()

	assert.NoFileExists(t, filepath.Join(dir, "data", sqlite.DatabaseFileName))

	_, err = svc.Onboarding.OnboardAWS(context.Background(), domain.AWSOnboarding{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWire_LongRunningStopsWatcher(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	tmp := t.TempDir()
	dir := filepath.Join(tmp, "home")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	writeSettings(t, dir, tmp, false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, cleanup, err := wire(ctx, cli.Options{
		ConfigPath:  filepath.Join(tmp, "config.ini"),
		SettingsDir: dir,
		LongRunning: true,
	})
	require.NoError(t, err)

	cleanup()
}
