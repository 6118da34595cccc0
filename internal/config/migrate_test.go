package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"muxbot/internal/logging"
)

// chdir is a stand-in for t.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(prev))
	})
}

func migrationEnv(t *testing.T) (EnvLookup, string) {
	t.Helper()
	targetDir := t.TempDir()
	lookup := envFromMap(map[string]string{"XDG_CONFIG_HOME": targetDir})
	return lookup, filepath.Join(targetDir, "muxbot", "config.yaml")
}

func TestCheckMigrationNothingToDo(t *testing.T) {
	chdir(t, t.TempDir())
	lookup, target := migrationEnv(t)

	status := CheckMigration(lookup, nil)
	require.False(t, status.NeedsMigration)
	require.False(t, status.LegacyExists)
	require.Equal(t, target, status.TargetPath)
}

func TestMigrateCopiesLegacyConfig(t *testing.T) {
	workDir := t.TempDir()
	chdir(t, workDir)
	lookup, target := migrationEnv(t)

	legacy := filepath.Join(workDir, "config.yaml")
	require.NoError(t, os.WriteFile(legacy, []byte("max_history: 7\n"), 0o600))

	recorder := logging.NewRecorder()
	status, err := Migrate(recorder, lookup, nil)
	require.NoError(t, err)
	require.False(t, status.NeedsMigration)
	require.True(t, status.TargetExists)

	copied, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, "max_history: 7\n", string(copied))

	// legacy file stays in place, with a backup next to it
	_, err = os.Stat(legacy)
	require.NoError(t, err)
	backup, err := os.ReadFile(legacy + ".backup")
	require.NoError(t, err)
	require.Equal(t, "max_history: 7\n", string(backup))
}

func TestMigrateSkipsWhenTargetExists(t *testing.T) {
	workDir := t.TempDir()
	chdir(t, workDir)
	lookup, target := migrationEnv(t)

	require.NoError(t, os.WriteFile(filepath.Join(workDir, "config.yaml"), []byte("legacy\n"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
	require.NoError(t, os.WriteFile(target, []byte("current\n"), 0o600))

	status, err := Migrate(logging.Nop(), lookup, nil)
	require.NoError(t, err)
	require.False(t, status.NeedsMigration)

	current, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, "current\n", string(current))
}
