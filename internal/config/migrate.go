package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"muxbot/internal/logging"
)

// MigrationStatus describes whether a legacy config should be relocated.
type MigrationStatus struct {
	NeedsMigration bool
	LegacyPath     string
	LegacyExists   bool
	TargetPath     string
	TargetExists   bool
}

// CheckMigration inspects the legacy and XDG config locations.
// Migration is needed when the legacy file exists and the XDG one does not.
func CheckMigration(envLookup EnvLookup, homeDir func() (string, error)) MigrationStatus {
	legacyPath := LegacyConfigPath()
	targetPath, _ := ResolveConfigPath(envLookup, homeDir)

	status := MigrationStatus{
		LegacyPath: legacyPath,
		TargetPath: targetPath,
	}
	if _, err := os.Stat(legacyPath); err == nil {
		status.LegacyExists = true
	}
	if _, err := os.Stat(targetPath); err == nil {
		status.TargetExists = true
	}
	status.NeedsMigration = status.LegacyExists && !status.TargetExists && legacyPath != targetPath
	return status
}

// Migrate copies the legacy config.yaml to the XDG location, leaving a
// .yaml.backup copy next to the original. The legacy file itself is never
// removed. Returns the migration status after the copy.
func Migrate(logger logging.Logger, envLookup EnvLookup, homeDir func() (string, error)) (MigrationStatus, error) {
	logger = logging.OrNop(logger)
	status := CheckMigration(envLookup, homeDir)

	if !status.NeedsMigration {
		if !status.LegacyExists {
			logger.Info("no legacy configuration found, migration not needed")
		} else if status.TargetExists {
			logger.Info("config already exists at %s, migration not needed (legacy copy at %s)",
				status.TargetPath, status.LegacyPath)
		}
		return status, nil
	}

	if err := os.MkdirAll(filepath.Dir(status.TargetPath), 0o755); err != nil {
		return status, fmt.Errorf("create config directory: %w", err)
	}

	if err := copyFile(status.LegacyPath, status.TargetPath); err != nil {
		return status, fmt.Errorf("copy config: %w", err)
	}
	logger.Info("configuration copied: %s -> %s", status.LegacyPath, status.TargetPath)

	backupPath := status.LegacyPath + ".backup"
	if err := copyFile(status.LegacyPath, backupPath); err != nil {
		return status, fmt.Errorf("create backup: %w", err)
	}
	logger.Info("backup created: %s", backupPath)

	status.TargetExists = true
	status.NeedsMigration = false
	return status, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
