package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// BackupSuffix is appended to a file's path to name its backup.
const BackupSuffix = ".pyhl.bak"

// BackupPath returns the backup location for path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// Backup copies path to BackupPath(path) and returns the backup location.
// It returns "" when path does not exist. An existing backup is never overwritten,
// so repeated runs keep the oldest copy.
func Backup(ctx context.Context, path string) (string, error) {
	backupPath := BackupPath(path)

	if _, err := os.Stat(backupPath); err == nil {
		return backupPath, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("stat backup: %w", err)
	}

	content, snap, err := ReadFile(ctx, path)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("backup: %w", err)
	}

	if err := WriteAtomic(ctx, backupPath, content, snap.Mode.Perm()); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return backupPath, nil
}
