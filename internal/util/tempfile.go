package util

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// randomSuffixLen is the length of the random component in temp names.
const randomSuffixLen = 8

// lowSpaceThreshold is the free-space floor below which CheckDiskSpace warns.
const lowSpaceThreshold = 1 * GiB

// TempDir is a scoped temporary directory removed by Cleanup.
type TempDir struct {
	path string
}

// Path returns the directory path.
func (d *TempDir) Path() string {
	return d.path
}

// Cleanup removes the directory and everything under it.
func (d *TempDir) Cleanup() error {
	if d == nil || d.path == "" {
		return nil
	}
	return os.RemoveAll(d.path)
}

// EnsureDirectoryWritable verifies that path is an existing, writable
// directory by creating and removing a probe file inside it.
func EnsureDirectoryWritable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("directory not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}

	probe := filepath.Join(path, ".writecheck_"+mustRandomString(randomSuffixLen))
	f, err := os.Create(probe)
	if err != nil {
		return fmt.Errorf("directory not writable: %w", err)
	}
	_ = f.Close()
	return os.Remove(probe)
}

// CreateTempDir creates a uniquely named directory under baseDir.
func CreateTempDir(baseDir, prefix string) (*TempDir, error) {
	suffix, err := generateRandomString(randomSuffixLen)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(baseDir, fmt.Sprintf("%s_%s", prefix, suffix))
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	return &TempDir{path: path}, nil
}

// CreateTempFilePath builds a unique path under baseDir without creating the
// file. Used when an external process owns file creation.
func CreateTempFilePath(baseDir, prefix, ext string) (string, error) {
	suffix, err := generateRandomString(randomSuffixLen)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s_%s.%s", prefix, suffix, strings.TrimPrefix(ext, "."))
	return filepath.Join(baseDir, name), nil
}

// CleanupStaleTempFiles removes prefix-matching files older than maxAge from
// dir. Returns the number of files removed. A missing directory is not an
// error.
func CleanupStaleTempFiles(dir, prefix string, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	count := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix+"_") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err == nil {
			count++
		}
	}
	return count, nil
}

// GetAvailableSpace returns the free bytes on the filesystem holding path.
// Returns 0 if the path is invalid or the query fails.
func GetAvailableSpace(path string) uint64 {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0
	}
	return stat.Bavail * uint64(stat.Bsize)
}

// CheckDiskSpace reports whether path has a comfortable amount of free
// space, logging a warning through logf when it does not.
func CheckDiskSpace(path string, logf func(format string, args ...any)) bool {
	available := GetAvailableSpace(path)
	if available == 0 {
		return true // Can't determine, don't block
	}
	if available < lowSpaceThreshold {
		if logf != nil {
			logf("low disk space on %s: %s available", path, FormatBytes(available))
		}
		return false
	}
	return true
}

// generateRandomString returns a hex string of the given length.
func generateRandomString(length int) (string, error) {
	buf := make([]byte, (length+1)/2)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf)[:length], nil
}

func mustRandomString(length int) string {
	s, err := generateRandomString(length)
	if err != nil {
		return "fallback"
	}
	return s
}
