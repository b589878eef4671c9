package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnsureDirectoryWritable(t *testing.T) {
	tmpDir := t.TempDir()
	if err := EnsureDirectoryWritable(tmpDir); err != nil {
		t.Errorf("Expected no error for writable dir, got %v", err)
	}

	if err := EnsureDirectoryWritable("/nonexistent/directory/path"); err == nil {
		t.Error("Expected error for non-existent directory")
	}

	tmpFile := filepath.Join(tmpDir, "testfile")
	if err := os.WriteFile(tmpFile, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := EnsureDirectoryWritable(tmpFile); err == nil {
		t.Error("Expected error for file instead of directory")
	}
}

func TestCreateTempDir(t *testing.T) {
	baseDir := t.TempDir()

	tempDir, err := CreateTempDir(baseDir, "poster")
	if err != nil {
		t.Fatalf("CreateTempDir failed: %v", err)
	}
	t.Cleanup(func() { _ = tempDir.Cleanup() })

	info, err := os.Stat(tempDir.Path())
	if err != nil {
		t.Fatalf("Temp directory not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("Expected a directory")
	}

	if !strings.HasPrefix(filepath.Base(tempDir.Path()), "poster_") {
		t.Errorf("Directory name should start with 'poster_', got %s", filepath.Base(tempDir.Path()))
	}

	path := tempDir.Path()
	if err := tempDir.Cleanup(); err != nil {
		t.Errorf("Cleanup failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Directory should be removed after cleanup")
	}
}

func TestCreateTempFilePath(t *testing.T) {
	baseDir := t.TempDir()

	path, err := CreateTempFilePath(baseDir, "frame", "png")
	if err != nil {
		t.Fatalf("CreateTempFilePath failed: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("File should not exist yet")
	}

	base := filepath.Base(path)
	if !strings.HasPrefix(base, "frame_") {
		t.Errorf("Path name should start with 'frame_', got %s", base)
	}
	if filepath.Ext(path) != ".png" {
		t.Errorf("Path should have .png extension, got %s", filepath.Ext(path))
	}
	if filepath.Dir(path) != baseDir {
		t.Errorf("Path should be in %s, got %s", baseDir, filepath.Dir(path))
	}

	// Two calls must not collide
	other, err := CreateTempFilePath(baseDir, "frame", "png")
	if err != nil {
		t.Fatalf("CreateTempFilePath failed: %v", err)
	}
	if other == path {
		t.Error("Two temp paths should differ")
	}
}

func TestCleanupStaleTempFiles(t *testing.T) {
	baseDir := t.TempDir()

	for i := 0; i < 3; i++ {
		path := filepath.Join(baseDir, "frame_old"+string(rune('0'+i))+".tmp")
		if err := os.WriteFile(path, []byte("test"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	otherPath := filepath.Join(baseDir, "other.tmp")
	if err := os.WriteFile(otherPath, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}

	count, err := CleanupStaleTempFiles(baseDir, "frame", 0)
	if err != nil {
		t.Fatalf("CleanupStaleTempFiles failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 files cleaned, got %d", count)
	}

	if _, err := os.Stat(otherPath); os.IsNotExist(err) {
		t.Error("File without prefix should not be removed")
	}
}

func TestCleanupStaleTempFiles_NonExistentDir(t *testing.T) {
	count, err := CleanupStaleTempFiles("/nonexistent/path", "frame", 0)
	if err != nil {
		t.Errorf("Should not error on non-existent dir: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 files cleaned, got %d", count)
	}
}

func TestGetAvailableSpace(t *testing.T) {
	space := GetAvailableSpace("/tmp")
	if space == 0 {
		t.Log("GetAvailableSpace returned 0, this might be expected on some systems")
	}

	space = GetAvailableSpace("/nonexistent/path")
	if space != 0 {
		t.Errorf("Expected 0 for invalid path, got %d", space)
	}
}

func TestGenerateRandomString(t *testing.T) {
	s1, err := generateRandomString(8)
	if err != nil {
		t.Fatalf("generateRandomString failed: %v", err)
	}
	if len(s1) != 8 {
		t.Errorf("Expected length 8, got %d", len(s1))
	}

	s2, err := generateRandomString(8)
	if err != nil {
		t.Fatalf("generateRandomString failed: %v", err)
	}
	if s1 == s2 {
		t.Error("Two random strings should be different")
	}
}
