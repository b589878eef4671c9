// Package discovery enumerates episode video files and parses episode
// metadata from their filenames.
package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/errors"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/logging"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/util"
)

// FindEpisodes finds video files in the given directory and parses their
// episode metadata. Files are sorted alphabetically by filename.
func FindEpisodes(inputDir string) ([]Episode, error) {
	files, err := FindVideoFiles(inputDir)
	if err != nil {
		return nil, err
	}

	episodes := make([]Episode, 0, len(files))
	for _, f := range files {
		ep := ParseFilename(f)
		ep.LogoPath = util.FindSiblingImage(f, "-logo")
		episodes = append(episodes, ep)
	}
	return episodes, nil
}

// FindVideoFiles finds video files in the given directory.
// Returns files sorted alphabetically by filename.
func FindVideoFiles(inputDir string) ([]string, error) {
	info, err := os.Stat(inputDir)
	if err != nil {
		return nil, errors.NewPathError("directory does not exist: " + inputDir)
	}
	if !info.IsDir() {
		return nil, errors.NewPathError(inputDir + " is not a directory")
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, errors.NewIOError("cannot read directory "+inputDir, err)
	}

	var files []string
	skippedCount := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()

		// Skip hidden files
		if strings.HasPrefix(name, ".") {
			continue
		}

		fullPath := filepath.Join(inputDir, name)
		if util.IsVideoFile(fullPath) {
			files = append(files, fullPath)
		} else {
			skippedCount++
		}
	}

	if len(files) == 0 {
		return nil, errors.NewNoFilesFoundError(inputDir)
	}

	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(files[i])) < strings.ToLower(filepath.Base(files[j]))
	})

	logging.Info("discovered video files", "dir", inputDir,
		"found", len(files), "skipped", skippedCount)
	return files, nil
}
