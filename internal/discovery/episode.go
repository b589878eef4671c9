package discovery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/util"
)

// Episode is the parsed metadata for one episode video file.
// EpisodeEnd equals EpisodeStart for single-episode files and marks the
// last episode of the range for multi-episode files.
type Episode struct {
	Path         string
	SeriesName   string
	Season       int
	EpisodeStart int
	EpisodeEnd   int
	Title        string
	LogoPath     string
}

// Parsed reports whether season and episode numbers were extracted from
// the filename.
func (e *Episode) Parsed() bool {
	return e.Season > 0 || e.EpisodeStart > 0
}

// MultiEpisode reports whether the file spans more than one episode.
func (e *Episode) MultiEpisode() bool {
	return e.EpisodeEnd > e.EpisodeStart
}

// episodeCodeRegex matches SxxEyy and SxxEyy-Ezz codes, any case,
// with any digit counts.
var episodeCodeRegex = regexp.MustCompile(`(?i)\bS(\d+)\s*E(\d+)(?:\s*-\s*E?(\d+))?\b`)

// separatorRegex collapses common filename separators into spaces.
var separatorRegex = regexp.MustCompile(`[._]+`)

// ParseFilename extracts episode metadata from a video filename of the
// shape "Series Name S01E02 Episode Title.mkv". Multi-episode files use
// "S01E01-E03" style ranges. Unparsable filenames fall back to using the
// whole stem as the title so a poster can still be produced.
func ParseFilename(path string) Episode {
	stem := util.GetFileStem(path)
	normalized := separatorRegex.ReplaceAllString(stem, " ")

	ep := Episode{Path: path}

	loc := episodeCodeRegex.FindStringSubmatchIndex(normalized)
	if loc == nil {
		ep.Title = strings.TrimSpace(normalized)
		return ep
	}

	match := episodeCodeRegex.FindStringSubmatch(normalized)
	ep.Season, _ = strconv.Atoi(match[1])
	ep.EpisodeStart, _ = strconv.Atoi(match[2])
	ep.EpisodeEnd = ep.EpisodeStart
	if match[3] != "" {
		if end, err := strconv.Atoi(match[3]); err == nil && end > ep.EpisodeStart {
			ep.EpisodeEnd = end
		}
	}

	ep.SeriesName = cleanupFragment(normalized[:loc[0]])
	ep.Title = cleanupFragment(normalized[loc[1]:])
	return ep
}

// cleanupFragment trims separator residue around a series name or title.
func cleanupFragment(s string) string {
	return strings.Trim(strings.TrimSpace(s), "-–— ")
}
