package poster

import (
	"fmt"

	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/discovery"
)

// FormatEpisodeCode renders a SxxEyy code. Season and episode are padded
// independently by magnitude: two digits up to 99, three up to 999, four
// beyond that, so S01E100 and S1000E05 both come out naturally.
func FormatEpisodeCode(season, episode int) string {
	return "S" + padNumber(season) + "E" + padNumber(episode)
}

// EpisodeCode renders the code for an episode, including the -Ezz range
// suffix for multi-episode files.
func EpisodeCode(ep *discovery.Episode) string {
	code := FormatEpisodeCode(ep.Season, ep.EpisodeStart)
	if ep.MultiEpisode() {
		code += "-E" + padNumber(ep.EpisodeEnd)
	}
	return code
}

func padNumber(n int) string {
	switch {
	case n < 100:
		return fmt.Sprintf("%02d", n)
	case n < 1000:
		return fmt.Sprintf("%03d", n)
	default:
		return fmt.Sprintf("%04d", n)
	}
}
