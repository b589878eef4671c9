package scene

import (
	"math/rand"
	"time"

	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/config"
)

// gap is a candidate span of non-black video inside the extraction
// window.
type gap struct {
	start  time.Duration
	length time.Duration
}

// SelectTimestamp picks a frame timestamp inside the extraction window,
// avoiding the given black intervals. The pick is uniform over the total
// non-black span. When the whole window is black the midpoint of the
// video is returned so extraction still has a deterministic target.
func SelectTimestamp(rng *rand.Rand, duration time.Duration, window config.ExtractionWindow, intervals []BlackInterval) time.Duration {
	if duration <= 0 {
		return 0
	}

	winStart := time.Duration(float64(duration) * window.StartPct)
	winEnd := time.Duration(float64(duration) * window.EndPct)
	if winEnd <= winStart {
		return duration / 2
	}

	gaps := subtractIntervals(winStart, winEnd, intervals)
	if len(gaps) == 0 {
		return duration / 2
	}

	var total time.Duration
	for _, g := range gaps {
		total += g.length
	}
	if total <= 0 {
		return duration / 2
	}

	// Uniform position across the concatenated gaps.
	offset := time.Duration(rng.Int63n(int64(total)))
	for _, g := range gaps {
		if offset < g.length {
			return g.start + offset
		}
		offset -= g.length
	}
	return gaps[len(gaps)-1].start
}

// subtractIntervals removes black intervals from [winStart, winEnd) and
// returns the remaining gaps in order. Intervals are assumed sorted and
// non-overlapping, as produced by DetectBlackIntervals.
func subtractIntervals(winStart, winEnd time.Duration, intervals []BlackInterval) []gap {
	var gaps []gap
	cursor := winStart

	for _, iv := range intervals {
		if iv.End <= cursor {
			continue
		}
		if iv.Start >= winEnd {
			break
		}
		if iv.Start > cursor {
			gaps = append(gaps, gap{start: cursor, length: iv.Start - cursor})
		}
		if iv.End > cursor {
			cursor = iv.End
		}
	}
	if cursor < winEnd {
		gaps = append(gaps, gap{start: cursor, length: winEnd - cursor})
	}
	return gaps
}
