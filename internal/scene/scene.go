// Package scene analyzes video content for black scenes so frame
// extraction can avoid fades, transitions, and credits.
package scene

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/logging"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/util"
)

// Black detection constants
const (
	// maxBlackDetectProbes caps concurrent blackdetect probes
	// regardless of the host core count.
	maxBlackDetectProbes = 4

	// blackDetectWindows is the number of sub-windows the video is
	// split into for parallel probing.
	blackDetectWindows = 8

	// minWindowSecs is the smallest window worth probing separately.
	// Shorter videos are probed in a single pass.
	minWindowSecs = 30.0
)

// BlackInterval is a half-open [Start, End) span of near-black video.
type BlackInterval struct {
	Start time.Duration
	End   time.Duration
}

// Duration returns the interval length.
func (b BlackInterval) Duration() time.Duration {
	return b.End - b.Start
}

// Contains reports whether t falls inside the interval.
func (b BlackInterval) Contains(t time.Duration) bool {
	return t >= b.Start && t < b.End
}

// blackDetectRegex matches blackdetect stderr output, e.g.
// "black_start:4.2 black_end:5.88 black_duration:1.68".
var blackDetectRegex = regexp.MustCompile(`black_start:([\d.]+)\s+black_end:([\d.]+)`)

// DetectBlackIntervals probes the video with ffmpeg's blackdetect filter
// and returns the merged, sorted black intervals. The video is split
// into windows probed in parallel under a bounded semaphore. On context
// cancellation the intervals found so far are returned without error;
// black detection is advisory and never fails an extraction.
func DetectBlackIntervals(ctx context.Context, path string, duration time.Duration, pixelThreshold float64, minBlackSecs float64) []BlackInterval {
	if duration <= 0 {
		return nil
	}

	windows := splitWindows(duration.Seconds())

	var mu sync.Mutex
	var wg sync.WaitGroup
	var intervals []BlackInterval

	sem := make(chan struct{}, util.DefaultProbeConcurrency(maxBlackDetectProbes))

	for _, w := range windows {
		wg.Add(1)
		go func(startSecs, lengthSecs float64) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			found := probeWindow(ctx, path, startSecs, lengthSecs, pixelThreshold, minBlackSecs)
			if len(found) > 0 {
				mu.Lock()
				intervals = append(intervals, found...)
				mu.Unlock()
			}
		}(w.start, w.length)
	}

	wg.Wait()

	merged := mergeIntervals(intervals, duration)
	logging.Debug("black detection complete",
		"path", path, "windows", len(windows), "intervals", len(merged))
	return merged
}

type window struct {
	start  float64
	length float64
}

// splitWindows divides the runtime into equal probe windows. Short
// videos get a single window covering everything.
func splitWindows(durationSecs float64) []window {
	if durationSecs/blackDetectWindows < minWindowSecs {
		return []window{{start: 0, length: durationSecs}}
	}
	length := durationSecs / blackDetectWindows
	windows := make([]window, 0, blackDetectWindows)
	for i := 0; i < blackDetectWindows; i++ {
		windows = append(windows, window{start: float64(i) * length, length: length})
	}
	return windows
}

// probeWindow runs blackdetect over one window and returns the intervals
// it reports, shifted to absolute positions.
func probeWindow(ctx context.Context, path string, startSecs, lengthSecs, pixelThreshold, minBlackSecs float64) []BlackInterval {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-hide_banner",
		"-ss", fmt.Sprintf("%.2f", startSecs),
		"-t", fmt.Sprintf("%.2f", lengthSecs),
		"-i", path,
		"-vf", fmt.Sprintf("blackdetect=d=%.2f:pix_th=%.3f", minBlackSecs, pixelThreshold),
		"-an",
		"-f", "null",
		"-",
	)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil
	}
	if err := cmd.Start(); err != nil {
		return nil
	}

	var intervals []BlackInterval
	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		if iv, ok := parseBlackDetectLine(scanner.Text()); ok {
			iv.Start += secondsToDuration(startSecs)
			iv.End += secondsToDuration(startSecs)
			intervals = append(intervals, iv)
		}
	}
	_ = cmd.Wait()

	return intervals
}

// parseBlackDetectLine extracts one interval from a blackdetect line.
func parseBlackDetectLine(line string) (BlackInterval, bool) {
	matches := blackDetectRegex.FindStringSubmatch(line)
	if len(matches) < 3 {
		return BlackInterval{}, false
	}
	start, err1 := strconv.ParseFloat(matches[1], 64)
	end, err2 := strconv.ParseFloat(matches[2], 64)
	if err1 != nil || err2 != nil || end <= start {
		return BlackInterval{}, false
	}
	return BlackInterval{
		Start: secondsToDuration(start),
		End:   secondsToDuration(end),
	}, true
}

// mergeIntervals sorts intervals, clamps them to [0, duration], and
// coalesces overlapping or touching spans. The result is deterministic
// for any input order.
func mergeIntervals(intervals []BlackInterval, duration time.Duration) []BlackInterval {
	if len(intervals) == 0 {
		return nil
	}

	clamped := make([]BlackInterval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.Start < 0 {
			iv.Start = 0
		}
		if iv.End > duration {
			iv.End = duration
		}
		if iv.End > iv.Start {
			clamped = append(clamped, iv)
		}
	}
	if len(clamped) == 0 {
		return nil
	}

	sort.Slice(clamped, func(i, j int) bool {
		if clamped[i].Start != clamped[j].Start {
			return clamped[i].Start < clamped[j].Start
		}
		return clamped[i].End < clamped[j].End
	})

	merged := []BlackInterval{clamped[0]}
	for _, iv := range clamped[1:] {
		last := &merged[len(merged)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

func secondsToDuration(secs float64) time.Duration {
	return time.Duration(secs * float64(time.Second))
}
