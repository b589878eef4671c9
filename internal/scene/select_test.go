package scene

import (
	"math/rand"
	"testing"

	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/config"
)

func defaultWindow() config.ExtractionWindow {
	return config.ExtractionWindow{StartPct: 0.2, EndPct: 0.8}
}

func TestSelectTimestampWithinWindow(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	duration := secs(1000)

	for i := 0; i < 500; i++ {
		ts := SelectTimestamp(rng, duration, defaultWindow(), nil)
		if ts < secs(200) || ts >= secs(800) {
			t.Fatalf("timestamp %v outside window [200s,800s)", ts)
		}
	}
}

func TestSelectTimestampAvoidsBlackIntervals(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	duration := secs(1000)
	intervals := []BlackInterval{
		{Start: secs(250), End: secs(400)},
		{Start: secs(600), End: secs(700)},
	}

	for i := 0; i < 500; i++ {
		ts := SelectTimestamp(rng, duration, defaultWindow(), intervals)
		for _, iv := range intervals {
			if iv.Contains(ts) {
				t.Fatalf("timestamp %v landed in black interval %+v", ts, iv)
			}
		}
		if ts < secs(200) || ts >= secs(800) {
			t.Fatalf("timestamp %v outside window", ts)
		}
	}
}

func TestSelectTimestampFullyCoveredWindow(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	duration := secs(1000)
	intervals := []BlackInterval{{Start: secs(100), End: secs(900)}}

	ts := SelectTimestamp(rng, duration, defaultWindow(), intervals)
	if ts != duration/2 {
		t.Errorf("fully covered window: got %v, want midpoint %v", ts, duration/2)
	}
}

func TestSelectTimestampZeroDuration(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	if ts := SelectTimestamp(rng, 0, defaultWindow(), nil); ts != 0 {
		t.Errorf("zero duration: got %v, want 0", ts)
	}
}

func TestSelectTimestampDeterministicWithSeed(t *testing.T) {
	duration := secs(1000)
	intervals := []BlackInterval{{Start: secs(300), End: secs(500)}}

	a := SelectTimestamp(rand.New(rand.NewSource(99)), duration, defaultWindow(), intervals)
	b := SelectTimestamp(rand.New(rand.NewSource(99)), duration, defaultWindow(), intervals)
	if a != b {
		t.Errorf("same seed produced %v and %v", a, b)
	}
}

func TestSubtractIntervals(t *testing.T) {
	gaps := subtractIntervals(secs(200), secs(800), []BlackInterval{
		{Start: secs(100), End: secs(250)},
		{Start: secs(400), End: secs(450)},
		{Start: secs(790), End: secs(950)},
	})

	want := []gap{
		{start: secs(250), length: secs(150)},
		{start: secs(450), length: secs(340)},
	}
	if len(gaps) != len(want) {
		t.Fatalf("got %d gaps %+v, want %d", len(gaps), gaps, len(want))
	}
	for i := range gaps {
		if gaps[i] != want[i] {
			t.Errorf("gap %d = %+v, want %+v", i, gaps[i], want[i])
		}
	}
}
