package ffmpeg

import (
	"context"
	"os/exec"
	"strings"

	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/errors"
	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/logging"
)

// maxStderrBytes caps captured stderr so a chatty failure cannot bloat
// error messages and logs.
const maxStderrBytes = 8 * 1024

// ExtractFrame runs ffmpeg with the given arguments and waits for it to
// finish. Stderr is captured and attached to the returned error on
// nonzero exit. Context cancellation kills the process promptly.
func ExtractFrame(ctx context.Context, args []string) error {
	if err := ctx.Err(); err != nil {
		return errors.NewCancelledError()
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)

	var stderr strings.Builder
	cmd.Stderr = &stderr

	logging.Debug("running ffmpeg", "args", strings.Join(args, " "))

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return errors.NewCancelledError()
		}
		return errors.WrapExecError("ffmpeg", err, truncateStderr(stderr.String()))
	}
	return nil
}

// truncateStderr keeps the tail of the output, where ffmpeg reports the
// actual failure.
func truncateStderr(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxStderrBytes {
		return s
	}
	return s[len(s)-maxStderrBytes:]
}
