package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindIO, "I/O error"},
		{KindPath, "Path error"},
		{KindCommand, "Command error"},
		{KindProbe, "Probe error"},
		{KindDecode, "Decode error"},
		{KindCanvas, "Canvas error"},
		{KindRender, "Render error"},
		{KindConfig, "Configuration error"},
		{KindNoFilesFound, "No files found"},
		{KindOperationFailed, "Operation failed"},
		{KindCancelled, "Operation cancelled"},
		{ErrorKind(999), "Unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestCoreErrorError(t *testing.T) {
	underlying := errors.New("boom")

	with := &CoreError{Kind: KindDecode, Message: "frame extraction failed", Underlying: underlying}
	if !strings.Contains(with.Error(), "frame extraction failed") || !strings.Contains(with.Error(), "boom") {
		t.Errorf("unexpected error string: %q", with.Error())
	}

	without := &CoreError{Kind: KindConfig, Message: "bad settings"}
	if got := without.Error(); got != "Configuration error: bad settings" {
		t.Errorf("unexpected error string: %q", got)
	}
}

func TestCoreErrorUnwrap(t *testing.T) {
	underlying := errors.New("inner")
	err := NewDecodeError("outer", underlying)
	if !errors.Is(err, underlying) {
		t.Error("expected errors.Is to find the underlying error")
	}
}

func TestCoreErrorIs(t *testing.T) {
	err := NewProbeError("no video stream", nil)
	if !errors.Is(err, &CoreError{Kind: KindProbe}) {
		t.Error("expected kind match")
	}
	if errors.Is(err, &CoreError{Kind: KindDecode}) {
		t.Error("expected kind mismatch")
	}
}

func TestCommandError(t *testing.T) {
	tests := []struct {
		name     string
		err      *CommandError
		contains []string
	}{
		{
			name:     "failed with stderr",
			err:      &CommandError{Command: "ffmpeg", Kind: CommandFailed, ExitCode: 1, Stderr: "no such file"},
			contains: []string{"ffmpeg", "exit code 1", "no such file"},
		},
		{
			name:     "failed without stderr",
			err:      &CommandError{Command: "ffmpeg", Kind: CommandFailed, ExitCode: 187},
			contains: []string{"ffmpeg", "exit code 187"},
		},
		{
			name:     "start failure",
			err:      &CommandError{Command: "ffprobe", Kind: CommandStart, Underlying: errors.New("not found")},
			contains: []string{"ffprobe", "not found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("error %q does not contain %q", msg, want)
				}
			}
		})
	}
}

func TestIsKind(t *testing.T) {
	err := NewRenderError("encode failed", nil)
	if !IsKind(err, KindRender) {
		t.Error("expected KindRender")
	}
	if IsKind(err, KindDecode) {
		t.Error("did not expect KindDecode")
	}
	if IsKind(errors.New("plain"), KindRender) {
		t.Error("plain error should not match any kind")
	}
}

func TestIsCancelled(t *testing.T) {
	if !IsCancelled(NewCancelledError()) {
		t.Error("expected IsCancelled for cancelled error")
	}
	if IsCancelled(NewDecodeError("x", nil)) {
		t.Error("decode error should not be cancelled")
	}
}

func TestIsDecode(t *testing.T) {
	if !IsDecode(NewDecodeError("x", nil)) {
		t.Error("expected IsDecode")
	}
	// The outermost CoreError decides the kind.
	wrapped := NewOperationFailedError("episode failed", NewDecodeError("x", nil))
	if IsDecode(wrapped) {
		t.Error("wrapping changes the reported kind")
	}
	if !IsKind(wrapped, KindOperationFailed) {
		t.Error("expected KindOperationFailed for the wrapper")
	}
}
