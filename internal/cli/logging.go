package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/watchfire-io/wallboard/internal/config"
)

// newLogger builds the process logger. While the terminal view owns the
// screen, logs go to ~/.wallboard/wallboard.log instead of stderr.
func newLogger(level string, toFile bool) (*slog.Logger, func(), error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}

	if toFile {
		path, err := config.GlobalLogFile()
		if err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}

	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: lvl})), closeFn, nil
}
