package exec

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// Local runs the engine on the local machine.
type Local struct {
	// Logger receives the engine start and finish records.
	// Nil means slog.Default().
	Logger *slog.Logger
}

// Run executes the named command once in dir and returns
// its combined stdout+stderr output. Pass empty dir to use
// the current working directory. The last argument is
// logged as the config file the engine reads. The command
// is killed when ctx is done.
func (lo Local) Run(
	ctx context.Context,
	dir string,
	name string,
	arg ...string,
) (string, error) {
	const errCtx = "running engine"

	logger := lo.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var config string
	if len(arg) > 0 {
		config = arg[len(arg)-1]
	}

	logger = logger.With("engine", name, "config", config)
	logger.Info(
		"starting engine",
		"args", strings.Join(arg, " "),
		"dir", dir,
	)

	cmd := exec.CommandContext(ctx, name, arg...)
	if dir != "" {
		cmd.Dir = dir
	}

	start := time.Now()
	by, err := cmd.CombinedOutput()

	logger.Debug("engine output", "result", string(by))

	if err != nil {
		logger.Error(
			"engine failed",
			"elapsed", time.Since(start),
			"error", err,
		)

		return string(by), fmt.Errorf(
			"%s: %s %s: %w",
			errCtx, name, strings.Join(arg, " "), err,
		)
	}

	logger.Info("engine finished", "elapsed", time.Since(start))

	return string(by), nil
}
