package console

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/core-tools/ogg-monitor/pkg/errors"
	"github.com/core-tools/ogg-monitor/pkg/logging"
)

// CaptureFunc runs a console script and returns the combined output
type CaptureFunc func(ctx context.Context, script string) (string, error)

// NewCapture returns a CaptureFunc bound to the detected installation.
// The console inherits the prepared environment, reads the script on
// stdin and must exit cleanly within the context deadline, a partial
// transcript never reaches the caller.
func NewCapture(installation *Installation, homes Homes, logger logging.Logger) CaptureFunc {
	return func(ctx context.Context, script string) (string, error) {
		if ctx == nil {
			return "", errors.NewValidationError("context cannot be nil", nil)
		}

		logger.Infof("Running console, path: %s", installation.ConsolePath)

		cmd := exec.CommandContext(ctx, installation.ConsolePath)
		cmd.Env = Environ(homes, os.Environ())
		cmd.Stdin = strings.NewReader(script)

		// wait after the context kill, before giving up on the output pipes
		cmd.WaitDelay = 10 * time.Second

		var output bytes.Buffer
		cmd.Stdout = &output
		cmd.Stderr = cmd.Stdout

		err := cmd.Run()
		if ctx.Err() == context.DeadlineExceeded {
			return "", errors.NewProcessError("console timed out", ctx.Err()).
				WithContext("console_path", installation.ConsolePath)
		}
		if err != nil {
			logger.Errorf("Console failed, path: %s, error: %v, output: %s",
				installation.ConsolePath, err, output.String())
			return "", errors.NewProcessError("console script failed", err).
				WithContext("console_path", installation.ConsolePath)
		}

		logger.Debugf("Console finished, output size: %d bytes", output.Len())

		return output.String(), nil
	}
}
