// Package zabbix ships rendered metric lines to Zabbix servers through
// the zabbix_sender utility.
package zabbix

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/core-tools/ogg-monitor/pkg/errors"
	"github.com/core-tools/ogg-monitor/pkg/logging"
)

// Options configure the sender invocation
type Options struct {
	SenderPath string
	Servers    []string
	Timeout    time.Duration
}

// Sender pipes metric lines to every configured server, one
// zabbix_sender run each. Servers are independent sinks, a failing one
// never blocks delivery to the rest.
type Sender struct {
	options Options
	logger  logging.Logger
}

// NewSender creates a sender with the given options
func NewSender(options Options, logger logging.Logger) *Sender {
	return &Sender{
		options: options,
		logger:  logger,
	}
}

// Send delivers the lines to all configured servers and returns the
// collected per-server failures, none of which is fatal.
func (s *Sender) Send(ctx context.Context, lines []string) *errors.ErrorCollection {
	collection := errors.NewErrorCollection()

	if ctx == nil {
		collection.Add(errors.NewValidationError("context cannot be nil", nil))
		return collection
	}

	payload := strings.Join(lines, "\n")

	for _, server := range s.options.Servers {
		if err := s.sendToServer(ctx, server, payload); err != nil {
			collection.Add(err)
		}
	}

	return collection
}

func (s *Sender) sendToServer(ctx context.Context, server string, payload string) error {
	runCtx := ctx
	if s.options.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.options.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, s.options.SenderPath, "-w", "-z", server, "-T", "-i", "-")
	cmd.Stdin = strings.NewReader(payload)

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = cmd.Stdout

	if err := cmd.Run(); err != nil {
		s.logger.Errorf("Zabbix sender failed, server: %s, error: %v, output: %s",
			server, err, output.String())
		return errors.NewTransportError("zabbix sender failed", err).WithContext("server", server)
	}

	s.logger.Infof("Zabbix sender successfully sent data, server: %s", server)
	s.logger.Debugf("Zabbix sender output: %s", output.String())

	return nil
}
