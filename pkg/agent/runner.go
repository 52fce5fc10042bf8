package agent

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/core-tools/ogg-monitor/pkg/cmdb"
	"github.com/core-tools/ogg-monitor/pkg/config"
	"github.com/core-tools/ogg-monitor/pkg/console"
	"github.com/core-tools/ogg-monitor/pkg/errors"
	"github.com/core-tools/ogg-monitor/pkg/identity"
	"github.com/core-tools/ogg-monitor/pkg/logging"
	"github.com/core-tools/ogg-monitor/pkg/osquery"
	"github.com/core-tools/ogg-monitor/pkg/runlock"
	"github.com/core-tools/ogg-monitor/pkg/zabbix"
)

// Version is the agent version, emitted as the script_version metric
const Version = "0.5.0"

// Runner executes complete poll cycles against the installation named by
// the OGG_HOME and ORACLE_HOME environment variables.
type Runner struct {
	config *config.Config
	logger logging.Logger
}

func NewRunner(config *config.Config, logger logging.Logger) (*Runner, error) {
	if config == nil {
		return nil, errors.NewValidationError("config cannot be nil", nil)
	}
	return &Runner{
		config: config,
		logger: logger,
	}, nil
}

// Run executes one poll cycle: detect the installation, acquire the
// single-run lock, capture and parse the console report, deliver the
// metrics and export the inventory. A fatal error aborts before anything
// is transmitted. The lock is released on every path; a release failure
// surfaces only when the cycle itself succeeded.
func (r *Runner) Run(ctx context.Context) error {
	if ctx == nil {
		return errors.NewValidationError("context cannot be nil", nil)
	}

	homes := console.Homes{
		OGGHome:    os.Getenv("OGG_HOME"),
		OracleHome: os.Getenv("ORACLE_HOME"),
		VarHome:    os.Getenv("OGG_VAR_HOME"),
	}
	if homes.OGGHome == "" || homes.OracleHome == "" {
		return errors.NewValidationError("environment variables OGG_HOME and ORACLE_HOME must be set", nil)
	}

	installation, err := console.Detect(homes, r.logger)
	if err != nil {
		return err
	}
	r.logger.Infof("Detected %s installation, console: %s", installation.Architecture, installation.ConsolePath)

	lock, err := runlock.Acquire(runlock.LockPath(r.config.LockFile, homes.OGGHome), r.logger)
	if err != nil {
		return err
	}

	runErr := r.cycle(ctx, homes, installation)
	releaseErr := lock.Release()
	if runErr != nil {
		return runErr
	}
	if releaseErr != nil {
		return releaseErr
	}
	r.logger.Infof("Finished")
	return nil
}

func (r *Runner) cycle(ctx context.Context, homes console.Homes, installation *console.Installation) error {
	hostname, err := os.Hostname()
	if err != nil {
		return errors.NewIOError("cannot read hostname", err)
	}
	shortHostname, err := osquery.ShortHostname()
	if err != nil {
		return err
	}

	script, err := console.BuildScript(installation, hostname, console.Credentials{
		Username: r.config.Console.Username,
		Password: r.config.Console.Password,
	})
	if err != nil {
		return err
	}

	// every metric of the cycle is stamped with the moment the snapshot
	// was requested, not the moment parsing finished
	timestamp := time.Now().Unix()

	capture := console.NewCapture(installation, homes, r.logger)
	captureCtx := ctx
	if r.config.Console.Timeout > 0 {
		var cancel context.CancelFunc
		captureCtx, cancel = context.WithTimeout(ctx, r.config.Console.Timeout)
		defer cancel()
	}
	transcript, err := capture(captureCtx, script)
	if err != nil {
		return err
	}

	serviceManagerPort := 0
	if installation.ServiceManager != nil {
		serviceManagerPort = installation.ServiceManager.Port
	}

	result, err := Poll(ctx, PollInput{
		ReportText:         transcript,
		Architecture:       installation.Architecture,
		ServiceManagerPort: serviceManagerPort,
		NamingMode:         r.config.HostNaming,
		ParameterFilePath:  filepath.Join(homes.OGGHome, "dirprm", "mgr.prm"),
		TagLookup:          identity.FileTagLookup,
		MemoryLister:       newMemoryLister(r.logger),
		ShortHostname:      shortHostname,
		Timestamp:          timestamp,
		EnvironmentID:      string(r.config.Environment),
		Platform:           osquery.PlatformName(),
		ScriptVersion:      Version,
	}, r.logger)
	if err != nil {
		return err
	}
	if result.Warnings.HasErrors() {
		r.logger.Warnf("Poll finished with %d warning(s)", len(result.Warnings.Errors))
	}

	r.logger.Infof("Data for zabbix_sender:")
	lines := make([]string, len(result.Metrics))
	for i, metric := range result.Metrics {
		lines[i] = metric.Render()
		r.logger.Infof("%s", lines[i])
	}

	sender := zabbix.NewSender(zabbix.Options{
		SenderPath: r.config.Zabbix.SenderPath,
		Servers:    r.config.Zabbix.ServerList(),
		Timeout:    r.config.Zabbix.SendTimeout,
	}, r.logger)
	if sendErrors := sender.Send(ctx, lines); sendErrors.HasErrors() {
		// servers are independent sinks, a failed one never aborts the cycle
		r.logger.Warnf("Delivery failed for %d server(s)", len(sendErrors.Errors))
	}

	if r.config.CMDBExportPath != "" {
		document := cmdb.NewDocument(result.Registry, result.Info, shortHostname)
		if err := cmdb.Export(document, r.config.CMDBExportPath, r.logger); err != nil {
			r.logger.Warnf("CMDB export failed: %v", err)
		}
	}

	return nil
}

// newMemoryLister picks the memory provider: ps everywhere it exists,
// the process-table library where it does not.
func newMemoryLister(logger logging.Logger) osquery.MemoryLister {
	if runtime.GOOS == "windows" {
		return osquery.NewGopsutilMemoryLister(logger)
	}
	return osquery.NewPSMemoryLister(logger)
}
