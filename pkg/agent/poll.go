// Package agent assembles one poll cycle. Poll is the core pipeline from a
// captured console transcript to the ordered metric list; Runner surrounds
// it with the console, OS and transport collaborators and owns the process
// exit semantics.
package agent

import (
	"context"
	"strconv"

	"github.com/core-tools/ogg-monitor/pkg/console"
	"github.com/core-tools/ogg-monitor/pkg/errors"
	"github.com/core-tools/ogg-monitor/pkg/identity"
	"github.com/core-tools/ogg-monitor/pkg/logging"
	"github.com/core-tools/ogg-monitor/pkg/metrics"
	"github.com/core-tools/ogg-monitor/pkg/osquery"
	"github.com/core-tools/ogg-monitor/pkg/registry"
	"github.com/core-tools/ogg-monitor/pkg/report"
)

// PollInput carries one cycle's already-captured report text plus the
// collaborator hooks the pipeline consults. The hooks are plain functions
// so tests can inject fixed outputs and run the whole pipeline
// deterministically.
type PollInput struct {
	ReportText string

	Architecture console.Architecture
	// ServiceManagerPort addresses metrics of a microservices
	// installation, taken from the Service Manager descriptor
	ServiceManagerPort int

	NamingMode identity.NamingMode
	// ParameterFilePath is the manager parameter file consulted by the
	// tag lookup under instance-tag naming
	ParameterFilePath string
	TagLookup         identity.TagLookup

	MemoryLister osquery.MemoryLister

	ShortHostname string
	Timestamp     int64
	EnvironmentID string
	Platform      string
	ScriptVersion string
}

// PollResult is the finished cycle: the ordered metric list, the discovery
// document it starts with, and the registry the metrics were drawn from.
// Warnings holds the non-fatal conditions the pipeline degraded through.
type PollResult struct {
	Metrics        []metrics.Metric
	Discovery      metrics.DiscoveryDocument
	HostIdentifier string
	Info           metrics.InstanceInfo
	Registry       *registry.Registry
	Warnings       *errors.ErrorCollection
}

// Poll parses the transcript into the process registry, resolves the host
// identifier, augments the registry with OS memory data and serializes the
// metric list. Parse failures in the detail and summary sections are fatal;
// lag and memory resolution degrade to warnings. Nothing is transmitted
// here, the caller owns delivery.
func Poll(ctx context.Context, input PollInput, logger logging.Logger) (*PollResult, error) {
	if ctx == nil {
		return nil, errors.NewValidationError("context cannot be nil", nil)
	}
	if err := validatePollInput(input); err != nil {
		return nil, err
	}

	warnings := errors.NewErrorCollection()

	lines := report.PrepareLines(input.ReportText)

	detail, err := report.FindSection(lines, report.MarkerDetailStart, report.MarkerDetailEnd)
	if err != nil {
		return nil, err
	}
	summary, err := report.FindSection(lines, report.MarkerSummaryStart, report.MarkerSummaryEnd)
	if err != nil {
		return nil, err
	}
	getlag, err := report.FindSection(lines, report.MarkerGetlagStart, report.MarkerGetlagEnd)
	if err != nil {
		return nil, err
	}

	descriptor, err := report.ParseStaticDescriptor(lines, detail)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Instance version: %s, database: %s", descriptor.Version, descriptor.Database)

	reg, err := report.BuildRegistry(lines, detail, summary, logger)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Registry built, processes: %d", reg.Len())

	lagWarnings := report.ResolveLag(lines, getlag, reg, logger)
	for _, warning := range lagWarnings.Errors {
		warnings.Add(warning)
	}

	port, err := resolvePort(lines, input, reg, logger)
	if err != nil {
		return nil, err
	}

	mode := input.NamingMode
	if input.Architecture == console.ArchitectureMicroservices {
		// no manager parameter file exists to carry a tag
		mode = identity.ModeHostname
	}
	resolver := identity.NewResolver(identity.Config{
		Mode:              mode,
		ParameterFilePath: input.ParameterFilePath,
	}, input.TagLookup, logger)
	host := resolver.Resolve(input.ShortHostname, port)
	logger.Debugf("Monitoring host identifier: %s", host)

	attachMemory(ctx, input.MemoryLister, reg, logger, warnings)

	info := metrics.InstanceInfo{
		HostIdentifier: host,
		Timestamp:      input.Timestamp,
		EnvironmentID:  input.EnvironmentID,
		Version:        descriptor.Version,
		Database:       descriptor.Database,
		Platform:       input.Platform,
		ScriptVersion:  input.ScriptVersion,
	}
	list, err := metrics.Serialize(reg, info)
	if err != nil {
		return nil, err
	}

	return &PollResult{
		Metrics:        list,
		Discovery:      metrics.NewDiscoveryDocument(reg.Names()),
		HostIdentifier: host,
		Info:           info,
		Registry:       reg,
		Warnings:       warnings,
	}, nil
}

func validatePollInput(input PollInput) error {
	if input.ReportText == "" {
		return errors.NewValidationError("report text cannot be empty", nil)
	}
	switch input.Architecture {
	case console.ArchitectureClassic:
	case console.ArchitectureMicroservices:
		if input.ServiceManagerPort == 0 {
			return errors.NewValidationError("service manager port is required for a microservices installation", nil)
		}
	default:
		return errors.NewValidationError("unknown architecture", nil).WithContext("architecture", string(input.Architecture))
	}
	if input.MemoryLister == nil {
		return errors.NewValidationError("memory lister cannot be nil", nil)
	}
	if input.Timestamp == 0 {
		return errors.NewValidationError("timestamp cannot be zero", nil)
	}
	return nil
}

// resolvePort yields the port qualifying the host identifier. Classic
// installations report it in the manager section, which also carries the
// manager pid for the memory lookup; microservices installations take it
// from the Service Manager descriptor and never parse the manager window.
func resolvePort(lines []string, input PollInput, reg *registry.Registry, logger logging.Logger) (string, error) {
	if input.Architecture == console.ArchitectureMicroservices {
		return strconv.Itoa(input.ServiceManagerPort), nil
	}

	window, err := report.FindSection(lines, report.MarkerManagerStart, report.MarkerManagerEnd)
	if err != nil {
		return "", err
	}
	managerInfo, err := report.ResolveManager(lines, window, reg, logger)
	if err != nil {
		return "", err
	}
	logger.Debugf("Manager port: %s, pid: %s", managerInfo.Port, managerInfo.PID)
	return managerInfo.Port, nil
}

// attachMemory joins the OS memory listing onto the registry. Every
// failure mode here is a warning: records keep their zero default and the
// cycle continues with checkpoint and lag data intact.
func attachMemory(ctx context.Context, lister osquery.MemoryLister, reg *registry.Registry, logger logging.Logger, warnings *errors.ErrorCollection) {
	pids := reg.PIDList()
	listing, err := lister(ctx, pids)
	if err != nil {
		logger.Warnf("Memory listing failed: %v", err)
		warnings.Add(errors.NewMemoryLookupWarning("memory listing failed", err))
		return
	}

	byPID, err := registry.ParseMemoryListing(listing)
	if err != nil {
		logger.Warnf("Memory listing unparseable: %v", err)
		warnings.Add(errors.NewMemoryLookupWarning("memory listing unparseable", err))
		return
	}
	reg.AttachMemory(byPID)
	logger.Debugf("Total instance memory: %d bytes", reg.TotalMemoryBytes())
}
