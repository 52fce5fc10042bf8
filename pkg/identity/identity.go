// Package identity derives the monitoring host identifier that addresses
// every metric of a poll. The identifier is port-qualified so that several
// instances on one OS host stay distinct in the monitoring system.
package identity

import (
	"regexp"
	"strings"

	"github.com/core-tools/ogg-monitor/pkg/logging"
)

// NamingMode selects how the identifier's middle part is chosen
type NamingMode string

const (
	// ModeHostname uses the uppercased short hostname
	ModeHostname NamingMode = "hostname"
	// ModeInstanceTag prefers a tag embedded in the manager parameter
	// file, falling back to the hostname form when absent
	ModeInstanceTag NamingMode = "instance-tag"
)

// TagLookup is the collaborator hook reading the embedded instance tag,
// invoked only under ModeInstanceTag.
type TagLookup func(path string) (string, error)

var nonWordPattern = regexp.MustCompile(`\W`)

// Config holds the resolver inputs fixed per invocation
type Config struct {
	Mode NamingMode
	// ParameterFilePath is the manager parameter file consulted under
	// ModeInstanceTag
	ParameterFilePath string
}

type Resolver struct {
	config Config
	lookup TagLookup
	logger logging.Logger
}

func NewResolver(config Config, lookup TagLookup, logger logging.Logger) *Resolver {
	return &Resolver{
		config: config,
		lookup: lookup,
		logger: logger,
	}
}

// Resolve composes the host identifier. The instance-tag path degrades to
// the hostname form on any miss: a wrong identifier is worse than a less
// specific one.
func (r *Resolver) Resolve(shortHostname, port string) string {
	if r.config.Mode == ModeInstanceTag && r.lookup != nil {
		tag, err := r.lookup(r.config.ParameterFilePath)
		if err != nil {
			r.logger.Warnf("Instance tag lookup failed: %v, falling back to hostname naming", err)
		} else {
			sanitized := nonWordPattern.ReplaceAllString(strings.TrimSpace(tag), "")
			if sanitized != "" {
				return "OGG_" + sanitized + "_" + port
			}
			r.logger.Debugf("Instance tag empty, falling back to hostname naming")
		}
	}
	return "OGG_" + strings.ToUpper(shortHostname) + "_" + port
}
