// Package probe queries a running dashboard over HTTP and checks that its
// views keep their ordering, size and cumulative guarantees.
package probe

import (
	"time"

	"github.com/okian/podium/internal/domain/pipeline"
	"github.com/okian/podium/internal/domain/types"
)

// Config holds configuration for a probe run.
type Config struct {
	BaseURL     string        // Base URL of the service
	Timeout     time.Duration // HTTP request timeout
	Concurrency int           // Views fetched in parallel
	Verbose     bool          // Log every passing check
}

// Defaults applied by Run when a field is zero.
const (
	DefaultTimeout     = 10 * time.Second
	DefaultConcurrency = 4
)

// Failure is one violated property.
type Failure struct {
	View    pipeline.ViewID `json:"view"`
	Check   string          `json:"check"`
	Message string          `json:"message"`
}

// Report summarises a probe run.
type Report struct {
	Views    []types.ViewInfo `json:"views"`
	Checks   int              `json:"checks"`
	Failures []Failure        `json:"failures"`
	Duration time.Duration    `json:"duration"`
}

// OK reports whether every check passed.
func (r *Report) OK() bool { return len(r.Failures) == 0 }
