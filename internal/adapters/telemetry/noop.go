// Package telemetry provides telemetry adapters that do not depend on a backend.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/glass/internal/core/domain"
	"go.trai.ch/glass/internal/core/ports"
)

// NoOp is a ports.Telemetry that records nothing.
type NoOp struct{}

// NewNoOp creates a new NoOp telemetry.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Record returns ctx unchanged and a vertex that discards everything.
func (NoOp) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, noopVertex{}
}

// Activity always reports no work.
func (NoOp) Activity() domain.Activity {
	return domain.Activity{}
}

// Close does nothing.
func (NoOp) Close() error {
	return nil
}

type noopVertex struct{}

func (noopVertex) Stdout() io.Writer { return io.Discard }
func (noopVertex) Log(string)        {}
func (noopVertex) Complete(error)    {}
