package ports

import (
	"context"
	"io"

	"go.trai.ch/glass/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records units of background work.
type Telemetry interface {
	// Record starts a new vertex for a unit of work.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	// Activity reports the units still running and how many have finished.
	Activity() domain.Activity
	// Close flushes and ends the recording session.
	Close() error
}

// Vertex is a single recorded unit of work.
type Vertex interface {
	// Stdout returns a writer for the vertex output stream.
	Stdout() io.Writer
	// Log appends a line to the vertex output.
	Log(msg string)
	// Complete marks the vertex as finished, failed when err is non-nil.
	Complete(err error)
}
