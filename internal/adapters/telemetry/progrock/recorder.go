// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/glass/internal/core/domain"
	"go.trai.ch/glass/internal/core/ports"
)

// Recorder implements the ports.Telemetry interface using the vito/progrock library.
// Every update goes to an Activity as well as to the configured writer.
type Recorder struct {
	w        progrock.Writer
	activity *Activity
	rec      *progrock.Recorder
	seq      atomic.Uint64
}

// New creates a new Recorder that only keeps track of running work.
func New() ports.Telemetry {
	return NewRecorder(progrock.Discard{})
}

// NewRecorder creates a new Recorder that also forwards every update to w.
func NewRecorder(w progrock.Writer) *Recorder {
	activity := NewActivity()
	multi := progrock.MultiWriter{activity, w}
	return &Recorder{
		w:        multi,
		activity: activity,
		rec:      progrock.NewRecorder(multi),
	}
}

// Record starts a vertex. Each call gets its own digest so that recomputing
// the same folder does not overwrite the earlier vertex.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	d := digest.FromString(name + "#" + strconv.FormatUint(r.seq.Add(1), 10))
	v := r.rec.Vertex(d, name)
	return ctx, &Vertex{vertex: v}
}

// Activity reports the walks still running and how many have finished.
func (r *Recorder) Activity() domain.Activity {
	return r.activity.Snapshot()
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	return r.w.Close()
}
