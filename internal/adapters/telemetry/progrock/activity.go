package progrock

import (
	"slices"
	"sync"

	"github.com/vito/progrock"
	"go.trai.ch/glass/internal/core/domain"
)

// Activity is a progrock.Writer that tracks vertexes from start to completion.
// Finished vertexes are counted and forgotten, and logs are ignored.
type Activity struct {
	mu      sync.Mutex
	running map[string]string
	done    int
	failed  int
}

// NewActivity creates an empty Activity.
func NewActivity() *Activity {
	return &Activity{running: make(map[string]string)}
}

// WriteStatus applies the vertex updates in u.
func (a *Activity) WriteStatus(u *progrock.StatusUpdate) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, v := range u.GetVertexes() {
		if v.GetCompleted() == nil {
			if v.GetStarted() != nil {
				a.running[v.GetId()] = v.GetName()
			}
			continue
		}
		if _, ok := a.running[v.GetId()]; !ok {
			continue
		}
		delete(a.running, v.GetId())
		a.done++
		if v.Error != nil || v.GetCanceled() {
			a.failed++
		}
	}
	return nil
}

// Close implements progrock.Writer.
func (a *Activity) Close() error {
	return nil
}

// Snapshot returns the current state.
func (a *Activity) Snapshot() domain.Activity {
	a.mu.Lock()
	defer a.mu.Unlock()

	running := make([]string, 0, len(a.running))
	for _, name := range a.running {
		running = append(running, name)
	}
	slices.Sort(running)
	return domain.Activity{Running: running, Done: a.done, Failed: a.failed}
}
