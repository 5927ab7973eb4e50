// Package scheduler computes folder sizes in the background.
package scheduler

import (
	"context"
	"runtime"
	"sync"

	"go.trai.ch/glass/internal/core/domain"
	"go.trai.ch/glass/internal/core/ports"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

// Status represents the state of a folder size computation.
type Status string

const (
	// StatusIdle indicates no computation is in flight for the path.
	StatusIdle Status = "Idle"
	// StatusPending indicates the computation is waiting for a worker slot.
	StatusPending Status = "Pending"
	// StatusComputing indicates the folder is being walked.
	StatusComputing Status = "Computing"
)

type job struct {
	status    Status
	callbacks []func()
}

// Scheduler runs folder walks on a bounded set of goroutines, stores the totals in
// the size cache and signals completion through a dispatcher.
type Scheduler struct {
	cache ports.SizeCache
	fs    ports.FileSystem
	tel   ports.Telemetry
	log   ports.Logger

	sem    *semaphore.Weighted
	flight singleflight.Group
	wg     sync.WaitGroup

	mu         sync.Mutex
	jobs       map[string]*job
	dispatcher ports.Dispatcher
}

// NewScheduler creates a Scheduler running at most workers walks at once.
// A value of zero or less uses the number of CPUs.
func NewScheduler(
	cache ports.SizeCache,
	fs ports.FileSystem,
	tel ports.Telemetry,
	log ports.Logger,
	dispatcher ports.Dispatcher,
	workers int,
) *Scheduler {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Scheduler{
		cache:      cache,
		fs:         fs,
		tel:        tel,
		log:        log,
		sem:        semaphore.NewWeighted(int64(workers)),
		jobs:       make(map[string]*job),
		dispatcher: dispatcher,
	}
}

// Request schedules a size computation for path. onDone, if not nil, is dispatched
// once the result is in the cache.
//
// If path is already pending or computing, onDone joins the running job and
// Request returns false.
func (s *Scheduler) Request(path string, onDone func()) bool {
	s.mu.Lock()
	if j, ok := s.jobs[path]; ok {
		if onDone != nil {
			j.callbacks = append(j.callbacks, onDone)
		}
		s.mu.Unlock()
		return false
	}

	j := &job{status: StatusPending}
	if onDone != nil {
		j.callbacks = append(j.callbacks, onDone)
	}
	s.jobs[path] = j
	s.wg.Add(1)
	s.mu.Unlock()

	go s.run(path)
	return true
}

func (s *Scheduler) run(path string) {
	defer s.wg.Done()

	// Errors are logged inside measure and the partial total is already cached.
	_, _ = s.Measure(context.Background(), path)

	s.mu.Lock()
	j := s.jobs[path]
	delete(s.jobs, path)
	d := s.dispatcher
	s.mu.Unlock()

	if j == nil || d == nil {
		return
	}
	for _, cb := range j.callbacks {
		d.Dispatch(cb)
	}
}

// Measure walks path and stores the total in the cache. Concurrent calls for the
// same path share one walk. A walk that fails part way returns the partial total
// along with the error; that total is cached too.
func (s *Scheduler) Measure(ctx context.Context, path string) (int64, error) {
	v, err, _ := s.flight.Do(path, func() (any, error) {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			return int64(0), err
		}
		defer s.sem.Release(1)

		s.setStatus(path, StatusComputing)
		return s.measure(ctx, path)
	})
	size, _ := v.(int64)
	return size, err
}

func (s *Scheduler) measure(ctx context.Context, path string) (int64, error) {
	ctx, vertex := s.tel.Record(ctx, "size "+path)

	size, err := s.fs.DirSize(ctx, path)
	if ctx.Err() != nil {
		// A cancelled walk is not cached.
		vertex.Complete(ctx.Err())
		return size, ctx.Err()
	}
	if err != nil {
		s.log.Warn("folder walk incomplete", "path", path, "error", err)
	}
	s.cache.Set(path, size)

	vertex.Log(domain.DisplaySize(size))
	vertex.Complete(err)
	return size, err
}

func (s *Scheduler) setStatus(path string, status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, ok := s.jobs[path]; ok {
		j.status = status
	}
}

// Status returns the state of the computation for path.
func (s *Scheduler) Status(path string) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, ok := s.jobs[path]; ok {
		return j.status
	}
	return StatusIdle
}

// Pending returns the number of paths with a computation in flight.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// SetDispatcher replaces the dispatcher used for completion callbacks and returns
// the previous one. Jobs finishing after the call use d.
func (s *Scheduler) SetDispatcher(d ports.Dispatcher) ports.Dispatcher {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.dispatcher
	s.dispatcher = d
	return prev
}

// Dispatcher returns the current dispatcher.
func (s *Scheduler) Dispatcher() ports.Dispatcher {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatcher
}

// Wait blocks until every requested job has finished and handed its callbacks to
// the dispatcher.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
