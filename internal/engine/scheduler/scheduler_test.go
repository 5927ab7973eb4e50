package scheduler_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/glass/internal/adapters/dispatch"
	"go.trai.ch/glass/internal/adapters/fs"
	"go.trai.ch/glass/internal/adapters/jsonstore"
	"go.trai.ch/glass/internal/adapters/logger"
	"go.trai.ch/glass/internal/adapters/telemetry"
	"go.trai.ch/glass/internal/core/domain"
	"go.trai.ch/glass/internal/core/ports"
	"go.trai.ch/glass/internal/core/ports/mocks"
	"go.trai.ch/glass/internal/engine/scheduler"
	"go.trai.ch/glass/internal/engine/sizecache"
	"go.uber.org/mock/gomock"
)

var quiet = logger.NewWithWriter(io.Discard)

// inline runs callbacks on the calling goroutine.
var inline = ports.DispatchFunc(func(fn func()) { fn() })

func TestScheduler_Request_Dedup(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := mocks.NewMockSizeCache(ctrl)
		fsys := mocks.NewMockFileSystem(ctrl)

		release := make(chan struct{})
		fsys.EXPECT().DirSize(gomock.Any(), "/big").DoAndReturn(func(_ context.Context, _ string) (int64, error) {
			<-release
			return 1 << 20, nil
		}).Times(1)
		cache.EXPECT().Set("/big", int64(1<<20)).Return(true).Times(1)

		s := scheduler.NewScheduler(cache, fsys, telemetry.NewNoOp(), quiet, inline, 2)

		var calls atomic.Int32
		assert.True(t, s.Request("/big", func() { calls.Add(1) }))
		synctest.Wait()
		assert.Equal(t, scheduler.StatusComputing, s.Status("/big"))

		assert.False(t, s.Request("/big", func() { calls.Add(1) }), "second request joins the running job")
		assert.False(t, s.Request("/big", nil))
		assert.Equal(t, 1, s.Pending())

		close(release)
		s.Wait()

		assert.Equal(t, int32(2), calls.Load())
		assert.Equal(t, scheduler.StatusIdle, s.Status("/big"))
		assert.Zero(t, s.Pending())
	})
}

func TestScheduler_Request_BoundedPool(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := mocks.NewMockSizeCache(ctrl)
		fsys := mocks.NewMockFileSystem(ctrl)

		const workers = 3
		const folders = 10

		release := make(chan struct{})
		var running, peak atomic.Int32
		fsys.EXPECT().DirSize(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ string) (int64, error) {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			<-release
			running.Add(-1)
			return 1, nil
		}).Times(folders)
		cache.EXPECT().Set(gomock.Any(), int64(1)).Return(true).Times(folders)

		s := scheduler.NewScheduler(cache, fsys, telemetry.NewNoOp(), quiet, inline, workers)

		for i := range folders {
			require.True(t, s.Request(filepath.Join("/root", string(rune('a'+i))), nil))
		}
		synctest.Wait()

		assert.Equal(t, int32(workers), running.Load())
		statuses := s.Jobs()
		assert.Len(t, statuses, folders)
		var computing, pending int
		for _, st := range statuses {
			switch st {
			case scheduler.StatusComputing:
				computing++
			case scheduler.StatusPending:
				pending++
			}
		}
		assert.Equal(t, workers, computing)
		assert.Equal(t, folders-workers, pending)

		close(release)
		s.Wait()
		assert.Equal(t, int32(workers), peak.Load())
	})
}

func TestScheduler_PartialWalkIsCached(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := mocks.NewMockSizeCache(ctrl)
		fsys := mocks.NewMockFileSystem(ctrl)
		tel := mocks.NewMockTelemetry(ctrl)
		vertex := mocks.NewMockVertex(ctrl)

		walkErr := errors.New("permission denied")
		fsys.EXPECT().DirSize(gomock.Any(), "/locked").Return(int64(512), walkErr)
		cache.EXPECT().Set("/locked", int64(512)).Return(true)
		tel.EXPECT().Record(gomock.Any(), "size /locked").DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ctx, vertex
		})
		vertex.EXPECT().Log("512 B")
		vertex.EXPECT().Complete(walkErr)

		s := scheduler.NewScheduler(cache, fsys, tel, quiet, inline, 1)

		done := false
		s.Request("/locked", func() { done = true })
		s.Wait()
		assert.True(t, done)
	})
}

func TestScheduler_CallbacksGoThroughDispatcher(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := mocks.NewMockSizeCache(ctrl)
		fsys := mocks.NewMockFileSystem(ctrl)
		dispatcher := mocks.NewMockDispatcher(ctrl)

		fsys.EXPECT().DirSize(gomock.Any(), "/p").Return(int64(7), nil)
		cache.EXPECT().Set("/p", int64(7)).Return(true)

		var queued []func()
		dispatcher.EXPECT().Dispatch(gomock.Any()).Do(func(fn func()) {
			queued = append(queued, fn)
		}).Times(1)

		s := scheduler.NewScheduler(cache, fsys, telemetry.NewNoOp(), quiet, dispatcher, 1)

		ran := false
		s.Request("/p", func() { ran = true })
		s.Wait()

		assert.False(t, ran, "the worker never calls the callback itself")
		require.Len(t, queued, 1)
		queued[0]()
		assert.True(t, ran)
	})
}

func TestScheduler_PendingClearedBeforeDispatch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := mocks.NewMockSizeCache(ctrl)
		fsys := mocks.NewMockFileSystem(ctrl)

		fsys.EXPECT().DirSize(gomock.Any(), "/p").Return(int64(7), nil).Times(2)
		cache.EXPECT().Set("/p", int64(7)).Return(true).Times(2)

		s := scheduler.NewScheduler(cache, fsys, telemetry.NewNoOp(), quiet, inline, 1)

		var status scheduler.Status
		var again bool
		s.Request("/p", func() {
			status = s.Status("/p")
			again = s.Request("/p", nil)
		})
		s.Wait()

		assert.Equal(t, scheduler.StatusIdle, status)
		assert.True(t, again, "a callback may request the same path again")
	})
}

func TestScheduler_SetDispatcher(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := mocks.NewMockSizeCache(ctrl)
		fsys := mocks.NewMockFileSystem(ctrl)
		fsys.EXPECT().DirSize(gomock.Any(), gomock.Any()).Return(int64(1), nil).AnyTimes()
		cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(true).AnyTimes()

		serial := dispatch.NewSerial()
		defer serial.Close()

		s := scheduler.NewScheduler(cache, fsys, telemetry.NewNoOp(), quiet, inline, 1)
		prev := s.SetDispatcher(serial)
		assert.NotNil(t, prev)
		assert.Equal(t, ports.Dispatcher(serial), s.Dispatcher())

		var mu sync.Mutex
		var order []string
		for _, p := range []string{"/a", "/b", "/c"} {
			s.Request(p, func() {
				mu.Lock()
				order = append(order, p)
				mu.Unlock()
			})
		}
		s.Wait()
		serial.Flush()

		mu.Lock()
		defer mu.Unlock()
		assert.ElementsMatch(t, []string{"/a", "/b", "/c"}, order)
	})
}

func TestScheduler_NilDispatcherDropsCallbacks(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := mocks.NewMockSizeCache(ctrl)
		fsys := mocks.NewMockFileSystem(ctrl)
		fsys.EXPECT().DirSize(gomock.Any(), "/p").Return(int64(1), nil)
		cache.EXPECT().Set("/p", int64(1)).Return(true)

		s := scheduler.NewScheduler(cache, fsys, telemetry.NewNoOp(), quiet, nil, 1)
		s.Request("/p", func() { t.Error("callback must not run without a dispatcher") })
		s.Wait()
		assert.Zero(t, s.Pending())
	})
}

func TestScheduler_Measure_SharesWalk(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := mocks.NewMockSizeCache(ctrl)
		fsys := mocks.NewMockFileSystem(ctrl)

		release := make(chan struct{})
		fsys.EXPECT().DirSize(gomock.Any(), "/p").DoAndReturn(func(_ context.Context, _ string) (int64, error) {
			<-release
			return 99, nil
		}).Times(1)
		cache.EXPECT().Set("/p", int64(99)).Return(true).Times(1)

		s := scheduler.NewScheduler(cache, fsys, telemetry.NewNoOp(), quiet, inline, 4)
		s.Request("/p", nil)
		synctest.Wait()

		var size int64
		var err error
		measured := make(chan struct{})
		go func() {
			size, err = s.Measure(t.Context(), "/p")
			close(measured)
		}()
		synctest.Wait()

		close(release)
		<-measured
		s.Wait()

		require.NoError(t, err)
		assert.Equal(t, int64(99), size)
	})
}

func TestScheduler_Measure_CancelledWhileQueued(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := mocks.NewMockSizeCache(ctrl)
		fsys := mocks.NewMockFileSystem(ctrl)

		release := make(chan struct{})
		fsys.EXPECT().DirSize(gomock.Any(), "/busy").DoAndReturn(func(_ context.Context, _ string) (int64, error) {
			<-release
			return 1, nil
		})
		cache.EXPECT().Set("/busy", int64(1)).Return(true)

		s := scheduler.NewScheduler(cache, fsys, telemetry.NewNoOp(), quiet, inline, 1)
		s.Request("/busy", nil)
		synctest.Wait()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		_, err := s.Measure(ctx, "/other")
		require.ErrorIs(t, err, context.Canceled)

		close(release)
		s.Wait()
	})
}

func TestScheduler_EndToEnd(t *testing.T) {
	root := t.TempDir()
	folder := filepath.Join(root, "folder")
	writeFile(t, filepath.Join(folder, "a.bin"), 1000)
	writeFile(t, filepath.Join(folder, "nested", "b.bin"), 24)

	store := jsonstore.NewStore(filepath.Join(root, "data"), quiet)
	require.NoError(t, store.Init())
	fsys := fs.New(nil)
	cache := sizecache.New(store, fsys, quiet, domain.DefaultMtimeTolerance)

	serial := dispatch.NewSerial()
	defer serial.Close()
	s := scheduler.NewScheduler(cache, fsys, telemetry.NewNoOp(), quiet, serial, 2)

	_, ok := cache.Get(folder)
	require.False(t, ok)

	var got int64
	s.Request(folder, func() {
		got, _ = cache.Get(folder)
	})
	s.Wait()
	serial.Flush()

	assert.Equal(t, int64(1024), got)

	var persisted domain.SizeIndex
	require.True(t, store.Read(domain.DatasetFolderSizes, &persisted))
	assert.Equal(t, int64(1024), persisted[folder].Size)
}

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o600))
}
