package ports

// Dispatcher runs functions on the UI's serial execution context.
//
//go:generate go run go.uber.org/mock/mockgen -source=dispatcher.go -destination=mocks/mock_dispatcher.go -package=mocks
type Dispatcher interface {
	// Dispatch schedules fn to run on the UI context. It must not block on fn.
	Dispatch(fn func())
}

// Flusher is implemented by dispatchers that can wait for queued functions to run.
type Flusher interface {
	// Flush blocks until every function dispatched before the call has run.
	Flush()
}

// DispatchFunc adapts a plain function to the Dispatcher interface.
type DispatchFunc func(fn func())

// Dispatch calls f(fn).
func (f DispatchFunc) Dispatch(fn func()) {
	f(fn)
}
