package state

// Status is the lifecycle of an async request
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusFulfilled
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusFulfilled:
		return "fulfilled"
	case StatusRejected:
		return "rejected"
	default:
		return "idle"
	}
}

// Resource holds remotely loaded data and the state of the request filling it.
//
// Data survives both a new pending request and a rejection; only a fulfilled
// request replaces it. Every Pending call starts a new generation and a
// completion carrying an older generation is ignored, so the last request wins.
type Resource[T any] struct {
	Status Status
	Data   T
	Err    error

	gen uint64
}

// Loading reports whether a request is in flight
func (r Resource[T]) Loading() bool { return r.Status == StatusPending }

// Pending starts a new request and returns its generation
func (r Resource[T]) Pending() (Resource[T], uint64) {
	r.gen++
	r.Status = StatusPending
	r.Err = nil
	return r, r.gen
}

// Fulfilled completes request gen with data. The bool is false when gen is stale.
func (r Resource[T]) Fulfilled(gen uint64, data T) (Resource[T], bool) {
	if gen != r.gen {
		return r, false
	}
	r.Status = StatusFulfilled
	r.Data = data
	r.Err = nil
	return r, true
}

// Rejected fails request gen with err, keeping the previous data.
// The bool is false when gen is stale.
func (r Resource[T]) Rejected(gen uint64, err error) (Resource[T], bool) {
	if gen != r.gen {
		return r, false
	}
	r.Status = StatusRejected
	r.Err = err
	return r, true
}
