package bridge

import (
	"sync"

	"github.com/vertexml/inferbridge/pkg/native"
	"go.uber.org/zap"
)

// ResponseFuture hands one completed response from the engine's completion
// goroutine to one waiting caller. The cell is fulfilled at most once; the
// channel handoff gives the waiter a fully-constructed response.
//
// This only works for non-decoupled models. A decoupled model may send any
// number of responses per request and needs an ordered stream with explicit
// end-of-stream signaling instead.
type ResponseFuture struct {
	ch   chan native.Response
	once sync.Once
}

// NewResponseFuture creates an unfulfilled cell.
func NewResponseFuture() *ResponseFuture {
	return &ResponseFuture{ch: make(chan native.Response, 1)}
}

// Complete is the engine's response-completion callback. A nil response is a
// no-op: the cell stays unfulfilled and no waiter is released. Reports
// whether this call fulfilled the cell; a second non-nil completion is
// dropped.
func (f *ResponseFuture) Complete(resp native.Response, flags uint32) bool {
	if resp == nil {
		return false
	}
	fulfilled := false
	f.once.Do(func() {
		f.ch <- resp
		fulfilled = true
	})
	return fulfilled
}

// Get blocks until the cell is fulfilled. There is no timeout or
// cancellation here: if the engine never completes the request the wait is
// unbounded, and bounding it is the caller's responsibility. An unfulfilled
// cell after the request finished is a contract violation, not a condition
// to retry.
func (f *ResponseFuture) Get() native.Response {
	return <-f.ch
}

// TryGet returns the response if the cell has been fulfilled.
func (f *ResponseFuture) TryGet() (native.Response, bool) {
	select {
	case resp := <-f.ch:
		return resp, true
	default:
		return nil, false
	}
}

// RequestComplete is the engine's request-completion callback. The request
// handle is released on a best-effort basis; a close failure is logged and
// never propagated.
func RequestComplete(req native.Request, flags uint32, log *zap.Logger) {
	if req == nil {
		return
	}
	if err := req.Close(); err != nil {
		log.Error("failed to delete inference request", zap.Error(err))
	}
}
