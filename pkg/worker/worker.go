// Package worker hosts the solver behind an asynchronous request/response
// boundary.
//
// The solver itself is a plain synchronous function; everything about
// running it off a caller's event loop lives here. The host serializes
// requests, tags each with an increasing integer ID, and delivers one at a
// time to a worker goroutine. Submitting while a request is queued
// replaces the queued request, and a result whose ID is no longer the most
// recently issued one is discarded on return — that is the entire
// cancellation model; the solver is never interrupted mid-computation.
//
// A panicking solve is contained at the worker boundary and retried a
// bounded number of times; past the bound the crash surfaces as an error
// response. The solver holds no external resources, so containment needs
// no cleanup beyond dropping the attempt.
package worker

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/chronoline/chronoline/pkg/model"
)

// Wire message types of the host/worker protocol.
const (
	// MsgSolve labels a request carrying solver input.
	MsgSolve = "solve"
	// MsgResult labels a response carrying a solver result.
	MsgResult = "result"
	// MsgError labels a response for a crashed solve.
	MsgError = "error"
	// MsgReady is emitted once when the worker starts.
	MsgReady = "ready"
)

// MaxRetries bounds how many times a crashed request is re-attempted
// before the error response is surfaced.
const MaxRetries = 2

// SolveInput is the payload of a solve request.
type SolveInput struct {
	Events     []model.Event     `json:"events"`
	Assertions []model.Assertion `json:"assertions"`
}

// Request is one wire request to the worker.
type Request struct {
	Type      string     `json:"type"`
	RequestID int64      `json:"request_id"`
	Input     SolveInput `json:"input"`
}

// Response is one wire message from the worker: a ready signal, a result,
// or a crash report.
type Response struct {
	Type      string        `json:"type"`
	RequestID int64         `json:"request_id,omitempty"`
	Result    *model.Result `json:"result,omitempty"`
	Error     string        `json:"error_message,omitempty"`
}

// SolveFunc is the pure solver the host wraps.
type SolveFunc func(events []model.Event, assertions []model.Assertion) model.Result

// Host owns one worker goroutine and the request bookkeeping around it.
type Host struct {
	solve   SolveFunc
	latest  atomic.Int64
	submit  chan Request
	results chan Response
	done    chan struct{}
	once    sync.Once
}

// NewHost starts a host around solve. The first message on Results is
// always {type: ready}.
func NewHost(solve SolveFunc) *Host {
	h := &Host{
		solve:   solve,
		submit:  make(chan Request),
		results: make(chan Response, 16),
		done:    make(chan struct{}),
	}
	go h.loop()
	return h
}

// Results delivers the ready signal and then one response per surviving
// request. Responses for superseded requests never appear. The channel is
// closed by Close. Consumers must drain it.
func (h *Host) Results() <-chan Response { return h.results }

// Submit queues input for solving and returns its request ID. A request
// still waiting for the worker is replaced; a request already being solved
// runs to completion and its result is discarded on return. Submit after
// Close returns the ID without queueing.
func (h *Host) Submit(input SolveInput) int64 {
	id := h.latest.Add(1)
	h.enqueue(Request{Type: MsgSolve, RequestID: id, Input: input})
	return id
}

// SubmitTagged queues input under a caller-chosen request ID, for fronting
// a remote peer that numbers its own requests. The most recently submitted
// ID is the one whose result survives, regardless of numeric order.
func (h *Host) SubmitTagged(id int64, input SolveInput) {
	h.latest.Store(id)
	h.enqueue(Request{Type: MsgSolve, RequestID: id, Input: input})
}

func (h *Host) enqueue(req Request) {
	select {
	case h.submit <- req:
	case <-h.done:
	}
}

// Close shuts the host down and closes the results channel. A solve in
// flight is abandoned (its result is dropped).
func (h *Host) Close() {
	h.once.Do(func() { close(h.done) })
}

// loop is the host scheduler: it holds at most one queued request,
// delivers it when the worker is idle, filters stale results, and retries
// crashed requests.
func (h *Host) loop() {
	// Capacity 2 covers the worst case of one ready signal plus one
	// response in flight, so the worker's sends never block and closing
	// in always lets it exit.
	in := make(chan Request)
	out := make(chan Response, 2)
	go h.worker(in, out)

	defer close(h.results)
	defer close(in)

	var pending, inflight *Request
	retries := 0

	for {
		var deliver chan Request
		var next Request
		if pending != nil && inflight == nil {
			deliver = in
			next = *pending
		}

		select {
		case req := <-h.submit:
			pending = &req
			retries = 0

		case deliver <- next:
			inflight = pending
			pending = nil

		case resp := <-out:
			if resp.Type == MsgReady {
				h.deliver(resp)
				continue
			}
			if resp.Type == MsgError && retries < MaxRetries {
				retries++
				if pending == nil && inflight != nil {
					pending = inflight
				}
				inflight = nil
				continue
			}
			inflight = nil
			retries = 0
			if resp.RequestID == h.latest.Load() {
				h.deliver(resp)
			}

		case <-h.done:
			return
		}
	}
}

// deliver pushes a response to the consumer unless the host is closing.
func (h *Host) deliver(resp Response) {
	select {
	case h.results <- resp:
	case <-h.done:
	}
}

// worker runs requests one at a time. It announces readiness once, then
// answers every delivered request with exactly one response.
func (h *Host) worker(in <-chan Request, out chan<- Response) {
	out <- Response{Type: MsgReady}
	for req := range in {
		out <- h.run(req)
	}
}

// run executes one solve, converting a panic into an error response. The
// recovery boundary is what lets the host treat a crashed computation as a
// discardable attempt rather than a process failure.
func (h *Host) run(req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			resp = Response{
				Type:      MsgError,
				RequestID: req.RequestID,
				Error:     fmt.Sprintf("solver worker crashed: %v", r),
			}
		}
	}()
	result := h.solve(req.Input.Events, req.Input.Assertions)
	return Response{Type: MsgResult, RequestID: req.RequestID, Result: &result}
}
