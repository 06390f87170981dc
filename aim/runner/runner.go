// Package runner orchestrates aim-point optimization jobs. A multi-second
// search must never stall whatever drives the interactive planner, so the
// runner isolates each search on its own goroutine and hands the caller a
// handle to wait on (or abandon). Jobs are coalesced per course through
// an explicit job table owned by the Runner instance; there is no
// process-wide state.
package runner

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/caddie-sim/caddie-sim/aim"
	"github.com/caddie-sim/caddie-sim/aim/trace"
)

// Job is one aim-point optimization request.
type Job struct {
	CourseID string
	Pin      aim.GeoPoint
	Feeds    aim.Feeds
	Config   aim.SearchConfig
	Seed     int64

	// Trace, when non-nil, receives the search's decision records.
	Trace *trace.SearchTrace
}

// Result is the single message a finished job produces. Best is nil when
// no candidate ever passed the feasibility filter; Err then carries
// aim.ErrNoFeasibleAim so callers can surface "no safe aim point found".
type Result struct {
	Best    *aim.AimCandidate
	Metrics aim.RunMetrics
	Err     error
}

// Handle identifies a submitted job and lets any number of callers wait
// for its single result. Abandoning a handle cancels the search; partial
// results are discarded and carry no side effects.
type Handle struct {
	ID       uuid.UUID
	CourseID string

	cancel context.CancelFunc
	done   chan struct{}
	result Result // written once, before done is closed
}

// Wait blocks until the job finishes or ctx is cancelled.
func (h *Handle) Wait(ctx context.Context) (Result, error) {
	select {
	case <-h.done:
		return h.result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Done exposes the completion channel for select-based callers. The
// result is readable via Wait once the channel is closed.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Abandon cancels the underlying search. Idempotent.
func (h *Handle) Abandon() {
	h.cancel()
}

// Runner owns the per-course job table. Zero process-wide state: two
// Runners never interfere.
type Runner struct {
	mu     sync.Mutex
	active map[string]*Handle
}

// NewRunner creates an empty Runner.
func NewRunner() *Runner {
	return &Runner{active: make(map[string]*Handle)}
}

// Submit starts (or joins) an optimization job. If a job for the same
// course is already running, its handle is returned instead of starting a
// second search — repeated submissions while one is in flight coalesce.
// Configuration errors are returned synchronously; search outcomes arrive
// through the handle.
func (r *Runner) Submit(job Job) (*Handle, error) {
	if job.CourseID == "" {
		return nil, errors.New("submit: empty course id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.active[job.CourseID]; ok {
		logrus.Debugf("job for course %s already active (%s), coalescing", job.CourseID, h.ID)
		return h, nil
	}

	opt, err := aim.NewAimPointOptimizer(job.Pin, job.Feeds, job.Config, aim.NewSearchKey(job.Seed))
	if err != nil {
		return nil, err
	}
	opt.Trace = job.Trace

	ctx, cancel := context.WithCancel(context.Background())
	h := &Handle{
		ID:       uuid.New(),
		CourseID: job.CourseID,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	r.active[job.CourseID] = h

	go func() {
		defer cancel()
		best, err := opt.Run(ctx)
		h.result = Result{Best: best, Metrics: opt.Metrics(), Err: err}

		r.mu.Lock()
		delete(r.active, job.CourseID)
		r.mu.Unlock()
		close(h.done)

		if err != nil {
			logrus.Infof("job %s (course %s) finished without a result: %v", h.ID, h.CourseID, err)
			return
		}
		logrus.Infof("job %s (course %s) found aim r=%.1fyd th=%.3frad es=%.3f",
			h.ID, h.CourseID, best.RadiusYds, best.BearingRad, best.Result.Mean)
	}()
	return h, nil
}

// Active reports whether a job is currently running for the course.
func (r *Runner) Active(courseID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.active[courseID]
	return ok
}

// EvaluateStrokes runs the expected-strokes sub-evaluation as an
// independent job: one request in, one ESResult out. It is synchronous
// because a single evaluation is cheap relative to a full search.
func (r *Runner) EvaluateStrokes(req aim.EvalRequest) (aim.ESResult, error) {
	return aim.NewExpectedStrokesEvaluator(nil).Evaluate(req)
}
