package runner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caddie-sim/caddie-sim/aim"
)

// testFeeds builds feeds over a degenerate point cloud and uniform
// fairway. gate, when non-nil, is received from on every terrain lookup
// so tests can hold a job in flight.
func testFeeds(start, pin aim.GeoPoint, feasible bool, gate <-chan struct{}) aim.Feeds {
	base := aim.BearingBetween(start, pin)
	return aim.Feeds{
		Feasible: func(float64, float64) bool { return feasible },
		ToLatLon: func(r, th float64) aim.GeoPoint { return aim.Offset(start, r, base+th) },
		AxesFor:  func(float64) (float64, float64) { return 1, 1 },
		MakeEllipsePoints: func(center aim.GeoPoint, _, _ float64, n int) []aim.GeoPoint {
			points := make([]aim.GeoPoint, n)
			for i := range points {
				points[i] = center
			}
			return points
		},
		SampleClasses: func(points []aim.GeoPoint) []aim.TerrainClass {
			if gate != nil {
				<-gate
			}
			classes := make([]aim.TerrainClass, len(points))
			for i := range classes {
				classes[i] = aim.ClassFairway
			}
			return classes
		},
	}
}

func testJob(courseID string, feasible bool, gate <-chan struct{}) Job {
	start := aim.GeoPoint{}
	pin := aim.Offset(start, 150, 0)
	cfg := aim.DefaultSearchConfig()
	cfg.Iterations = 3
	cfg.BatchSize = 8
	cfg.CloudSize = 30
	cfg.MinSamples = 5
	cfg.MaxSamples = 30
	return Job{
		CourseID: courseID,
		Pin:      pin,
		Feeds:    testFeeds(start, pin, feasible, gate),
		Config:   cfg,
		Seed:     42,
	}
}

func TestSubmit_DeliversSingleResult(t *testing.T) {
	// GIVEN a feasible job
	r := NewRunner()
	h, err := r.Submit(testJob("course-1", true, nil))
	require.NoError(t, err)

	// WHEN waiting
	result, err := h.Wait(context.Background())
	require.NoError(t, err)

	// THEN one result arrives with a best candidate and metrics
	require.NoError(t, result.Err)
	require.NotNil(t, result.Best)
	assert.Greater(t, result.Best.RadiusYds, 0.0)
	assert.Greater(t, result.Metrics.CandidatesEvaluated, 0)

	// AND the job table entry is gone
	assert.False(t, r.Active("course-1"))
}

func TestSubmit_NothingFeasible_SurfacesCondition(t *testing.T) {
	// GIVEN a job whose feasibility predicate rejects everything
	r := NewRunner()
	h, err := r.Submit(testJob("course-1", false, nil))
	require.NoError(t, err)

	result, err := h.Wait(context.Background())
	require.NoError(t, err)

	// THEN the "no safe aim point" condition arrives as a tagged error,
	// not a crash
	assert.Nil(t, result.Best)
	assert.ErrorIs(t, result.Err, aim.ErrNoFeasibleAim)
}

func TestSubmit_CoalescesPerCourse(t *testing.T) {
	// GIVEN a job held in flight by its terrain gate
	gate := make(chan struct{})
	r := NewRunner()
	h1, err := r.Submit(testJob("course-1", true, gate))
	require.NoError(t, err)
	require.True(t, r.Active("course-1"))

	// WHEN submitting again for the same course, but not for another
	h2, err := r.Submit(testJob("course-1", true, gate))
	require.NoError(t, err)
	h3, err := r.Submit(testJob("course-2", true, nil))
	require.NoError(t, err)

	// THEN the same-course submission coalesced onto the running job
	assert.Equal(t, h1.ID, h2.ID)
	assert.NotEqual(t, h1.ID, h3.ID)

	// Release the gated job and drain both
	close(gate)
	_, err = h1.Wait(context.Background())
	require.NoError(t, err)
	_, err = h3.Wait(context.Background())
	require.NoError(t, err)
}

func TestHandle_AbandonCancelsSearch(t *testing.T) {
	// GIVEN a job blocked on its first terrain lookup
	gate := make(chan struct{})
	r := NewRunner()
	h, err := r.Submit(testJob("course-1", true, gate))
	require.NoError(t, err)

	// WHEN abandoning and unblocking
	h.Abandon()
	close(gate)

	// THEN the run winds down with a cancellation, with no result kept
	result, err := h.Wait(context.Background())
	require.NoError(t, err)
	assert.Nil(t, result.Best)
	assert.ErrorIs(t, result.Err, context.Canceled)
}

func TestHandle_WaitHonorsCallerContext(t *testing.T) {
	gate := make(chan struct{})
	defer close(gate)
	r := NewRunner()
	h, err := r.Submit(testJob("course-1", true, gate))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = h.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSubmit_RejectsBadJobsSynchronously(t *testing.T) {
	r := NewRunner()

	t.Run("empty course id", func(t *testing.T) {
		job := testJob("", true, nil)
		_, err := r.Submit(job)
		assert.Error(t, err)
	})
	t.Run("bad config", func(t *testing.T) {
		job := testJob("course-1", true, nil)
		job.Config.Iterations = 0
		_, err := r.Submit(job)
		assert.Error(t, err)
	})
}

func TestEvaluateStrokes_IndependentJob(t *testing.T) {
	// GIVEN a pre-resolved cloud (the standalone evaluation job shape)
	pin := aim.GeoPoint{}
	p := aim.Offset(pin, 100, 0)
	points := []aim.GeoPoint{p, p, p, p}
	classes := []aim.TerrainClass{aim.ClassFairway, aim.ClassFairway, aim.ClassFairway, aim.ClassFairway}

	result, err := NewRunner().EvaluateStrokes(aim.EvalRequest{
		Pin: pin, Points: points, Classes: classes,
		MinSamples: 4, MaxSamples: 4, Epsilon: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, result.N)
	assert.InDelta(t, 2.80, result.Mean, 1e-6)
}
