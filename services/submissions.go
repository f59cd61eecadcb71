package services

import (
	"context"
	"sync"
	"time"

	"github.com/rpupo63/solar-ops-backend/metrics"
	"golang.org/x/sync/singleflight"
)

// SubmissionState is where a keyed submission stands.
type SubmissionState int

const (
	Idle SubmissionState = iota
	Pending
	Succeeded
	Failed
)

func (s SubmissionState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

func (s SubmissionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type submission struct {
	state   SubmissionState
	err     error
	updated time.Time
}

// Submissions tracks form submissions by key. While a key is Pending,
// further submits with the same key join the running call instead of
// starting another one. Settled entries are forgotten after retention.
type Submissions struct {
	group     singleflight.Group
	mu        sync.Mutex
	entries   map[string]submission
	retention time.Duration
	now       func() time.Time
}

func NewSubmissions(retention time.Duration) *Submissions {
	if retention <= 0 {
		retention = 10 * time.Minute
	}
	return &Submissions{
		entries:   make(map[string]submission),
		retention: retention,
		now:       time.Now,
	}
}

// State returns the state of key and the error of its last failed run.
func (s *Submissions) State(key string) (SubmissionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return Idle, nil
	}
	return e.state, e.err
}

func (s *Submissions) set(key string, state SubmissionState, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.entries[key] = submission{state: state, err: err, updated: now}
	for k, e := range s.entries {
		if e.state != Pending && now.Sub(e.updated) > s.retention {
			delete(s.entries, k)
		}
	}
}

// Submit runs fn under key. kind labels the submission in metrics. The
// call keeps running if ctx is cancelled so that joined callers still get
// its result; the caller that gave up gets ctx.Err().
func Submit[T any](ctx context.Context, s *Submissions, kind, key string, fn func(context.Context) (T, error)) (T, bool, error) {
	runCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (any, error) {
		s.set(key, Pending, nil)
		v, err := fn(runCtx)
		if err != nil {
			s.set(key, Failed, err)
			metrics.IncrementSubmission(kind, "failed")
			return v, err
		}
		s.set(key, Succeeded, nil)
		metrics.IncrementSubmission(kind, "succeeded")
		return v, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, false, ctx.Err()
	case res := <-ch:
		if res.Shared {
			metrics.IncrementSubmission(kind, "coalesced")
		}
		v, _ := res.Val.(T)
		return v, res.Shared, res.Err
	}
}
