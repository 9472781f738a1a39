package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"techjobs/internal/core/types"

	"github.com/dustin/go-humanize"
)

// Tracker records the progress of a single operation, such as reading a
// dataset source. Safe for concurrent use.
type Tracker struct {
	name      string
	mu        sync.RWMutex
	status    types.Status
	startedAt time.Time
	endedAt   time.Time
	current   int64
	total     int64
	err       error
}

func NewTracker(name string) *Tracker {
	return &Tracker{
		name:   name,
		status: types.StatusPending,
	}
}

func (t *Tracker) Name() string {
	return t.name
}

func (t *Tracker) Status() types.Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

func (t *Tracker) Err() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.err
}

func (t *Tracker) Duration() time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.duration()
}

func (t *Tracker) duration() time.Duration {
	switch t.status {
	case types.StatusPending:
		return 0
	case types.StatusRunning:
		return time.Since(t.startedAt)
	default:
		return t.endedAt.Sub(t.startedAt)
	}
}

func (t *Tracker) Current() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

func (t *Tracker) IncCurrent(n int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = max(0, t.current+n)
}

func (t *Tracker) Total() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.total
}

// SetTotal sets the expected size. Zero means unknown.
func (t *Tracker) SetTotal(total int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.total = max(0, total)
}

// ProgressBytes returns current/total as a human readable string.
func (t *Tracker) ProgressBytes() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.total == 0 {
		return humanize.Bytes(uint64(t.current))
	}
	return fmt.Sprintf("%s/%s", humanize.Bytes(uint64(t.current)), humanize.Bytes(uint64(t.total)))
}

// Start marks the operation as running and clears counters from a previous attempt.
func (t *Tracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.startedAt = time.Now()
	t.endedAt = time.Time{}
	t.status = types.StatusRunning
	t.current = 0
	t.total = 0
	t.err = nil
}

// Update finishes the operation from its result.
func (t *Tracker) Update(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.endedAt = time.Now()
	t.err = err
	switch {
	case err == nil:
		t.status = types.StatusSucceeded
	case errors.Is(err, context.Canceled):
		t.status = types.StatusCanceled
	default:
		t.status = types.StatusFailed
	}
}

// Snapshot is a point-in-time copy of a tracker.
type Snapshot struct {
	Name      string       `json:"name"`
	Status    types.Status `json:"status"`
	StartedAt time.Time    `json:"started_at,omitzero"`
	Duration  string       `json:"duration"`
	Read      types.Bytes  `json:"read"`
	Total     types.Bytes  `json:"total"`
	Error     string       `json:"error,omitempty"`
}

func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s := Snapshot{
		Name:      t.name,
		Status:    t.status,
		StartedAt: t.startedAt,
		Duration:  t.duration().Round(time.Millisecond).String(),
		Read:      types.Bytes(t.current),
		Total:     types.Bytes(t.total),
	}
	if t.err != nil {
		s.Error = t.err.Error()
	}
	return s
}
