package fingerprint

import (
	"context"
	"sync"
	"time"

	"github.com/ipflix/ipflix/internal/entity"
)

// MouseObservationWindow bounds how long WaitForMouse waits for a first movement
const MouseObservationWindow = time.Second

// BehaviorRecorder accumulates which kinds of user input were seen during a
// session. Each signal latches on first occurrence. Safe for concurrent use.
type BehaviorRecorder struct {
	mu       sync.Mutex
	keyboard bool
	touch    bool

	mouseOnce sync.Once
	mouseSeen chan struct{}
}

// NewBehaviorRecorder creates an empty recorder.
func NewBehaviorRecorder() *BehaviorRecorder {
	return &BehaviorRecorder{mouseSeen: make(chan struct{})}
}

// RecordMouse marks that the pointer moved.
func (r *BehaviorRecorder) RecordMouse() {
	r.mouseOnce.Do(func() { close(r.mouseSeen) })
}

// RecordKeyboard marks a key press.
func (r *BehaviorRecorder) RecordKeyboard() {
	r.mu.Lock()
	r.keyboard = true
	r.mu.Unlock()
}

// RecordTouch marks a touch start.
func (r *BehaviorRecorder) RecordTouch() {
	r.mu.Lock()
	r.touch = true
	r.mu.Unlock()
}

// MouseMoved reports whether a movement has been recorded so far.
func (r *BehaviorRecorder) MouseMoved() bool {
	select {
	case <-r.mouseSeen:
		return true
	default:
		return false
	}
}

// WaitForMouse returns true as soon as a movement is recorded, or false once
// the window elapses or ctx is done.
func (r *BehaviorRecorder) WaitForMouse(ctx context.Context, window time.Duration) bool {
	if r.MouseMoved() {
		return true
	}

	timer := time.NewTimer(window)
	defer timer.Stop()

	select {
	case <-r.mouseSeen:
		return true
	case <-timer.C:
		return false
	case <-ctx.Done():
		return false
	}
}

// Snapshot returns the accumulated signals. automation is the webdriver flag.
func (r *BehaviorRecorder) Snapshot(automation bool) entity.BehavioralProbe {
	r.mu.Lock()
	defer r.mu.Unlock()
	return entity.BehavioralProbe{
		MouseMovement:      r.MouseMoved(),
		KeyboardDetected:   r.keyboard,
		TouchDetected:      r.touch,
		AutomationDetected: automation,
	}
}
