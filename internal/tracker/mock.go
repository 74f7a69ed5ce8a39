package tracker

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockTracker is a test implementation of the Tracker interface.
// It replays a queue of frames, repeating the last one when the queue runs
// dry, which lets tests and camera-less development drive the full pipeline.
type MockTracker struct {
	mu     sync.Mutex
	queue  []Frame
	last   Frame
	err    error
	closed bool
}

// NewMockTracker creates a new MockTracker instance.
func NewMockTracker() *MockTracker {
	return &MockTracker{}
}

// SetFrame sets a single frame returned by every Track call.
func (m *MockTracker) SetFrame(f Frame) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = nil
	m.last = f
}

// Enqueue appends frames to be returned by successive Track calls.
func (m *MockTracker) Enqueue(frames ...Frame) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, frames...)
}

// SetError sets the error returned by Track.
func (m *MockTracker) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Track returns the next queued frame, or the last one when the queue is
// empty. The gocv frame is ignored.
func (m *MockTracker) Track(_ *gocv.Mat) (Frame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return Frame{}, m.err
	}
	if len(m.queue) > 0 {
		m.last = m.queue[0]
		m.queue = m.queue[1:]
	}
	return m.last, nil
}

// Close marks the tracker closed.
func (m *MockTracker) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockTracker) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
