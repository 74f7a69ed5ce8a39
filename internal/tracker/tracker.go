// Package tracker provides landmark tracking interfaces and the MediaPipe
// subprocess implementation that yields face and hand landmark sets per
// frame.
package tracker

import (
	"gocv.io/x/gocv"

	"github.com/ayusman/abhinaya/internal/landmark"
)

// Frame is one frame's worth of tracked landmarks. Either set may be nil or
// short when the subject's face or hand was not picked up; consumers treat
// that as absence, not as an error.
type Frame struct {
	Face landmark.Set `json:"face"`
	Hand landmark.Set `json:"hand"`
	// Score is the tracker's own detection confidence for the frame's
	// strongest observation, 0 when nothing was seen.
	Score float64 `json:"score"`
}

// Tracker defines the interface for landmark tracking implementations.
type Tracker interface {
	// Track analyzes a video frame and returns the landmarks found in it.
	Track(frame *gocv.Mat) (Frame, error)

	// Close releases any resources held by the tracker.
	Close() error
}

// Config holds configuration options for landmark tracking.
type Config struct {
	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64

	// RefineFace requests the iris-refined 478-point face mesh.
	RefineFace bool
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MinConfidence:   0.5,
		MinTrackingConf: 0.5,
		RefineFace:      true,
	}
}
