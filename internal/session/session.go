// Package session orchestrates the per-frame cycle: landmarks in,
// classified and stabilized categories out, one reaction asset per change.
package session

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ayusman/abhinaya/internal/capture"
	"github.com/ayusman/abhinaya/internal/classify"
	"github.com/ayusman/abhinaya/internal/pool"
	"github.com/ayusman/abhinaya/internal/stabilize"
	"github.com/ayusman/abhinaya/internal/store"
	"github.com/ayusman/abhinaya/internal/tracker"
)

// Loop pacing constants.
const (
	// IdleFPS is the frame rate while the motion gate is quiet.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active detection.
	ActiveFPS = 15
	// IdleTimeout is how long after the last motion the loop drops back to
	// the idle rate.
	IdleTimeout = 2 * time.Second

	// DefaultGestureFloor is the raw gesture confidence above which a
	// stabilized gesture outranks the facial expression.
	DefaultGestureFloor = 0.5
)

// ReactionKind tags which classifier won the frame's arbitration.
type ReactionKind string

const (
	KindExpression ReactionKind = "expression"
	KindGesture    ReactionKind = "gesture"
)

// Reaction is the arbitrated output of one frame.
type Reaction struct {
	Kind       ReactionKind `json:"kind"`
	Category   string       `json:"category"`
	Confidence float64      `json:"confidence"`
	AssetID    string       `json:"asset_id,omitempty"`
	At         time.Time    `json:"at"`
}

// Config holds session configuration.
type Config struct {
	Thresholds      classify.Thresholds
	Stabilizer      stabilize.Config
	GestureFloor    float64
	CameraID        int
	MotionThreshold float64
	Store           *store.Store
}

// Session owns one detection run: a tracker, both classifiers with their
// stabilizers, and the selection pool. All per-frame state lives here;
// nothing is process-global, so tests can run sessions side by side.
type Session struct {
	cfg    Config
	camera capture.Camera
	motion *capture.MotionGate
	track  tracker.Tracker

	expressions *classify.ExpressionClassifier
	gestures    *classify.GestureClassifier
	exprStab    *stabilize.Stabilizer[classify.Expression]
	gestStab    *stabilize.Stabilizer[classify.Gesture]
	selector    *pool.Selector

	log zerolog.Logger

	mu         sync.RWMutex
	enabled    bool
	stopCh     chan struct{}
	onReaction func(Reaction)
	last       Reaction
}

// New creates a Session. The tracker and selector are owned by the caller's
// wiring but driven exclusively by the session.
func New(cfg Config, trk tracker.Tracker, selector *pool.Selector, log zerolog.Logger) *Session {
	if cfg.GestureFloor <= 0 {
		cfg.GestureFloor = DefaultGestureFloor
	}
	if cfg.MotionThreshold <= 0 {
		cfg.MotionThreshold = 1.0 // percent of pixels changed
	}
	return &Session{
		cfg:         cfg,
		camera:      capture.NewCamera(cfg.CameraID),
		motion:      capture.NewMotionGate(cfg.MotionThreshold),
		track:       trk,
		expressions: classify.NewExpressionClassifier(cfg.Thresholds),
		gestures:    classify.NewGestureClassifier(),
		exprStab:    stabilize.New(classify.ExpressionNeutral, cfg.Stabilizer),
		gestStab:    stabilize.New(classify.GestureNone, cfg.Stabilizer),
		selector:    selector,
		log:         log.With().Str("component", "session").Logger(),
		last:        Reaction{Kind: KindExpression, Category: string(classify.ExpressionNeutral)},
	}
}

// SetCamera swaps the camera implementation. Must be called before Start.
func (s *Session) SetCamera(c capture.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.camera = c
}

// SetClock injects a time source into both stabilizers for tests.
func (s *Session) SetClock(now func() time.Time) {
	s.exprStab.SetClock(now)
	s.gestStab.SetClock(now)
}

// OnReaction registers a callback invoked whenever the arbitrated reaction
// changes category. Called from the pipeline goroutine.
func (s *Session) OnReaction(fn func(Reaction)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReaction = fn
}

// SetEnabled enables or disables detection without tearing the loop down.
func (s *Session) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
}

// IsEnabled reports whether detection is currently enabled.
func (s *Session) IsEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled
}

// Camera returns the camera instance for the preview endpoint.
func (s *Session) Camera() capture.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.camera
}

// State returns the current stable categories and the last reaction.
func (s *Session) State() (expression classify.Expression, gesture classify.Gesture, last Reaction) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exprStab.Current(), s.gestStab.Current(), s.last
}

// Process runs one classify→stabilize→arbitrate→select cycle on a frame of
// landmarks. It is synchronous and performs no I/O beyond the store write on
// a category change, so it is safe to call at any rate.
func (s *Session) Process(f tracker.Frame) Reaction {
	rawExpr, exprConf := s.expressions.Classify(f.Face)
	rawGest, gestConf := s.gestures.Classify(f.Hand)

	stableExpr, exprConf := s.exprStab.Observe(rawExpr, exprConf)
	stableGest, gestConf := s.gestStab.Observe(rawGest, gestConf)

	// Gesture outranks expression, but only while the instantaneous gesture
	// signal is strong enough.
	kind := KindExpression
	category := string(stableExpr)
	confidence := exprConf
	if stableGest != classify.GestureNone && gestConf >= s.cfg.GestureFloor {
		kind = KindGesture
		category = string(stableGest)
		confidence = gestConf
	}

	s.mu.Lock()
	if s.last.Kind == kind && s.last.Category == category {
		// Same stable reaction; keep the asset, refresh the signal.
		s.last.Confidence = confidence
		r := s.last
		s.mu.Unlock()
		return r
	}

	reaction := Reaction{
		Kind:       kind,
		Category:   category,
		Confidence: confidence,
		At:         time.Now(),
	}
	if s.selector != nil {
		if id, ok := s.selector.Select(category); ok {
			reaction.AssetID = id
		}
	}
	s.last = reaction
	callback := s.onReaction
	s.mu.Unlock()

	s.log.Info().
		Str("kind", string(kind)).
		Str("category", category).
		Float64("confidence", confidence).
		Str("asset", reaction.AssetID).
		Msg("reaction changed")

	if s.cfg.Store != nil {
		ev := &store.ReactionEvent{
			Kind:       string(kind),
			Category:   category,
			Confidence: confidence,
			AssetID:    reaction.AssetID,
		}
		if err := s.cfg.Store.Events().Insert(ev); err != nil {
			s.log.Warn().Err(err).Msg("failed to log reaction event")
		}
	}

	if callback != nil {
		callback(reaction)
	}
	return reaction
}

// Reset clears both stabilizers and the last reaction. Recent-pick buffers
// in the selection pool survive on purpose; they are process-lifetime state.
func (s *Session) Reset() {
	s.exprStab.Reset()
	s.gestStab.Reset()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = Reaction{Kind: KindExpression, Category: string(classify.ExpressionNeutral)}
}

// Start opens the camera and begins the detection loop.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopCh != nil {
		return nil
	}

	if err := s.camera.Open(); err != nil {
		return err
	}
	s.camera.SetFPS(IdleFPS)

	s.stopCh = make(chan struct{})
	go s.runLoop(s.stopCh)

	s.log.Info().Msg("detection started")
	return nil
}

// Stop halts the loop, releases capture resources and resets the
// stabilization state so the next Start begins from the defaults.
func (s *Session) Stop() {
	s.mu.Lock()
	if s.stopCh != nil {
		close(s.stopCh)
		s.stopCh = nil
	}
	camera := s.camera
	s.mu.Unlock()

	if err := camera.Close(); err != nil {
		s.log.Warn().Err(err).Msg("error closing camera")
	}
	s.motion.Close()
	if s.track != nil {
		if err := s.track.Close(); err != nil {
			s.log.Warn().Err(err).Msg("error closing tracker")
		}
	}

	s.Reset()
	s.log.Info().Msg("detection stopped")
}
