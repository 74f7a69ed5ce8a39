package session

import (
	"time"
)

// runLoop is the detection loop. It reads frames at a motion-gated rate,
// ships them to the tracker and feeds the landmark frames through Process.
//
// Rate policy: idle at IdleFPS until the motion gate trips, then ActiveFPS
// until IdleTimeout passes with no motion. Throttling lives here, not in the
// core cycle, which is safe at any call rate.
func (s *Session) runLoop(stopCh chan struct{}) {
	activeMode := false
	lastMotion := time.Now()

	interval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !s.IsEnabled() {
				continue
			}

			frame, err := s.Camera().ReadFrame()
			if err != nil {
				s.log.Debug().Err(err).Msg("read frame")
				continue
			}

			moved, _ := s.motion.Detect(frame)
			if moved {
				lastMotion = time.Now()
				if !activeMode {
					activeMode = true
					s.Camera().SetFPS(ActiveFPS)
					interval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(interval)
					s.log.Debug().Msg("switched to active mode")
				}
			} else if activeMode && time.Since(lastMotion) > IdleTimeout {
				activeMode = false
				s.Camera().SetFPS(IdleFPS)
				interval = time.Second / time.Duration(IdleFPS)
				ticker.Reset(interval)
				s.log.Debug().Msg("switched to idle mode")
			}

			if !activeMode || s.track == nil {
				frame.Close()
				continue
			}

			landmarks, err := s.track.Track(frame)
			frame.Close()
			if err != nil {
				s.log.Warn().Err(err).Msg("track frame")
				continue
			}

			s.Process(landmarks)
		}
	}
}
