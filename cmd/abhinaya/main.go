package main

import (
	"os"
	"path/filepath"

	"github.com/ayusman/abhinaya/internal/config"
	"github.com/ayusman/abhinaya/internal/logging"
	"github.com/ayusman/abhinaya/internal/pool"
	"github.com/ayusman/abhinaya/internal/server"
	"github.com/ayusman/abhinaya/internal/session"
	"github.com/ayusman/abhinaya/internal/store"
	"github.com/ayusman/abhinaya/internal/tracker"
	"github.com/ayusman/abhinaya/internal/tray"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("info").Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logging.New(cfg.Log.Level)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Assets.DBPath), 0o755); err != nil {
		log.Fatal().Err(err).Msg("failed to create data directory")
	}

	st, err := store.New(cfg.Assets.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	defer st.Close()

	added, err := st.Assets().SeedFromDir(cfg.Assets.Dir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Assets.Dir).Msg("failed to seed asset catalogue")
	}
	if added > 0 {
		log.Info().Int("added", added).Msg("seeded new assets")
	}

	catalogue, err := st.Assets().Catalogue()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load asset catalogue")
	}
	selector := pool.New(cfg.Assets.DefaultCategory, catalogue)
	log.Info().Int("categories", len(selector.Categories())).Msg("asset catalogue loaded")

	// MediaPipe when available, mock otherwise so the app still runs.
	var trk tracker.Tracker
	if mp, err := tracker.NewMediaPipeTracker(tracker.DefaultConfig()); err == nil {
		trk = mp
		log.Info().Msg("using MediaPipe landmark tracking")
	} else {
		log.Warn().Err(err).Msg("MediaPipe unavailable, using mock tracker")
		trk = tracker.NewMockTracker()
	}

	sess := session.New(session.Config{
		Thresholds:      cfg.Detection.Thresholds,
		Stabilizer:      cfg.Timing,
		GestureFloor:    cfg.Detection.GestureFloor,
		CameraID:        cfg.Camera.DeviceID,
		MotionThreshold: cfg.Camera.MotionThreshold,
		Store:           st,
	}, trk, selector, log)

	srv := server.New(server.Config{
		StaticDir: cfg.Server.StaticDir,
		Store:     st,
		Session:   sess,
		Log:       log,
	})

	trayUI := tray.New()
	sess.OnReaction(func(r session.Reaction) {
		srv.Events().Publish(r)
		trayUI.SetReaction(r.Category)
	})
	trayUI.OnToggle(sess.SetEnabled)
	trayUI.OnQuit(func() {
		sess.Stop()
	})

	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting HTTP server")
		if err := srv.ListenAndServe(cfg.Server.Addr); err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	if err := sess.Start(); err != nil {
		log.Error().Err(err).Msg("failed to start detection, continuing with server only")
	} else {
		sess.SetEnabled(true)
	}

	// Blocks until quit is selected from the tray.
	trayUI.Run()
}
