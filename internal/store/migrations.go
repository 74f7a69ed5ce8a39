package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Assets table - the reaction asset catalogue, one row per asset
		// identifier grouped by category.
		`CREATE TABLE IF NOT EXISTS assets (
			id TEXT PRIMARY KEY,
			category TEXT NOT NULL,
			name TEXT NOT NULL,
			path TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(category, name)
		)`,

		// Reaction events table - log of committed stabilized reactions.
		`CREATE TABLE IF NOT EXISTS reaction_events (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL CHECK(kind IN ('expression', 'gesture')),
			category TEXT NOT NULL,
			confidence REAL NOT NULL DEFAULT 0,
			asset_id TEXT REFERENCES assets(id) ON DELETE SET NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings table - application settings as key-value pairs.
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_assets_category ON assets(category)`,
		`CREATE INDEX IF NOT EXISTS idx_reaction_events_created_at ON reaction_events(created_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
