package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Asset is one reaction asset in the catalogue. The ID is what the rest of
// the engine passes around; Path is only meaningful to the UI layer.
type Asset struct {
	ID        string
	Category  string
	Name      string
	Path      string
	CreatedAt time.Time
}

// AssetRepository provides access to the asset catalogue.
type AssetRepository struct {
	db *sql.DB
}

// Assets returns the asset repository for this store.
func (s *Store) Assets() *AssetRepository {
	return &AssetRepository{db: s.db}
}

// Create inserts a new asset. A missing ID is filled with a fresh UUID.
func (r *AssetRepository) Create(a *Asset) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO assets (id, category, name, path, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.Category, a.Name, a.Path, a.CreatedAt,
	)
	return err
}

// Get returns one asset by ID, or ErrNotFound.
func (r *AssetRepository) Get(id string) (*Asset, error) {
	row := r.db.QueryRow(
		`SELECT id, category, name, path, created_at FROM assets WHERE id = ?`, id,
	)
	var a Asset
	if err := row.Scan(&a.ID, &a.Category, &a.Name, &a.Path, &a.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// List returns all assets ordered by category then name.
func (r *AssetRepository) List() ([]Asset, error) {
	rows, err := r.db.Query(
		`SELECT id, category, name, path, created_at FROM assets ORDER BY category, name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Asset
	for rows.Next() {
		var a Asset
		if err := rows.Scan(&a.ID, &a.Category, &a.Name, &a.Path, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Delete removes an asset by ID.
func (r *AssetRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM assets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Catalogue returns the category → asset-ID mapping the selection pool is
// built from.
func (r *AssetRepository) Catalogue() (map[string][]string, error) {
	rows, err := r.db.Query(`SELECT id, category FROM assets ORDER BY category, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	catalogue := make(map[string][]string)
	for rows.Next() {
		var id, category string
		if err := rows.Scan(&id, &category); err != nil {
			return nil, err
		}
		catalogue[category] = append(catalogue[category], id)
	}
	return catalogue, rows.Err()
}

// SeedFromDir scans dir for <category>/<file> entries and registers any
// asset not already in the catalogue. Returns how many were added. A
// missing directory is not an error; the catalogue just stays as it is.
func (r *AssetRepository) SeedFromDir(dir string) (int, error) {
	categories, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	added := 0
	for _, cat := range categories {
		if !cat.IsDir() {
			continue
		}
		files, err := os.ReadDir(filepath.Join(dir, cat.Name()))
		if err != nil {
			return added, err
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			name := strings.TrimSuffix(f.Name(), filepath.Ext(f.Name()))
			a := &Asset{
				Category: cat.Name(),
				Name:     name,
				Path:     filepath.Join(dir, cat.Name(), f.Name()),
			}
			if err := r.Create(a); err != nil {
				// UNIQUE(category, name) makes reseeding idempotent.
				continue
			}
			added++
		}
	}
	return added, nil
}
