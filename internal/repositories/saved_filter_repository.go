package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Ronei-rcm/rare-toy-admin/internal/domain"
	"github.com/Ronei-rcm/rare-toy-admin/internal/domain/models"
)

// SavedFilterRepository persists named filter snapshots. The file store is
// the default (the console analog of browser local storage); the MySQL store
// exists for deployments where several admins share saved filters.
type SavedFilterRepository interface {
	List() ([]models.SavedFilter, error)
	Save(f models.SavedFilter) (models.SavedFilter, error)
	Delete(id string) error
}

func validateSavedFilter(f models.SavedFilter) error {
	if strings.TrimSpace(f.Name) == "" {
		return domain.ValidationError{Field: "name", Msg: "must not be empty"}
	}
	return nil
}

// FileSavedFilterRepository keeps filters in one JSON file, rewritten
// wholesale on every change.
type FileSavedFilterRepository struct {
	Path string

	mu sync.Mutex
}

func NewFileSavedFilterRepository(path string) *FileSavedFilterRepository {
	return &FileSavedFilterRepository{Path: path}
}

type savedFilterFile struct {
	Filters []models.SavedFilter `json:"filters"`
}

func (r *FileSavedFilterRepository) List() ([]models.SavedFilter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.read()
	if err != nil {
		return nil, err
	}
	return doc.Filters, nil
}

func (r *FileSavedFilterRepository) Save(f models.SavedFilter) (models.SavedFilter, error) {
	if err := validateSavedFilter(f); err != nil {
		return models.SavedFilter{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return models.SavedFilter{}, err
	}

	if f.ID == "" {
		f.ID = uuid.NewString()
	}

	replaced := false
	for i, existing := range doc.Filters {
		if existing.ID == f.ID {
			doc.Filters[i] = f
			replaced = true
			break
		}
	}
	if !replaced {
		doc.Filters = append(doc.Filters, f)
	}

	if err := r.write(doc); err != nil {
		return models.SavedFilter{}, err
	}
	return f, nil
}

func (r *FileSavedFilterRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return err
	}

	kept := doc.Filters[:0]
	found := false
	for _, f := range doc.Filters {
		if f.ID == id {
			found = true
			continue
		}
		kept = append(kept, f)
	}
	if !found {
		return domain.NotFoundError{Resource: "saved filter"}
	}

	doc.Filters = kept
	return r.write(doc)
}

func (r *FileSavedFilterRepository) read() (savedFilterFile, error) {
	var doc savedFilterFile

	raw, err := os.ReadFile(r.Path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, err
	}
	if len(raw) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return savedFilterFile{}, err
	}
	return doc, nil
}

func (r *FileSavedFilterRepository) write(doc savedFilterFile) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	// Write-then-rename keeps the file readable if the process dies mid-write.
	tmp := r.Path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(r.Path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, r.Path)
}

// MySQLSavedFilterRepository stores filters as JSON blobs keyed by id.
//
// Expected schema:
//
//	CREATE TABLE saved_filters (
//	    id      VARCHAR(36) PRIMARY KEY,
//	    name    VARCHAR(191) NOT NULL,
//	    filters JSON NOT NULL
//	);
type MySQLSavedFilterRepository struct {
	DB *sql.DB
}

func NewMySQLSavedFilterRepository(db *sql.DB) *MySQLSavedFilterRepository {
	return &MySQLSavedFilterRepository{DB: db}
}

func (r *MySQLSavedFilterRepository) List() ([]models.SavedFilter, error) {
	rows, err := r.DB.Query(`SELECT id, name, filters FROM saved_filters ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.SavedFilter
	for rows.Next() {
		var (
			f   models.SavedFilter
			raw []byte
		)
		if err := rows.Scan(&f.ID, &f.Name, &raw); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &f.Filters); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *MySQLSavedFilterRepository) Save(f models.SavedFilter) (models.SavedFilter, error) {
	if err := validateSavedFilter(f); err != nil {
		return models.SavedFilter{}, err
	}
	if f.ID == "" {
		f.ID = uuid.NewString()
	}

	raw, err := json.Marshal(f.Filters)
	if err != nil {
		return models.SavedFilter{}, err
	}

	_, err = r.DB.Exec(`
        INSERT INTO saved_filters (id, name, filters)
        VALUES (?, ?, ?)
        ON DUPLICATE KEY UPDATE name = VALUES(name), filters = VALUES(filters)
    `, f.ID, f.Name, raw)
	if err != nil {
		return models.SavedFilter{}, err
	}
	return f, nil
}

func (r *MySQLSavedFilterRepository) Delete(id string) error {
	res, err := r.DB.Exec(`DELETE FROM saved_filters WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "saved filter"}
	}
	return nil
}
