// This file implements the pets table accessor for the SQLite backend.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/kennel/pkg/types"
)

// Compile-time interface check: petsTable must implement Table.
var _ types.Table = (*petsTable)(nil)

// petsTable implements the Table interface for the pets roster.
// Each operation hydrates/dehydrates between SQLite rows and *types.Pet
// structs, and every write rewrites pets.jsonl atomically.
type petsTable struct {
	backend *Backend
}

// Filter keys understood by Fetch.
const (
	filterName = "name"
	filterKind = "kind"
)

const selectPets = "SELECT pet_id, name, kind, created_at FROM pets"

// Get retrieves a pet by ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if absent.
func (pt *petsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	pt.backend.mu.RLock()
	defer pt.backend.mu.RUnlock()

	if !pt.backend.attached {
		return nil, types.ErrKennelDetached
	}

	row := pt.backend.db.QueryRow(selectPets+" WHERE pet_id = ?", id)
	pet, err := hydratePet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting pet %s: %w", id, err)
	}
	return pet, nil
}

// Set persists a pet. If id is empty, generates a UUID v7 and creates the pet.
// If id is provided, the pet is inserted or updated under that ID. New pets
// get CreatedAt = now unless the caller set it; updates keep the stored value.
// The kind is normalized and must be recognized; names are stored as given.
// The pet's PetID, Kind and CreatedAt are filled in only when the write
// succeeds. Returns the actual ID used.
func (pt *petsTable) Set(id string, data any) (string, error) {
	pet, ok := data.(*types.Pet)
	if !ok || pet == nil {
		return "", types.ErrInvalidData
	}

	kind, err := types.NormalizeKind(pet.Kind)
	if err != nil {
		return "", err
	}

	pt.backend.mu.Lock()
	defer pt.backend.mu.Unlock()

	if !pt.backend.attached {
		return "", types.ErrKennelDetached
	}

	if id == "" {
		newID, err := uuid.NewV7()
		if err != nil {
			return "", fmt.Errorf("generating UUID v7: %w", err)
		}
		id = newID.String()
	}
	createdAt := pet.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	err = pt.writeTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(
			`INSERT INTO pets (pet_id, name, kind, created_at) VALUES (?, ?, ?, ?)
			 ON CONFLICT(pet_id) DO UPDATE SET name = excluded.name, kind = excluded.kind`,
			id, pet.Name, kind, formatTime(createdAt),
		)
		if err != nil {
			return fmt.Errorf("persisting pet: %w", err)
		}

		// Updates keep the original registration time.
		var stored string
		if err := tx.QueryRow("SELECT created_at FROM pets WHERE pet_id = ?", id).Scan(&stored); err != nil {
			return fmt.Errorf("reading pet %s: %w", id, err)
		}
		createdAt, err = parseTime(stored)
		return err
	})
	if err != nil {
		return "", err
	}

	pet.PetID = id
	pet.Kind = kind
	pet.CreatedAt = createdAt

	pt.backend.logger.Debug("pet saved", "pet_id", id, "kind", kind)
	return id, nil
}

// Delete removes a pet.
// Returns ErrInvalidID if id is empty, ErrNotFound if absent.
func (pt *petsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	pt.backend.mu.Lock()
	defer pt.backend.mu.Unlock()

	if !pt.backend.attached {
		return types.ErrKennelDetached
	}

	err := pt.writeTx(func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM pets WHERE pet_id = ?", id)
		if err != nil {
			return fmt.Errorf("deleting pet: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("deleting pet: %w", err)
		}
		if n == 0 {
			return types.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	pt.backend.logger.Debug("pet deleted", "pet_id", id)
	return nil
}

// writeTx runs fn in a transaction and rewrites pets.jsonl from the
// transaction's view before committing. If fn or the JSONL write fails, the
// transaction rolls back and SQLite keeps matching the file.
// The caller must hold the backend write lock.
func (pt *petsTable) writeTx(fn func(tx *sql.Tx) error) error {
	tx, err := pt.backend.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := pt.persistJSONL(tx); err != nil {
		return fmt.Errorf("persisting %s: %w", petsFile, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Fetch returns pets matching the filter, ordered by creation time.
// Supported keys are "name" (exact match) and "kind" (normalized match);
// both take string values. Other keys are ignored.
// Returns ErrInvalidFilter for a non-string value on a supported key.
func (pt *petsTable) Fetch(filter map[string]any) ([]any, error) {
	query, args, err := buildPetsQuery(filter)
	if err != nil {
		return nil, err
	}

	pt.backend.mu.RLock()
	defer pt.backend.mu.RUnlock()

	if !pt.backend.attached {
		return nil, types.ErrKennelDetached
	}

	pets, err := queryPets(pt.backend.db, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching pets: %w", err)
	}

	results := make([]any, len(pets))
	for i, p := range pets {
		results[i] = p
	}
	return results, nil
}

// buildPetsQuery translates a Fetch filter into a SELECT statement.
func buildPetsQuery(filter map[string]any) (string, []any, error) {
	var (
		clauses []string
		args    []any
	)

	if v, ok := filter[filterName]; ok {
		s, ok := v.(string)
		if !ok {
			return "", nil, types.ErrInvalidFilter
		}
		clauses = append(clauses, "name = ?")
		args = append(args, s)
	}
	if v, ok := filter[filterKind]; ok {
		s, ok := v.(string)
		if !ok {
			return "", nil, types.ErrInvalidFilter
		}
		clauses = append(clauses, "kind = ?")
		args = append(args, strings.ToLower(strings.TrimSpace(s)))
	}

	query := selectPets
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at, pet_id"
	return query, args, nil
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

// queryPets runs query and hydrates every row.
func queryPets(q querier, query string, args ...any) ([]*types.Pet, error) {
	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pets []*types.Pet
	for rows.Next() {
		pet, err := hydratePet(rows)
		if err != nil {
			return nil, err
		}
		pets = append(pets, pet)
	}
	return pets, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// hydratePet converts a row into a *types.Pet.
func hydratePet(row rowScanner) (*types.Pet, error) {
	var pj petJSON
	if err := row.Scan(&pj.PetID, &pj.Name, &pj.Kind, &pj.CreatedAt); err != nil {
		return nil, err
	}
	return petFromJSON(pj)
}

// persistJSONL rewrites pets.jsonl from the table contents visible to q.
func (pt *petsTable) persistJSONL(q querier) error {
	pets, err := queryPets(q, selectPets+" ORDER BY created_at, pet_id")
	if err != nil {
		return fmt.Errorf("reading pets: %w", err)
	}

	records := make([]json.RawMessage, 0, len(pets))
	for _, p := range pets {
		b, err := json.Marshal(petToJSON(p))
		if err != nil {
			return fmt.Errorf("marshaling pet %s: %w", p.PetID, err)
		}
		records = append(records, b)
	}
	return writeJSONL(filepath.Join(pt.backend.dataDir(), petsFile), records)
}
