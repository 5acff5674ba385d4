// This file implements JSONL loading for startup.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/mesh-intelligence/kennel/pkg/types"
)

// loadAllJSONL reads pets.jsonl from dataDir and inserts its records into
// SQLite. Loading is transactional: all records load or the database remains
// empty. Malformed lines, records without an ID, with an unparseable
// timestamp or an unknown kind, and records that violate constraints (such as
// a duplicate ID) are skipped. Kinds are stored normalized. Unknown JSON
// fields are ignored.
func loadAllJSONL(db *sql.DB, dataDir string) error {
	records, err := readJSONL(filepath.Join(dataDir, petsFile))
	if err != nil {
		return fmt.Errorf("reading %s: %w", petsFile, err)
	}
	if len(records) == 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertPetRecords(tx, records); err != nil {
		return fmt.Errorf("loading %s: %w", petsFile, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

// insertPetRecords inserts parsed pet records, skipping any that cannot be
// decoded or inserted.
func insertPetRecords(tx *sql.Tx, records []json.RawMessage) error {
	stmt, err := tx.Prepare("INSERT INTO pets (pet_id, name, kind, created_at) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert for pets: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		var pj petJSON
		if err := json.Unmarshal(rec, &pj); err != nil {
			continue
		}
		if pj.PetID == "" {
			continue
		}
		kind, err := types.NormalizeKind(pj.Kind)
		if err != nil {
			continue
		}
		pet, err := petFromJSON(pj)
		if err != nil {
			continue
		}
		if _, err := stmt.Exec(pet.PetID, pet.Name, kind, formatTime(pet.CreatedAt)); err != nil {
			continue
		}
	}
	return nil
}
