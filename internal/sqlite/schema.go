package sqlite

import (
	"database/sql"
	"fmt"
)

// Schema DDL for the roster tables.
const (
	createPets = `CREATE TABLE pets (
    pet_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    kind TEXT NOT NULL,
    created_at TEXT NOT NULL
);`
)

// Index DDL for common queries.
const (
	idxPetsName = `CREATE INDEX idx_pets_name ON pets(name);`
	idxPetsKind = `CREATE INDEX idx_pets_kind ON pets(kind);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createPets,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxPetsName,
	idxPetsKind,
}

// applySchema creates all tables and then all indexes.
func applySchema(db *sql.DB) error {
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating table: %w", err)
		}
	}
	for _, stmt := range indexDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	return nil
}
