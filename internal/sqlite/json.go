package sqlite

import (
	"fmt"
	"time"

	"github.com/mesh-intelligence/kennel/pkg/types"
)

// timeLayout is the fixed-width UTC layout used for stored timestamps so that
// lexical order in SQLite matches chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// petJSON represents a pet in pets.jsonl.
type petJSON struct {
	PetID     string `json:"pet_id"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	CreatedAt string `json:"created_at"`
}

// formatTime renders t in timeLayout after converting to UTC.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime accepts timeLayout and, for hand-edited files, RFC 3339.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(timeLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// petToJSON converts a pet to its file record.
func petToJSON(p *types.Pet) petJSON {
	return petJSON{
		PetID:     p.PetID,
		Name:      p.Name,
		Kind:      p.Kind,
		CreatedAt: formatTime(p.CreatedAt),
	}
}

// petFromJSON converts a file record back to a pet.
func petFromJSON(rec petJSON) (*types.Pet, error) {
	createdAt, err := parseTime(rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &types.Pet{
		PetID:     rec.PetID,
		Name:      rec.Name,
		Kind:      rec.Kind,
		CreatedAt: createdAt,
	}, nil
}
