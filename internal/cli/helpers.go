// Shared helpers for kennel CLI commands.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/mesh-intelligence/kennel/internal/paths"
	"github.com/mesh-intelligence/kennel/internal/sqlite"
	"github.com/mesh-intelligence/kennel/pkg/types"
)

// userErrors are storage and type errors caused by the caller's input.
var userErrors = []error{
	types.ErrNotFound,
	types.ErrInvalidID,
	types.ErrInvalidFilter,
	types.ErrUnknownKind,
	types.ErrBackendEmpty,
	types.ErrBackendUnknown,
}

// classify wraps err with the exit code matching its cause.
// Errors that already carry a code are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return err
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return userError(err)
		}
	}
	return sysError(err)
}

// resolveDataDir returns the roster directory chosen by --data-dir,
// config.yaml data_dir, KENNEL_DATA_DIR or the working-directory default.
func resolveDataDir() (paths.Location, error) {
	return paths.DataDir(flags.dataDir, state.config.GetString(cfgKeyDataDir))
}

// attachBackend resolves the data directory, creates a SQLite backend, and
// attaches it. The caller must Detach the returned backend.
func attachBackend() (*sqlite.Backend, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	state.logger.Debug("data dir resolved", "data_dir", dataDir.Dir, "from", dataDir.Origin)

	cfg := types.Config{
		Backend: state.config.GetString(cfgKeyBackend),
		DataDir: dataDir.Dir,
	}

	backend := sqlite.NewBackend()
	backend.SetLogger(state.logger)
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}

	return backend, nil
}

// withPets attaches the backend, hands the pets table to fn, and detaches.
// The returned error carries an exit code.
func withPets(fn func(tbl types.Table) error) (err error) {
	backend, err := attachBackend()
	if err != nil {
		return classify(err)
	}
	defer func() {
		if derr := backend.Detach(); derr != nil && err == nil {
			err = sysError(fmt.Errorf("detach backend: %w", derr))
		}
	}()

	tbl, err := backend.GetTable(types.TablePets)
	if err != nil {
		return sysError(fmt.Errorf("get pets table: %w", err))
	}

	return classify(fn(tbl))
}

// getPet loads a single pet by ID.
func getPet(tbl types.Table, id string) (*types.Pet, error) {
	entity, err := tbl.Get(id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, fmt.Errorf("pet %q: %w", id, err)
		}
		return nil, fmt.Errorf("get pet: %w", err)
	}
	pet, ok := entity.(*types.Pet)
	if !ok {
		return nil, fmt.Errorf("entity %q is not a pet", id)
	}
	return pet, nil
}

// petView is the JSON shape of a pet in CLI output.
type petView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

func newPetView(p *types.Pet) petView {
	return petView{
		ID:        p.PetID,
		Name:      p.Name,
		Kind:      p.Kind,
		CreatedAt: p.CreatedAt,
	}
}

// printJSON writes v as indented JSON followed by a newline.
func printJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}
