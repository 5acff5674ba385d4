package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/kennel/pkg/kennel"
	"github.com/mesh-intelligence/kennel/pkg/types"
)

// testEnv isolates a kennel invocation in its own config and data directory.
type testEnv struct {
	t         *testing.T
	ConfigDir string
	DataDir   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("KENNEL_CONFIG_DIR", "")
	t.Setenv("KENNEL_DATA_DIR", "")

	dir := t.TempDir()
	return &testEnv{
		t:         t,
		ConfigDir: filepath.Join(dir, "config"),
		DataDir:   filepath.Join(dir, "data"),
	}
}

// result is the outcome of one CLI invocation.
type result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// run executes kennel with the env's directories plus args.
func (e *testEnv) run(args ...string) result {
	e.t.Helper()
	full := append([]string{"--config-dir", e.ConfigDir, "--data-dir", e.DataDir}, args...)
	return runArgs(full...)
}

// runArgs executes kennel with exactly args.
func runArgs(args ...string) result {
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	code := run(root, args, &stderr)
	return result{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: code}
}

func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	res := e.run(args...)
	require.Equal(e.t, exitSuccess, res.ExitCode, "kennel %v failed: %s", args, res.Stderr)
	return res.Stdout
}

func (e *testEnv) addPet(name string) string {
	e.t.Helper()
	return strings.TrimSpace(e.mustRun("add", name))
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun("version")
	assert.Equal(t, "kennel v"+kennel.Version+"\nmodule: "+kennel.ModulePath+"\n", out)
}

func TestBark(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want string
	}{
		{name: "named dog", arg: "Rex", want: "Rex says: Woof!\n"},
		{name: "empty name", arg: "", want: " says: Woof!\n"},
		{name: "name with spaces", arg: "Good Boy", want: "Good Boy says: Woof!\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			assert.Equal(t, tt.want, env.mustRun("bark", tt.arg))

			_, err := os.Stat(env.DataDir)
			assert.True(t, os.IsNotExist(err), "bark must not touch storage")
		})
	}
}

func TestBarkRequiresName(t *testing.T) {
	env := newTestEnv(t)
	res := env.run("bark")
	assert.Equal(t, exitUserError, res.ExitCode)
	assert.Contains(t, res.Stderr, "accepts 1 arg")
}

func TestInit(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("init")
	assert.Equal(t, "Kennel initialized successfully\n", out)

	configPath := filepath.Join(env.ConfigDir, configFileExt)
	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend: sqlite")
	assert.Contains(t, string(data), "data_dir: "+env.DataDir)
	assert.FileExists(t, filepath.Join(env.DataDir, "pets.jsonl"))

	// Idempotent: existing config is kept.
	require.NoError(t, os.WriteFile(configPath, []byte("backend: sqlite\n# edited\n"), 0o644))
	env.mustRun("init")
	data, err = os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# edited")
}

func TestAddListShowRemove(t *testing.T) {
	env := newTestEnv(t)

	rex := env.addPet("Rex")
	fido := env.addPet("Fido")
	assert.NotEqual(t, rex, fido)

	out := env.mustRun("list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"ID", "KIND", "NAME"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{rex, "dog", "Rex"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{fido, "dog", "Fido"}, strings.Fields(lines[2]))
	assert.Equal(t, "Total: 2 pet(s)", lines[3])

	out = env.mustRun("show", rex)
	assert.Contains(t, out, "ID:      "+rex+"\n")
	assert.Contains(t, out, "Name:    Rex\n")
	assert.Contains(t, out, "Kind:    dog\n")

	out = env.mustRun("remove", rex)
	assert.Equal(t, "Removed "+rex+"\n", out)

	res := env.run("show", rex)
	assert.Equal(t, exitUserError, res.ExitCode)
	assert.Contains(t, res.Stderr, "entity not found")

	res = env.run("rm", rex)
	assert.Equal(t, exitUserError, res.ExitCode)
}

func TestListEmpty(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, "No pets found.\n", env.mustRun("list"))
}

func TestListFilters(t *testing.T) {
	env := newTestEnv(t)
	env.addPet("Rex")
	env.addPet("Fido")
	env.addPet("Rex")

	var views []petView
	require.NoError(t, json.Unmarshal([]byte(env.mustRun("list", "--name", "Rex", "--json")), &views))
	require.Len(t, views, 2)
	for _, v := range views {
		assert.Equal(t, "Rex", v.Name)
	}

	require.NoError(t, json.Unmarshal([]byte(env.mustRun("list", "--kind", "DOG", "--json")), &views))
	assert.Len(t, views, 3)

	assert.Equal(t, "No pets found.\n", env.mustRun("list", "--kind", "cat"))
}

func TestAddJSON(t *testing.T) {
	env := newTestEnv(t)

	var view petView
	require.NoError(t, json.Unmarshal([]byte(env.mustRun("add", "Rex", "--json")), &view))
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "Rex", view.Name)
	assert.Equal(t, types.KindDog, view.Kind)
	assert.False(t, view.CreatedAt.IsZero())

	var shown petView
	require.NoError(t, json.Unmarshal([]byte(env.mustRun("show", view.ID, "--json")), &shown))
	assert.Equal(t, view.ID, shown.ID)
	assert.True(t, view.CreatedAt.Equal(shown.CreatedAt))
}

func TestAddEmptyName(t *testing.T) {
	env := newTestEnv(t)
	id := env.addPet("")
	assert.Equal(t, " says: Woof!\n", env.mustRun("speak", id))
}

func TestAddUnknownKind(t *testing.T) {
	env := newTestEnv(t)
	res := env.run("add", "Tom", "--kind", "cat")
	assert.Equal(t, exitUserError, res.ExitCode)
	assert.Contains(t, res.Stderr, types.ErrUnknownKind.Error())
}

func TestSpeak(t *testing.T) {
	env := newTestEnv(t)
	rex := env.addPet("Rex")
	fido := env.addPet("Fido")

	assert.Equal(t, "Fido says: Woof!\nRex says: Woof!\n", env.mustRun("speak", fido, rex))
	assert.Equal(t, "Rex says: Woof!\nFido says: Woof!\n", env.mustRun("speak", "--all"))
}

func TestSpeakErrors(t *testing.T) {
	env := newTestEnv(t)
	rex := env.addPet("Rex")

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{name: "no ids and no --all", args: []string{"speak"}, wantCode: exitUserError},
		{name: "ids with --all", args: []string{"speak", "--all", rex}, wantCode: exitUserError},
		{name: "unknown id", args: []string{"speak", "missing"}, wantCode: exitUserError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := env.run(tt.args...)
			assert.Equal(t, tt.wantCode, res.ExitCode)
			assert.Empty(t, res.Stdout)
		})
	}
}

func TestSpeakAllWithHandEditedRoster(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.MkdirAll(env.DataDir, 0o755))
	roster := `{"pet_id":"a","name":"Rex","kind":"Dog","created_at":"2024-01-01T00:00:00Z"}
{"pet_id":"b","name":"Tom","kind":"cat","created_at":"2024-01-02T00:00:00Z"}
{"pet_id":"c","name":"Fido","kind":"dog","created_at":"2024-01-03T00:00:00Z"}
`
	require.NoError(t, os.WriteFile(filepath.Join(env.DataDir, "pets.jsonl"), []byte(roster), 0o644))

	assert.Equal(t, "Rex says: Woof!\nFido says: Woof!\n", env.mustRun("speak", "--all"))

	var views []petView
	require.NoError(t, json.Unmarshal([]byte(env.mustRun("list", "--kind", "dog", "--json")), &views))
	require.Len(t, views, 2)
	assert.Equal(t, "a", views[0].ID)
	assert.Equal(t, types.KindDog, views[0].Kind)
}

func TestSpeakAllEmptyRoster(t *testing.T) {
	env := newTestEnv(t)
	assert.Empty(t, env.mustRun("speak", "--all"))
}

func TestInitLeavesEnvDataDirUnpinned(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("KENNEL_DATA_DIR", env.DataDir)

	res := runArgs("--config-dir", env.ConfigDir, "init")
	require.Equal(t, exitSuccess, res.ExitCode, res.Stderr)

	data, err := os.ReadFile(filepath.Join(env.ConfigDir, configFileExt))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "data_dir")
	assert.FileExists(t, filepath.Join(env.DataDir, "pets.jsonl"))
}

func TestConfigDataDirUsed(t *testing.T) {
	env := newTestEnv(t)
	dataDir := filepath.Join(t.TempDir(), "from-config")
	require.NoError(t, os.MkdirAll(env.ConfigDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(env.ConfigDir, configFileExt),
		[]byte("backend: sqlite\ndata_dir: "+dataDir+"\n"),
		0o644,
	))

	res := runArgs("--config-dir", env.ConfigDir, "add", "Rex")
	require.Equal(t, exitSuccess, res.ExitCode, res.Stderr)
	assert.FileExists(t, filepath.Join(dataDir, "pets.jsonl"))
}

func TestConfigUnknownBackend(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.MkdirAll(env.ConfigDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(env.ConfigDir, configFileExt), []byte("backend: postgres\n"), 0o644))

	res := env.run("list")
	assert.Equal(t, exitUserError, res.ExitCode)
	assert.Contains(t, res.Stderr, types.ErrBackendUnknown.Error())
}

func TestConfigMalformed(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.MkdirAll(env.ConfigDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(env.ConfigDir, configFileExt), []byte("backend: [unterminated\n"), 0o644))

	res := env.run("list")
	assert.Equal(t, exitSysError, res.ExitCode)
	assert.Contains(t, res.Stderr, "read config")
}

func TestInvalidLogLevel(t *testing.T) {
	env := newTestEnv(t)
	res := env.run("--log-level", "chatty", "bark", "Rex")
	assert.Equal(t, exitUserError, res.ExitCode)
	assert.Empty(t, res.Stdout)
}

func TestLogFile(t *testing.T) {
	env := newTestEnv(t)
	logFile := filepath.Join(t.TempDir(), "kennel.log")

	env.mustRun("--log-level", "debug", "--log-file", logFile, "add", "Rex")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"kennel attached"`)
	assert.Contains(t, string(data), `"msg":"pet added"`)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "user error", err: userError(errors.New("bad")), want: exitUserError},
		{name: "system error", err: sysError(errors.New("disk")), want: exitSysError},
		{name: "wrapped system error", err: errors.Join(errors.New("ctx"), sysError(errors.New("disk"))), want: exitSysError},
		{name: "plain error", err: errors.New("cobra"), want: exitUserError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestClassify(t *testing.T) {
	assert.Nil(t, classify(nil))
	assert.Equal(t, exitUserError, exitCode(classify(types.ErrNotFound)))
	assert.Equal(t, exitUserError, exitCode(classify(types.ErrUnknownKind)))
	assert.Equal(t, exitSysError, exitCode(classify(errors.New("disk full"))))

	already := sysError(types.ErrNotFound)
	assert.Same(t, already, classify(already))
}
