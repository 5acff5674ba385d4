// Package paths locates a kennel's configuration file and roster directory.
//
// Both directories are resolved through a precedence chain of settings. The
// first non-empty setting wins and is made absolute; when none is set, the
// directory defaults to a dot-directory under the working directory, so each
// project keeps its own kennel.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// Names under the working directory and inside the config directory.
const (
	ConfigDirName  = ".kennel"
	DataDirName    = ".kennel-db"
	ConfigFileName = "config.yaml"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "KENNEL_CONFIG_DIR"
	EnvDataDir   = "KENNEL_DATA_DIR"
)

// Origin records which setting a directory was taken from.
type Origin string

const (
	FromFlag    Origin = "flag"
	FromConfig  Origin = "config"
	FromEnv     Origin = "env"
	FromDefault Origin = "default"
)

// Location is a resolved absolute directory and the setting that chose it.
type Location struct {
	Dir    string
	Origin Origin
}

// ConfigFile returns the path of config.yaml inside the directory.
func (l Location) ConfigFile() string {
	return filepath.Join(l.Dir, ConfigFileName)
}

// Pinned returns the value kennel init records as data_dir in config.yaml:
// the directory when it was given on the command line, empty otherwise.
func (l Location) Pinned() string {
	if l.Origin == FromFlag {
		return l.Dir
	}
	return ""
}

// getwd is swapped out in tests.
var getwd = os.Getwd

type setting struct {
	value  string
	origin Origin
}

// resolve returns the first non-empty setting as an absolute Location, or
// defaultName under the working directory.
func resolve(defaultName string, chain ...setting) (Location, error) {
	cwd, err := getwd()
	if err != nil {
		return Location{}, fmt.Errorf("working directory: %w", err)
	}
	for _, s := range chain {
		if s.value == "" {
			continue
		}
		dir := s.value
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(cwd, dir)
		}
		return Location{Dir: filepath.Clean(dir), Origin: s.origin}, nil
	}
	return Location{Dir: filepath.Join(cwd, defaultName), Origin: FromDefault}, nil
}

// ConfigDir resolves the configuration directory:
// flag > KENNEL_CONFIG_DIR > $(CWD)/.kennel.
func ConfigDir(flag string) (Location, error) {
	return resolve(ConfigDirName,
		setting{flag, FromFlag},
		setting{os.Getenv(EnvConfigDir), FromEnv},
	)
}

// DataDir resolves the roster directory:
// flag > data_dir in config.yaml > KENNEL_DATA_DIR > $(CWD)/.kennel-db.
func DataDir(flag, configured string) (Location, error) {
	return resolve(DataDirName,
		setting{flag, FromFlag},
		setting{configured, FromConfig},
		setting{os.Getenv(EnvDataDir), FromEnv},
	)
}
