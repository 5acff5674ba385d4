//go:build mage

package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// pkgLines is the line count of one package directory.
type pkgLines struct {
	code, tests int
}

// Stats prints Go line counts per package, split into code and tests.
// Magefiles, bin/ and underscore-prefixed directories are not counted.
func Stats() error {
	perPkg := map[string]*pkgLines{}

	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != "." && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") ||
				name == binaryDir || name == "magefiles") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		n := bytes.Count(data, []byte{'\n'})

		dir := filepath.ToSlash(filepath.Dir(path))
		pl := perPkg[dir]
		if pl == nil {
			pl = &pkgLines{}
			perPkg[dir] = pl
		}
		if strings.HasSuffix(path, "_test.go") {
			pl.tests += n
		} else {
			pl.code += n
		}
		return nil
	})
	if err != nil {
		return err
	}

	dirs := make([]string, 0, len(perPkg))
	for dir := range perPkg {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	var total pkgLines
	fmt.Printf("%-22s %6s %6s\n", "package", "code", "tests")
	for _, dir := range dirs {
		pl := perPkg[dir]
		total.code += pl.code
		total.tests += pl.tests
		fmt.Printf("%-22s %6d %6d\n", dir, pl.code, pl.tests)
	}
	fmt.Printf("%-22s %6d %6d\n", "total", total.code, total.tests)
	return nil
}
