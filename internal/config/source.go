package config

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

//go:embed resources
var resources embed.FS

// Resources holds the application descriptions shipped with the binary.
var Resources fs.FS = mustSub(resources, "resources")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// Source locates configuration documents: first under DataDir on disk,
// then in FS.
type Source struct {
	DataDir string
	FS      fs.FS
}

// DefaultSource reads from dataDir and the embedded resources.
func DefaultSource(dataDir string) Source {
	return Source{DataDir: dataDir, FS: Resources}
}

// read returns the document at rel and a description of where it was
// found. Missing documents report fs.ErrNotExist; any other failure is an
// I/O error naming the path.
func (s Source) read(rel string) ([]byte, string, error) {
	if s.DataDir != "" {
		p := filepath.Join(s.DataDir, filepath.FromSlash(rel))
		data, err := os.ReadFile(p)
		if err == nil {
			return data, p, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, p, fmt.Errorf("read %s: %w", p, err)
		}
	}
	if s.FS != nil {
		data, err := fs.ReadFile(s.FS, rel)
		if err == nil {
			return data, "embedded:" + rel, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, rel, fmt.Errorf("read embedded %s: %w", rel, err)
		}
	}
	return nil, rel, fmt.Errorf("%s: %w", rel, fs.ErrNotExist)
}

// appPath is the relative location of an application description.
func appPath(appID string) string {
	return path.Join("apps", appID+".json")
}

// componentPath is the relative location of a component document.
func componentPath(typeName string) string {
	return path.Join("components", typeName+".json")
}
