package schema

import (
	"path/filepath"
	"strings"
)

// Source identifies where a schema document originated so loaders can operate
// on files or fs.FS entries without leaking implementation details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile   SourceKind = "file"
	SourceKindFS     SourceKind = "fs"
	SourceKindMemory SourceKind = "memory"
)

// fileSource identifies on-disk schema documents.
type fileSource struct {
	path string
}

func (s fileSource) Location() string {
	return s.path
}

func (s fileSource) Kind() SourceKind {
	return SourceKindFile
}

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

// fsSource references a path within an fs.FS.
type fsSource struct {
	name string
}

func (s fsSource) Location() string {
	return s.name
}

func (s fsSource) Kind() SourceKind {
	return SourceKindFS
}

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

// memorySource labels payloads handed over directly by the caller, e.g. a
// response body the presentation layer already fetched.
type memorySource struct {
	name string
}

func (s memorySource) Location() string {
	return s.name
}

func (s memorySource) Kind() SourceKind {
	return SourceKindMemory
}

// SourceFromMemory names an in-memory payload. The name only feeds format
// detection and error messages.
func SourceFromMemory(name string) Source {
	return memorySource{name: strings.TrimSpace(name)}
}
