package manifest

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// FileName is the metadata entry every Fabric mod jar carries at its root.
const FileName = "fabric.mod.json"

// ErrInvalid is wrapped by every Error so callers can use errors.Is.
var ErrInvalid = errors.New("invalid mod manifest")

// ErrInvalidID is returned for ids outside the Fabric grammar.
var ErrInvalidID = errors.New("invalid mod id")

var idPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]{1,63}$`)

// ValidateID checks id against the grammar Fabric Loader enforces. Ids are
// used as file names under mods/, so anything else is rejected.
func ValidateID(id string) error {
	if !idPattern.MatchString(id) {
		return fmt.Errorf("%w %q: must match %s", ErrInvalidID, id, idPattern)
	}
	return nil
}

// Error reports a jar whose manifest could not be read.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("reading %s from %s: %v", FileName, e.Path, e.Err)
}

func (e *Error) Unwrap() []error { return []error{ErrInvalid, e.Err} }

type Manifest struct {
	ID          string   `json:"id"`
	Version     string   `json:"version"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Environment string   `json:"environment"`
	Authors     []Author `json:"authors"`
}

// Author is either a bare name or a {"name": ...} object in fabric.mod.json.
type Author struct {
	Name string
}

func (a *Author) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		a.Name = name
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	a.Name = obj.Name
	return nil
}

// Read opens the jar at path and parses its fabric.mod.json.
func Read(path string) (*Manifest, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	defer r.Close()

	f, err := r.Open(FileName)
	if err != nil {
		return nil, &Error{Path: path, Err: fmt.Errorf("entry not found: %w", err)}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}

	m, err := Parse(data)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	return m, nil
}

// Parse decodes a fabric.mod.json document. Raw newlines are dropped before
// decoding since some mods ship multi-line string values.
func Parse(data []byte) (*Manifest, error) {
	data = bytes.ReplaceAll(data, []byte("\r"), nil)
	data = bytes.ReplaceAll(data, []byte("\n"), nil)

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing json: %w", err)
	}

	m.ID = strings.TrimSpace(m.ID)
	m.Version = strings.TrimSpace(m.Version)
	if m.ID == "" {
		return nil, errors.New(`missing required field "id"`)
	}
	if err := ValidateID(m.ID); err != nil {
		return nil, err
	}
	if m.Version == "" {
		return nil, errors.New(`missing required field "version"`)
	}
	return &m, nil
}
