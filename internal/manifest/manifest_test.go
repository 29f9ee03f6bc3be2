package manifest

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeJar(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	zw := zip.NewWriter(f)
	for name, body := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip Create failed: %v", err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("zip Write failed: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip Close failed: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestRead(t *testing.T) {
	t.Parallel()

	jar := filepath.Join(t.TempDir(), "sodium.jar")
	writeJar(t, jar, map[string]string{
		FileName: `{
  "schemaVersion": 1,
  "id": "sodium",
  "version": "0.5.03",
  "name": "Sodium",
  "environment": "client",
  "authors": ["JellySquid", {"name": "IMS"}]
}`,
		"assets/icon.png": "png",
	})

	m, err := Read(jar)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if m.ID != "sodium" || m.Version != "0.5.03" || m.Name != "Sodium" || m.Environment != "client" {
		t.Fatalf("unexpected manifest: %+v", m)
	}
	if len(m.Authors) != 2 || m.Authors[0].Name != "JellySquid" || m.Authors[1].Name != "IMS" {
		t.Fatalf("unexpected authors: %+v", m.Authors)
	}
}

func TestReadToleratesRawNewlinesInStrings(t *testing.T) {
	t.Parallel()

	jar := filepath.Join(t.TempDir(), "multi.jar")
	writeJar(t, jar, map[string]string{
		FileName: "{\"id\": \"multi\", \"version\": \"1.0.0\", \"description\": \"line one\nline two\"}",
	})

	m, err := Read(jar)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if m.Description != "line oneline two" {
		t.Fatalf("Description=%q", m.Description)
	}
}

func TestReadErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	notZip := filepath.Join(dir, "not-a-zip.jar")
	if err := os.WriteFile(notZip, []byte("plain text"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	missingEntry := filepath.Join(dir, "forge.jar")
	writeJar(t, missingEntry, map[string]string{"mcmod.info": "[]"})

	badJSON := filepath.Join(dir, "broken.jar")
	writeJar(t, badJSON, map[string]string{FileName: `{"id": "broken",`})

	missingVersion := filepath.Join(dir, "noversion.jar")
	writeJar(t, missingVersion, map[string]string{FileName: `{"id": "noversion"}`})

	traversalID := filepath.Join(dir, "escape.jar")
	writeJar(t, traversalID, map[string]string{FileName: `{"id": "../../escape", "version": "1.0.0"}`})

	missingID := filepath.Join(dir, "noid.jar")
	writeJar(t, missingID, map[string]string{FileName: `{"version": "1.0.0"}`})

	tests := []struct {
		name    string
		path    string
		wantMsg string
	}{
		{name: "unreadable archive", path: notZip},
		{name: "missing file", path: filepath.Join(dir, "absent.jar")},
		{name: "missing entry", path: missingEntry, wantMsg: "entry not found"},
		{name: "invalid json", path: badJSON, wantMsg: "parsing json"},
		{name: "missing version", path: missingVersion, wantMsg: `"version"`},
		{name: "missing id", path: missingID, wantMsg: `"id"`},
		{name: "id outside grammar", path: traversalID, wantMsg: "invalid mod id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(tt.path)
			if err == nil {
				t.Fatalf("Read(%s) expected error", tt.path)
			}
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("error should wrap ErrInvalid: %v", err)
			}
			var me *Error
			if !errors.As(err, &me) || me.Path != tt.path {
				t.Fatalf("error should be *Error for %s: %v", tt.path, err)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("error %q should mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{id: "sodium", want: true},
		{id: "fabric-api", want: true},
		{id: "mod_menu2", want: true},
		{id: "a", want: false},
		{id: "", want: false},
		{id: "Sodium", want: false},
		{id: "2fast", want: false},
		{id: "../../foo", want: false},
		{id: "mods/sodium", want: false},
		{id: "sodium.jar", want: false},
		{id: "a" + strings.Repeat("b", 63), want: true},
		{id: "a" + strings.Repeat("b", 64), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := ValidateID(tt.id)
			if tt.want && err != nil {
				t.Fatalf("ValidateID(%q) unexpected error: %v", tt.id, err)
			}
			if !tt.want && !errors.Is(err, ErrInvalidID) {
				t.Fatalf("ValidateID(%q) expected ErrInvalidID, got %v", tt.id, err)
			}
		})
	}
}
