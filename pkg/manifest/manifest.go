// Package manifest signs pipeline exports so a consumer can verify the
// files it received are the files the run produced.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// FileName is the manifest file written next to the exports.
const FileName = "manifest.json"

// Verification errors.
var (
	ErrNoManifest   = errors.New("no manifest found")
	ErrHashMismatch = errors.New("hash mismatch")
	ErrMissingFile  = errors.New("file listed in manifest is missing")
)

// File describes one exported file.
type File struct {
	Name    string `json:"name"`
	SHA256  string `json:"sha256"`
	Records int    `json:"records"`
}

// Manifest describes one pipeline export.
type Manifest struct {
	CreatedAt time.Time `json:"created_at"`
	Files     []File    `json:"files"`
}

// HashFile computes the SHA-256 digest of the file at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Sign builds a manifest for the named files (relative to dir) and writes
// it into dir.
func Sign(dir string, records map[string]int) (Manifest, error) {
	m := Manifest{CreatedAt: time.Now().UTC()}

	// Deterministic file order keeps signed manifests diffable.
	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		sum, err := HashFile(filepath.Join(dir, name))
		if err != nil {
			return Manifest{}, err
		}

		m.Files = append(m.Files, File{Name: name, SHA256: sum, Records: records[name]})
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return Manifest{}, fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, FileName), data, 0644); err != nil {
		return Manifest{}, fmt.Errorf("failed to write manifest: %w", err)
	}

	return m, nil
}

// Read loads the manifest in dir.
func Read(dir string) (Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return Manifest{}, fmt.Errorf("%w in %s", ErrNoManifest, dir)
		}

		return Manifest{}, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("failed to parse manifest: %w", err)
	}

	return m, nil
}

// Verify recomputes the hash of every file listed in the manifest in dir
// and reports the first mismatch.
func Verify(dir string) error {
	m, err := Read(dir)
	if err != nil {
		return err
	}

	for _, file := range m.Files {
		path := filepath.Join(dir, file.Name)

		sum, err := HashFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("%w: %s", ErrMissingFile, file.Name)
			}

			return err
		}

		if sum != file.SHA256 {
			return fmt.Errorf("%w for %s: expected %s, got %s", ErrHashMismatch, file.Name, file.SHA256, sum)
		}
	}

	return nil
}
