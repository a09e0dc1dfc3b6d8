package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownCorpus is returned when a corpus name is not in the manifest.
var ErrUnknownCorpus = errors.New("unknown corpus")

// Entry names one corpus file.
type Entry struct {
	Name        string `yaml:"name" json:"name"`
	File        string `yaml:"file" json:"file"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Manifest lists the corpora available for selection.
type Manifest struct {
	Corpora []Entry `yaml:"corpora" json:"corpora"`
}

// LoadManifest reads a YAML manifest. A missing file yields an empty manifest.
// Entries without a name or file are skipped and later duplicates of a name
// are ignored.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Manifest{}, nil
		}
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}

	var raw Manifest
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest %s: %w", filepath.Base(path), err)
	}

	var m Manifest
	seen := make(map[string]bool)
	for _, e := range raw.Corpora {
		e.Name = strings.TrimSpace(e.Name)
		e.File = strings.TrimSpace(e.File)
		if e.Name == "" || e.File == "" || seen[e.Name] {
			continue
		}
		seen[e.Name] = true
		m.Corpora = append(m.Corpora, e)
	}
	return m, nil
}

// Discover builds a manifest from every file in dir whose extension passes
// supported, naming each corpus after its file without the extension.
func Discover(dir string, supported func(filename string) bool) (Manifest, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Manifest{}, fmt.Errorf("read corpus dir: %w", err)
	}

	var m Manifest
	seen := make(map[string]bool)
	for _, de := range entries {
		if de.IsDir() || !supported(de.Name()) {
			continue
		}
		name := strings.TrimSuffix(de.Name(), filepath.Ext(de.Name()))
		if seen[name] {
			continue
		}
		seen[name] = true
		m.Corpora = append(m.Corpora, Entry{Name: name, File: de.Name()})
	}
	sort.Slice(m.Corpora, func(i, j int) bool { return m.Corpora[i].Name < m.Corpora[j].Name })
	return m, nil
}

// Find returns the entry called name.
func (m Manifest) Find(name string) (Entry, error) {
	for _, e := range m.Corpora {
		if e.Name == name {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %q", ErrUnknownCorpus, name)
}

// Names returns the corpus names in manifest order.
func (m Manifest) Names() []string {
	names := make([]string, len(m.Corpora))
	for i, e := range m.Corpora {
		names[i] = e.Name
	}
	return names
}
