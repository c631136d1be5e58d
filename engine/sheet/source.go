// Package sheet loads tabular rows from a spreadsheet endpoint or a local
// fixture. The engine downstream only cares about the row shape, not where
// rows came from.
package sheet

import (
	"context"
	"fmt"
	"os"

	"github.com/fretforge/fretforge/engine/core"
	"github.com/goccy/go-yaml"
)

// Source yields the ordered rows of one named tab.
type Source interface {
	Rows(ctx context.Context, tab string) ([]core.Row, error)
}

// FileSource reads rows from a YAML fixture on disk. Used in development and
// tests; the production source is the gviz Client.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

type fixtureFile struct {
	Tabs map[string]fixtureTab `yaml:"tabs"`
}

type fixtureTab struct {
	Header []string `yaml:"header"`
	Rows   [][]any  `yaml:"rows"`
}

// Rows loads the fixture and returns the named tab's rows with a header
// index when the fixture declares one.
func (f *FileSource) Rows(_ context.Context, tab string) ([]core.Row, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", f.path, err)
	}
	var file fixtureFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse fixture %s: %w", f.path, err)
	}
	t, ok := file.Tabs[tab]
	if !ok {
		return nil, fmt.Errorf("fixture %s has no tab %q", f.path, tab)
	}
	var header map[string]int
	if len(t.Header) > 0 {
		header = core.HeaderIndex(t.Header)
	}
	rows := make([]core.Row, 0, len(t.Rows))
	for _, cells := range t.Rows {
		rows = append(rows, core.Row{Cells: cells, Header: header})
	}
	return rows, nil
}
