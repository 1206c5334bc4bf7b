// Package prefs persists the user's UI preferences: the colour theme and the
// list's sort column and order. They are stored in
// ~/.config/readinglist/prefs.toml.
package prefs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/readinglist/internal/books"
	"github.com/five82/readinglist/internal/catalog"
)

// Prefs holds user preferences.
type Prefs struct {
	Theme      string `toml:"theme"`
	SortColumn string `toml:"sort_column"`
	SortDesc   bool   `toml:"sort_desc"`
}

const (
	defaultPrefsPath = "~/.config/readinglist/prefs.toml"
	defaultTheme     = "Nightfox"
)

// Defaults returns the preferences used when nothing is stored.
func Defaults() Prefs {
	sort := catalog.DefaultSort()
	return Prefs{Theme: defaultTheme, SortColumn: string(sort.Column)}
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from path, falling back to defaults for a missing or
// unreadable file and for any invalid value. It never fails.
func Load(path string) Prefs {
	defaults := Defaults()

	resolved, err := resolvePath(path)
	if err != nil {
		return defaults
	}
	file, err := os.Open(resolved)
	if err != nil {
		return defaults
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return defaults
	}

	p := defaults
	if err := toml.Unmarshal(bytes, &p); err != nil {
		return defaults
	}

	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	p.SortColumn = strings.ToLower(strings.TrimSpace(p.SortColumn))
	if !books.Field(p.SortColumn).Valid() {
		p.SortColumn = defaults.SortColumn
		p.SortDesc = false
	}
	return p
}

// Sort returns the stored list ordering.
func (p Prefs) Sort() catalog.SortState {
	column := books.Field(p.SortColumn)
	if !column.Valid() {
		return catalog.DefaultSort()
	}
	order := catalog.Ascending
	if p.SortDesc {
		order = catalog.Descending
	}
	return catalog.SortState{Column: column, Order: order}
}

// WithSort returns a copy of p storing s.
func (p Prefs) WithSort(s catalog.SortState) Prefs {
	p.SortColumn = string(s.Column)
	p.SortDesc = s.Order == catalog.Descending
	return p
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
