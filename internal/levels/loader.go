package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/lumin/internal/levels/formats"
)

//go:embed campaign/*.yaml
var campaignFS embed.FS

// Campaign returns the embedded levels in play order.
func Campaign() ([]Level, error) {
	sub, err := fs.Sub(campaignFS, "campaign")
	if err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}
	return (&Loader{FS: sub, embedded: true}).LoadAll()
}

// Loader handles loading levels from a directory tree.
type Loader struct {
	FS   fs.FS
	Root string

	embedded bool
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{FS: os.DirFS(root), Root: root}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering. Any file that
// fails to parse or validate fails the whole load.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			return err
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking %s: %w", l.describe(), err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	for i := 1; i < len(levels); i++ {
		if levels[i].ID == levels[i-1].ID {
			return nil, fmt.Errorf("levels: duplicate level id %d in %s and %s",
				levels[i].ID, levels[i-1].FilePath, levels[i].FilePath)
		}
	}

	return levels, nil
}

// LoadFile loads a single level file relative to the loader's root.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	parsed, err := parseByExtension(data, strings.ToLower(path.Ext(p)))
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}

	level := Level{
		ID:      parsed.ID,
		Name:    parsed.Name,
		Kind:    Kind(parsed.Kind),
		Start:   parsed.Start,
		Width:   parsed.Width,
		Intro:   parsed.Intro,
		Objects: parsed.Objects,
	}
	if !l.embedded {
		level.FilePath = path.Join(l.Root, p)
	}

	if err := Validate(level); err != nil {
		return Level{}, fmt.Errorf("validating file %s: %w", p, err)
	}
	return level, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id int) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("levels: level not found: %d", id)
}

func (l *Loader) describe() string {
	if l.embedded {
		return "embedded campaign"
	}
	return l.Root
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
