// Package levels provides level pack loading for Replant.
// This package depends on core but core does not depend on levels.
package levels

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/replant/internal/games/replant/core"
	"github.com/vovakirdan/replant/internal/games/replant/levels/formats"
)

// ErrNotFound is returned when a pack or level does not exist.
var ErrNotFound = errors.New("not found")

// Level represents a complete, parsed level definition.
type Level struct {
	ID       string
	Name     string
	Hint     string
	Index    int // position within the pack
	Text     string
	Layout   *core.Layout
	FilePath string
}

// Pack is an ordered set of levels.
type Pack struct {
	ID       string
	Name     string
	Author   string
	Levels   []Level
	FilePath string
	Builtin  bool
}

// Len returns the number of levels.
func (p *Pack) Len() int {
	return len(p.Levels)
}

// Level returns the level at index i.
func (p *Pack) Level(i int) (*Level, error) {
	if i < 0 || i >= len(p.Levels) {
		return nil, fmt.Errorf("pack %s level %d: %w", p.ID, i+1, ErrNotFound)
	}
	return &p.Levels[i], nil
}

// Find returns the index of the level with the given id.
func (p *Pack) Find(id string) (int, bool) {
	for i, lvl := range p.Levels {
		if lvl.ID == id {
			return i, true
		}
	}
	return 0, false
}

// Resolve turns a level reference into an index. The reference is either
// a 1-based level number or a level id.
func (p *Pack) Resolve(ref string) (int, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if _, err := p.Level(n - 1); err != nil {
			return 0, err
		}
		return n - 1, nil
	}
	if i, ok := p.Find(ref); ok {
		return i, nil
	}
	return 0, fmt.Errorf("pack %s level %q: %w", p.ID, ref, ErrNotFound)
}

// Result is the outcome of loading one file.
type Result struct {
	File string
	Pack Pack
	Err  error

	// fromDir marks single-level packs made from loose text files; they
	// are merged per directory.
	fromDir bool
}

// Loader handles loading level packs from a file system.
type Loader struct {
	fsys   fs.FS
	name   string
	table  *core.TileTable
	logger *log.Logger
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(root string, table *core.TileTable) *Loader {
	return NewFSLoader(os.DirFS(root), filepath.Base(root), table)
}

// NewFSLoader creates a loader over fsys. name is used as the pack id for
// loose text files at the top level.
func NewFSLoader(fsys fs.FS, name string, table *core.TileTable) *Loader {
	return &Loader{
		fsys:   fsys,
		name:   name,
		table:  table,
		logger: log.New(io.Discard),
	}
}

// WithLogger sets the logger used to report skipped files.
func (l *Loader) WithLogger(logger *log.Logger) *Loader {
	if logger != nil {
		l.logger = logger
	}
	return l
}

// Scan loads every supported file and reports each outcome, failed ones
// included. Manifests yield one result each, loose text files one result
// per file.
func (l *Loader) Scan() ([]Result, error) {
	var manifests, texts []string

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(path.Ext(p))
		switch {
		case formats.IsManifest(ext):
			manifests = append(manifests, p)
		case ext == ".txt":
			texts = append(texts, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.name, err)
	}

	var results []Result
	referenced := make(map[string]bool)
	for _, m := range manifests {
		pack, files, err := l.loadManifest(m)
		for _, f := range files {
			referenced[f] = true
		}
		results = append(results, Result{File: m, Pack: pack, Err: err})
	}

	for _, t := range texts {
		if referenced[t] {
			continue
		}
		res := l.LoadFile(t)
		res.Pack.ID = l.dirPackID(path.Dir(t))
		res.Pack.Name = formats.NameFromID(res.Pack.ID)
		res.fromDir = true
		results = append(results, res)
	}
	return results, nil
}

// LoadAll scans the file system and returns valid packs sorted by ID.
// Invalid files are skipped with a warning.
func (l *Loader) LoadAll() ([]Pack, error) {
	results, err := l.Scan()
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*Pack)
	dirPacks := make(map[string]bool)
	var ids []string
	for _, r := range results {
		if r.Err != nil {
			l.logger.Warn("skipping level file", "file", r.File, "err", r.Err)
			continue
		}
		existing, ok := byID[r.Pack.ID]
		switch {
		case !ok:
			p := r.Pack
			byID[p.ID] = &p
			dirPacks[p.ID] = r.fromDir
			ids = append(ids, p.ID)
		case r.fromDir && dirPacks[r.Pack.ID]:
			lvl := r.Pack.Levels[0]
			lvl.Index = len(existing.Levels)
			existing.Levels = append(existing.Levels, lvl)
		default:
			l.logger.Warn("skipping duplicate pack", "file", r.File, "pack", r.Pack.ID)
		}
	}

	sort.Strings(ids)
	packs := make([]Pack, 0, len(ids))
	for _, id := range ids {
		packs = append(packs, *byID[id])
	}
	return packs, nil
}

// LoadPack loads a specific pack by ID.
func (l *Loader) LoadPack(id string) (Pack, error) {
	packs, err := l.LoadAll()
	if err != nil {
		return Pack{}, err
	}
	for _, p := range packs {
		if p.ID == id {
			return p, nil
		}
	}
	return Pack{}, fmt.Errorf("pack %s: %w", id, ErrNotFound)
}

// LoadFile loads a single manifest or text file. A text file becomes a
// pack holding just that level.
func (l *Loader) LoadFile(name string) Result {
	ext := strings.ToLower(path.Ext(name))
	if formats.IsManifest(ext) {
		pack, _, err := l.loadManifest(name)
		return Result{File: name, Pack: pack, Err: err}
	}
	if ext != ".txt" {
		return Result{File: name, Err: fmt.Errorf("unsupported extension: %s", ext)}
	}

	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return Result{File: name, Err: fmt.Errorf("reading file %s: %w", name, err)}
	}
	raw := formats.ParseText(data, name)
	lvl, err := l.parseLevel(raw, 0, name)
	if err != nil {
		return Result{File: name, Err: err}
	}
	return Result{
		File: name,
		Pack: Pack{
			ID:       raw.ID,
			Name:     raw.Name,
			Levels:   []Level{lvl},
			FilePath: name,
		},
	}
}

// loadManifest parses a YAML pack and every level it names. It also
// returns the text files the manifest references.
func (l *Loader) loadManifest(name string) (Pack, []string, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return Pack{}, nil, fmt.Errorf("reading file %s: %w", name, err)
	}
	parsed, err := formats.ParseYAML(data)
	if err != nil {
		return Pack{}, nil, fmt.Errorf("parsing file %s: %w", name, err)
	}

	pack := Pack{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Author:   parsed.Author,
		FilePath: name,
	}
	var files []string
	for i, raw := range parsed.Levels {
		source := name
		if raw.File != "" {
			source = path.Join(path.Dir(name), raw.File)
			files = append(files, source)
			text, err := fs.ReadFile(l.fsys, source)
			if err != nil {
				return Pack{}, files, fmt.Errorf("pack %s: reading level %s: %w", pack.ID, raw.ID, err)
			}
			raw.Text = string(text)
		}
		lvl, err := l.parseLevel(raw, i, source)
		if err != nil {
			return Pack{}, files, fmt.Errorf("pack %s: %w", pack.ID, err)
		}
		pack.Levels = append(pack.Levels, lvl)
	}
	return pack, files, nil
}

func (l *Loader) parseLevel(raw formats.Level, index int, source string) (Level, error) {
	layout, err := core.ParseLevel(raw.Text, l.table)
	if err != nil {
		return Level{}, fmt.Errorf("level %s: %w", raw.ID, err)
	}
	return Level{
		ID:       raw.ID,
		Name:     raw.Name,
		Hint:     raw.Hint,
		Index:    index,
		Text:     raw.Text,
		Layout:   layout,
		FilePath: source,
	}, nil
}

func (l *Loader) dirPackID(dir string) string {
	if dir == "." {
		return l.name
	}
	return path.Base(dir)
}
