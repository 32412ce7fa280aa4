package skills

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/skillworks/skillserve/pkg/logger"
)

// Entry is one skill's location in a registry snapshot, keyed by its
// subdirectory name.
type Entry struct {
	Name      string
	Path      string // full path to the SKILL.md file
	SourceDir string // configured directory the entry resolved from
}

// Registry is an immutable name-to-location snapshot produced by one
// discovery scan. Snapshots are replaced wholesale, never patched.
type Registry struct {
	entries map[string]Entry
	names   []string // lexicographically sorted
}

// Names returns the sorted skill names of the snapshot.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Lookup returns the entry for name, if present.
func (r *Registry) Lookup(name string) (Entry, bool) {
	entry, ok := r.entries[name]
	return entry, ok
}

// Len returns the number of entries in the snapshot.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Discovery scans an ordered list of skill directories and loads skill
// documents on demand. The directory list is fixed at construction;
// every Discover call re-reads the filesystem and swaps in a fresh
// registry snapshot, so concurrent callers see either the previous or
// the new snapshot, never a mix.
type Discovery struct {
	skillDirs []string
	registry  atomic.Pointer[Registry]
}

// Option configures a Discovery.
type Option func(*Discovery) error

// WithSkillDirs sets the exact directory list, lowest to highest
// override priority. Mainly for tests and embedding callers.
func WithSkillDirs(dirs ...string) Option {
	return func(d *Discovery) error {
		d.skillDirs = dirs
		return nil
	}
}

// WithDefaultDirs resolves the conventional directory list, appending
// override (when non-empty) as the highest-priority candidate.
func WithDefaultDirs(override string) Option {
	return func(d *Discovery) error {
		d.skillDirs = ResolveDirs(override)
		return nil
	}
}

// NewDiscovery creates a Discovery. Without options it uses the default
// directory list with no override.
func NewDiscovery(opts ...Option) (*Discovery, error) {
	d := &Discovery{}

	if len(opts) == 0 {
		opts = []Option{WithDefaultDirs("")}
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// Dirs returns the configured directory list, lowest to highest
// priority.
func (d *Discovery) Dirs() []string {
	out := make([]string, len(d.skillDirs))
	copy(out, d.skillDirs)
	return out
}

// Discover rescans every configured directory, replaces the registry
// snapshot, and returns the sorted skill names. Directories are
// processed lowest to highest priority and entries simply overwrite, so
// a higher-priority directory always wins for a duplicate name. A
// missing directory is skipped silently; a directory that exists but
// cannot be listed is logged and skipped so one bad directory never
// hides skills from the others.
func (d *Discovery) Discover(ctx context.Context) []string {
	entries := make(map[string]Entry)
	for _, dir := range d.skillDirs {
		scanDir(ctx, dir, entries)
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	d.registry.Store(&Registry{entries: entries, names: names})
	return names
}

// scanDir probes each immediate subdirectory of dir for a SKILL.md
// file. Existence only; parsing happens at load time.
func scanDir(ctx context.Context, dir string, entries map[string]Entry) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		logger.G(ctx).WithError(err).WithField("dir", dir).Warn("skipping unlistable skills directory")
		return
	}

	for _, dirent := range dirents {
		path := filepath.Join(dir, dirent.Name())

		// Stat follows symlinks so linked skill directories work.
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			continue
		}

		skillFile := filepath.Join(path, SkillFileName)
		if _, err := os.Stat(skillFile); err != nil {
			continue
		}

		entries[dirent.Name()] = Entry{
			Name:      dirent.Name(),
			Path:      skillFile,
			SourceDir: dir,
		}
	}
}

// Registry returns the most recent snapshot, running an initial
// discovery if none exists yet.
func (d *Discovery) Registry(ctx context.Context) *Registry {
	if reg := d.registry.Load(); reg != nil {
		return reg
	}
	d.Discover(ctx)
	return d.registry.Load()
}

// LoadSkill reads and parses one skill fresh from disk. There is no
// cache: editing the file between two calls changes what the second
// call returns.
func (d *Discovery) LoadSkill(ctx context.Context, name string) (*Skill, error) {
	return d.load(ctx, name, true)
}

// SkillMetadata performs the same lookup, read, and parse as LoadSkill
// but omits the body from the returned value.
func (d *Discovery) SkillMetadata(ctx context.Context, name string) (*Skill, error) {
	return d.load(ctx, name, false)
}

func (d *Discovery) load(ctx context.Context, name string, includeBody bool) (*Skill, error) {
	entry, ok := d.Registry(ctx).Lookup(name)
	if !ok {
		return nil, &NotFoundError{Name: name}
	}

	raw, err := os.ReadFile(entry.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading skill %q", name)
	}

	meta, body, err := parseSkillFile(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "skill %q", name)
	}

	skill := &Skill{
		Name:        meta.Name,
		Description: meta.Description,
		Path:        entry.Path,
		SourceDir:   entry.SourceDir,
	}
	if includeBody {
		skill.Content = body
	}
	return skill, nil
}
