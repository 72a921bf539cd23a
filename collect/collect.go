// Package collect walks an input tree and encodes every eligible file into a
// table entry.
//
// Entries come out in lexical walk order, so the same tree always yields the
// same sequence. The first read or encode error aborts the walk.
package collect

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/cpcf/embed64/encode"
	"github.com/cpcf/embed64/table"
)

var (
	DefaultIgnore     = []string{".DS_Store", "Thumbs.db", "desktop.ini"}
	DefaultExtensions = []string{".html", ".htm", ".css", ".js", ".png", ".jpg", ".jpeg", ".gif"}
)

type Collector struct {
	logger          *slog.Logger
	registry        *encode.Registry
	ignore          []string
	extensions      []string
	ignoreExtension bool
	stripPrefix     bool
	skip            []string
}

type Option func(*Collector)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Collector) {
		c.logger = logger
	}
}

func WithRegistry(r *encode.Registry) Option {
	return func(c *Collector) {
		c.registry = r
	}
}

// WithIgnore sets base names skipped during the walk. Matching directories are pruned.
func WithIgnore(names []string) Option {
	return func(c *Collector) {
		c.ignore = names
	}
}

// WithExtensions sets the allowed file extensions, leading dot included.
func WithExtensions(exts []string) Option {
	return func(c *Collector) {
		c.extensions = make([]string, len(exts))
		for i, ext := range exts {
			c.extensions[i] = strings.ToLower(ext)
		}
	}
}

// WithIgnoreExtension disables the extension filter.
func WithIgnoreExtension(ignore bool) Option {
	return func(c *Collector) {
		c.ignoreExtension = ignore
	}
}

// WithStripPrefix removes the first path segment from emitted names.
func WithStripPrefix(strip bool) Option {
	return func(c *Collector) {
		c.stripPrefix = strip
	}
}

// WithSkip excludes walk paths from the result, typically the generated
// file when it lives inside the input tree.
func WithSkip(paths ...string) Option {
	return func(c *Collector) {
		c.skip = append(c.skip, paths...)
	}
}

func New(opts ...Option) *Collector {
	c := &Collector{
		logger:     slog.Default(),
		registry:   encode.DefaultRegistry(),
		ignore:     DefaultIgnore,
		extensions: DefaultExtensions,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect returns one entry per eligible regular file under src.
func (c *Collector) Collect(src Source) ([]table.Entry, error) {
	if _, err := fs.Stat(src.FS, src.Root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.logger.Warn("input does not exist, generating empty table", "input", src.Prefix)
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", c.display(src, src.Root), err)
	}

	var entries []table.Entry
	err := fs.WalkDir(src.FS, src.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if p != src.Root && slices.Contains(c.ignore, d.Name()) {
			c.logger.Debug("ignoring entry", "path", p)
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}
		if !c.isRegular(src, p, d) {
			c.logger.Debug("skipping non-regular file", "path", p, "type", d.Type().String())
			return nil
		}

		if slices.Contains(c.skip, p) {
			c.logger.Debug("skipping generated output", "path", p)
			return nil
		}

		if !c.ignoreExtension && !slices.Contains(c.extensions, strings.ToLower(path.Ext(p))) {
			if p == src.Root {
				c.logger.Warn("input file has an unlisted extension, generating empty table",
					"input", c.display(src, p), "extensions", c.extensions)
			} else {
				c.logger.Debug("skipping file with unlisted extension", "path", p)
			}
			return nil
		}

		entry, err := c.entry(src, p)
		if err != nil {
			return err
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Debug("collected entries", "input", src.Prefix, "count", len(entries))
	return entries, nil
}

// isRegular accepts regular files and symlinks that resolve to one. Links
// to directories are not followed.
func (c *Collector) isRegular(src Source, p string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := fs.Stat(src.FS, p)
	if err != nil {
		c.logger.Warn("skipping broken symlink", "path", c.display(src, p), "error", err)
		return false
	}
	return info.Mode().IsRegular()
}

func (c *Collector) entry(src Source, p string) (table.Entry, error) {
	name := c.display(src, p)

	data, err := fs.ReadFile(src.FS, p)
	if err != nil {
		return table.Entry{}, fmt.Errorf("read %s: %w", name, err)
	}

	strategy := c.registry.For(p)
	content, err := strategy.Encode(name, data)
	if err != nil {
		return table.Entry{}, err
	}

	if c.stripPrefix {
		name = table.StripFirstSegment(name)
	}

	c.logger.Debug("encoded file", "name", name, "strategy", strategy.Name(), "bytes", len(data))
	return table.Entry{Name: name, Content: content}, nil
}

// display joins a walk path onto the source prefix.
func (c *Collector) display(src Source, p string) string {
	if src.Prefix == "" || src.Prefix == "." {
		return p
	}
	if p == "." {
		return src.Prefix
	}
	if strings.HasSuffix(src.Prefix, "/") {
		return src.Prefix + p
	}
	return src.Prefix + "/" + p
}
