package checklist

import (
	"context"
	"path/filepath"
	"time"

	"github.com/jingkaihe/todomaker/pkg/logger"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const filePerm = 0o644

// Generator writes checklist documents into a directory.
type Generator struct {
	fs  afero.Fs
	dir string
	now func() time.Time
}

// GeneratorOption configures a Generator
type GeneratorOption func(*Generator)

// WithFs sets the filesystem the generator writes to.
func WithFs(fs afero.Fs) GeneratorOption {
	return func(g *Generator) {
		g.fs = fs
	}
}

// WithDir sets the output directory.
func WithDir(dir string) GeneratorOption {
	return func(g *Generator) {
		g.dir = dir
	}
}

// WithClock replaces time.Now as the date source.
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) {
		g.now = now
	}
}

// NewGenerator creates a generator writing to the working directory of the OS filesystem.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		fs:  afero.NewOsFs(),
		dir: ".",
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Today samples the clock and returns the current local calendar date at midnight.
func (g *Generator) Today() time.Time {
	t := g.now().Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// Path returns the location the document is written to.
func (g *Generator) Path(doc *Document) string {
	return filepath.Join(g.dir, doc.FileName())
}

// Write renders doc and writes it as a whole file, replacing any existing file
// of the same name. It returns the written path.
func (g *Generator) Write(ctx context.Context, doc *Document) (string, error) {
	content, err := doc.Render()
	if err != nil {
		return "", err
	}

	ok, err := afero.DirExists(g.fs, g.dir)
	if err != nil {
		return "", errors.Wrapf(err, "failed to stat output directory %s", g.dir)
	}
	if !ok {
		return "", errors.Errorf("output directory %s does not exist", g.dir)
	}

	path := g.Path(doc)
	log := logger.G(ctx).WithField("path", path)
	log.WithField("bytes", len(content)).Debug("writing checklist")

	if err := afero.WriteFile(g.fs, path, content, filePerm); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", path)
	}

	log.Debug("checklist written")
	return path, nil
}

// Generate samples today's date once, builds the document and writes it.
func (g *Generator) Generate(ctx context.Context, opts ...Option) (string, error) {
	doc, err := New(g.Today(), opts...)
	if err != nil {
		return "", err
	}
	return g.Write(ctx, doc)
}
