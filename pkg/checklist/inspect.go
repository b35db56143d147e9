package checklist

import (
	"bytes"
	"context"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/jingkaihe/todomaker/pkg/logger"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var headingDate = regexp.MustCompile(`\((\d{4}-\d{2}-\d{2})\)\s*$`)

// Summary describes the state of a checklist file.
type Summary struct {
	Path    string
	Heading string
	Date    string
	Total   int
	Done    int
}

// Open returns the number of unchecked entries.
func (s *Summary) Open() int {
	return s.Total - s.Done
}

var markdown = goldmark.New(
	goldmark.WithExtensions(
		meta.Meta,
		extension.TaskList,
	),
)

// Inspect parses checklist markdown and counts its task entries. The date is
// taken from the frontmatter when present, otherwise from the "(YYYY-MM-DD)"
// suffix of the first level-2 heading.
func Inspect(source []byte) (*Summary, error) {
	pctx := parser.NewContext()
	doc := markdown.Parser().Parse(text.NewReader(source), parser.WithContext(pctx))

	summary := &Summary{}
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 2 && summary.Heading == "" {
				summary.Heading = headingText(node, source)
			}
		case *extast.TaskCheckBox:
			summary.Total++
			if node.IsChecked {
				summary.Done++
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to walk markdown")
	}

	metaData, err := meta.TryGet(pctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse frontmatter")
	}
	summary.Date = frontmatterDate(metaData)
	if summary.Date == "" {
		if m := headingDate.FindStringSubmatch(summary.Heading); m != nil {
			summary.Date = m[1]
		}
	}

	return summary, nil
}

func headingText(h *ast.Heading, source []byte) string {
	var buf bytes.Buffer
	lines := h.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return strings.TrimSpace(buf.String())
}

func frontmatterDate(metaData map[string]interface{}) string {
	switch v := metaData["date"].(type) {
	case string:
		return v
	case time.Time:
		return v.Format(DateLayout)
	}
	return ""
}

// Inspector reads checklist files from a directory.
type Inspector struct {
	fs  afero.Fs
	dir string
}

// NewInspector creates an inspector rooted at dir.
func NewInspector(fsys afero.Fs, dir string) *Inspector {
	return &Inspector{fs: fsys, dir: dir}
}

func (i *Inspector) root() afero.Fs {
	if filepath.Clean(i.dir) == "." {
		return i.fs
	}
	return afero.NewBasePathFs(i.fs, i.dir)
}

// InspectFile reads and inspects a single file relative to the inspector directory.
func (i *Inspector) InspectFile(ctx context.Context, name string) (*Summary, error) {
	p := filepath.FromSlash(name)
	if !filepath.IsAbs(p) {
		p = filepath.Join(i.dir, p)
	}
	logger.G(ctx).WithField("path", p).Debug("inspecting checklist")

	content, err := afero.ReadFile(i.fs, p)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", p)
	}
	summary, err := Inspect(content)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to inspect %s", p)
	}
	summary.Path = p
	return summary, nil
}

// InspectPatterns expands each doublestar pattern relative to the inspector
// directory and inspects every match. Failures are collected and returned
// together with the summaries that could be produced.
func (i *Inspector) InspectPatterns(ctx context.Context, patterns ...string) ([]*Summary, error) {
	fsys := afero.NewIOFS(i.root())

	var result *multierror.Error
	seen := make(map[string]bool)
	var names []string
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			result = multierror.Append(result, errors.Errorf("invalid pattern %q", pattern))
			continue
		}
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "failed to expand %q", pattern))
			continue
		}
		if len(matches) == 0 {
			result = multierror.Append(result, errors.Wrapf(fs.ErrNotExist, "no files match %q", pattern))
			continue
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				names = append(names, m)
			}
		}
	}
	sort.Strings(names)

	var summaries []*Summary
	for _, name := range names {
		summary, err := i.InspectFile(ctx, name)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		summaries = append(summaries, summary)
	}

	return summaries, result.ErrorOrNil()
}
