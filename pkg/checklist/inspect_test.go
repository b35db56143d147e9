package checklist

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect_GeneratedChecklist(t *testing.T) {
	summary, err := Inspect([]byte(jan15Checklist))
	require.NoError(t, err)

	assert.Equal(t, "Today's Tasks (2024-01-15)", summary.Heading)
	assert.Equal(t, "2024-01-15", summary.Date)
	assert.Equal(t, 10, summary.Total)
	assert.Equal(t, 0, summary.Done)
	assert.Equal(t, 10, summary.Open())
}

func TestInspect_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"default", nil},
		{"korean", []Option{WithLanguage(Korean)}},
		{"frontmatter", []Option{WithFrontmatter(true), WithItems(4)}},
		{"single item", []Option{WithItems(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := New(jan15, tt.opts...)
			require.NoError(t, err)
			content, err := doc.Render()
			require.NoError(t, err)

			summary, err := Inspect(content)
			require.NoError(t, err)

			assert.Equal(t, doc.Items, summary.Total)
			assert.Equal(t, 0, summary.Done)
			assert.Equal(t, doc.DateString(), summary.Date)
		})
	}
}

func TestInspect_CheckedItems(t *testing.T) {
	source := `## Today's Tasks (2024-01-15)

**Things to do:**

- [x] write report
- [ ] review PR
- [X] water plants
- [ ]
`
	summary, err := Inspect([]byte(source))
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 2, summary.Done)
	assert.Equal(t, 2, summary.Open())
}

func TestInspect_FrontmatterDateWins(t *testing.T) {
	source := `---
date: "2024-03-01"
---

## Today's Tasks (2024-01-15)

- [ ]
`
	summary, err := Inspect([]byte(source))
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", summary.Date)
	assert.Equal(t, 1, summary.Total)
}

func TestInspect_PlainMarkdown(t *testing.T) {
	summary, err := Inspect([]byte("# Notes\n\n- not a task\n- [link](http://example.com)\n"))
	require.NoError(t, err)

	assert.Empty(t, summary.Heading)
	assert.Empty(t, summary.Date)
	assert.Equal(t, 0, summary.Total)
}

func writeChecklist(t *testing.T, fs afero.Fs, dir string, opts ...GeneratorOption) string {
	t.Helper()
	g := NewGenerator(append([]GeneratorOption{WithFs(fs), WithDir(dir)}, opts...)...)
	path, err := g.Generate(context.Background())
	require.NoError(t, err)
	return path
}

func TestInspector_InspectFile(t *testing.T) {
	fs := newMemFs(t, "/work")
	writeChecklist(t, fs, "/work", WithClock(fixedClock(jan15)))

	inspector := NewInspector(fs, "/work")
	summary, err := inspector.InspectFile(context.Background(), "todo_2024-01-15.md")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/work", "todo_2024-01-15.md"), summary.Path)
	assert.Equal(t, 10, summary.Total)

	_, err = inspector.InspectFile(context.Background(), "todo_1999-01-01.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestInspector_InspectPatterns(t *testing.T) {
	fs := newMemFs(t, "/work")
	writeChecklist(t, fs, "/work", WithClock(fixedClock(jan15)))
	writeChecklist(t, fs, "/work", WithClock(fixedClock(jan15.AddDate(0, 0, 1))))
	writeChecklist(t, fs, "/work", WithClock(fixedClock(jan15.AddDate(0, 1, 0))))
	require.NoError(t, afero.WriteFile(fs, "/work/README.md", []byte("# readme\n"), 0o644))

	inspector := NewInspector(fs, "/work")
	summaries, err := inspector.InspectPatterns(context.Background(), "todo_2024-01-*.md")
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "2024-01-15", summaries[0].Date)
	assert.Equal(t, "2024-01-16", summaries[1].Date)

	summaries, err = inspector.InspectPatterns(context.Background(), "todo_*.md", "todo_2024-02-15.md")
	require.NoError(t, err)
	assert.Len(t, summaries, 3)
}

func TestInspector_InspectPatterns_AggregatesErrors(t *testing.T) {
	fs := newMemFs(t, "/work")
	writeChecklist(t, fs, "/work", WithClock(fixedClock(jan15)))

	inspector := NewInspector(fs, "/work")
	summaries, err := inspector.InspectPatterns(context.Background(), "todo_2024-01-15.md", "todo_2023-*.md", "[")
	require.Error(t, err)
	require.Len(t, summaries, 1)

	assert.Contains(t, err.Error(), "2 errors occurred")
	assert.Contains(t, err.Error(), `no files match "todo_2023-*.md"`)
	assert.Contains(t, err.Error(), `invalid pattern "["`)
}
