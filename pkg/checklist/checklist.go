// Package checklist builds, writes and inspects dated markdown checklist files
// of the form todo_<YYYY-MM-DD>.md.
package checklist

import (
	"bytes"
	"strings"
	"text/template"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	// DateLayout is the layout used for the heading date and the file name.
	DateLayout = "2006-01-02"
	// DefaultItems is the number of empty checklist entries in a new document.
	DefaultItems = 10
	// MaxItems bounds the number of entries a document may carry.
	MaxItems = 100

	filePrefix = "todo_"
	fileExt    = ".md"
)

// Language selects the wording of the heading and the label line.
type Language string

const (
	// English renders "Today's Tasks" / "Things to do:".
	English Language = "en"
	// Korean renders "오늘 할 일" / "해야 할 일:".
	Korean Language = "ko"
)

type wording struct {
	Heading string
	Prompt  string
}

var wordings = map[Language]wording{
	English: {Heading: "Today's Tasks", Prompt: "Things to do:"},
	Korean:  {Heading: "오늘 할 일", Prompt: "해야 할 일:"},
}

// ParseLanguage validates a language code.
func ParseLanguage(s string) (Language, error) {
	lang := Language(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := wordings[lang]; !ok {
		return "", errors.Errorf("unsupported language %q, must be one of: en, ko", s)
	}
	return lang, nil
}

const documentTemplate = `{{if .Frontmatter}}---
{{.Frontmatter}}---

{{end}}## {{.Heading}} ({{.Date}})

**{{.Prompt}}**

{{range .Items}}- [ ] {{.}}
{{end}}`

var tmpl = template.Must(template.New("checklist").Parse(documentTemplate))

// Document is a dated checklist with a fixed number of unchecked, unlabeled entries.
type Document struct {
	Date        time.Time
	Items       int
	Language    Language
	Frontmatter bool
}

// Option configures a Document
type Option func(*Document) error

// WithItems sets the number of checklist entries.
func WithItems(n int) Option {
	return func(d *Document) error {
		if n < 1 || n > MaxItems {
			return errors.Errorf("item count must be between 1 and %d, got %d", MaxItems, n)
		}
		d.Items = n
		return nil
	}
}

// WithLanguage sets the wording of the document.
func WithLanguage(lang Language) Option {
	return func(d *Document) error {
		if _, ok := wordings[lang]; !ok {
			return errors.Errorf("unsupported language %q", lang)
		}
		d.Language = lang
		return nil
	}
}

// WithFrontmatter prepends a YAML frontmatter block carrying the date.
func WithFrontmatter(enabled bool) Option {
	return func(d *Document) error {
		d.Frontmatter = enabled
		return nil
	}
}

// New creates a document for the given date. Without options it renders the
// default English checklist of DefaultItems entries.
func New(date time.Time, opts ...Option) (*Document, error) {
	d := &Document{
		Date:     date,
		Items:    DefaultItems,
		Language: English,
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, errors.Wrap(err, "failed to apply checklist option")
		}
	}
	return d, nil
}

// DateString returns the document date as YYYY-MM-DD.
func (d *Document) DateString() string {
	return d.Date.Format(DateLayout)
}

// FileName returns todo_<date>.md for the document date.
func (d *Document) FileName() string {
	return FileName(d.DateString())
}

// FileName returns the checklist file name for a YYYY-MM-DD date.
func FileName(date string) string {
	return filePrefix + date + fileExt
}

type frontmatter struct {
	Date string   `yaml:"date"`
	Tags []string `yaml:"tags"`
}

// Render produces the markdown content of the document.
func (d *Document) Render() ([]byte, error) {
	w, ok := wordings[d.Language]
	if !ok {
		return nil, errors.Errorf("unsupported language %q", d.Language)
	}

	data := struct {
		Frontmatter string
		Heading     string
		Prompt      string
		Date        string
		Items       []string
	}{
		Heading: w.Heading,
		Prompt:  w.Prompt,
		Date:    d.DateString(),
		Items:   make([]string, d.Items),
	}

	if d.Frontmatter {
		fm, err := yaml.Marshal(frontmatter{Date: data.Date, Tags: []string{"todo"}})
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal frontmatter")
		}
		data.Frontmatter = string(fm)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "failed to execute checklist template")
	}
	return buf.Bytes(), nil
}
