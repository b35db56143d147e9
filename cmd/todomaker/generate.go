package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jingkaihe/todomaker/pkg/checklist"
	"github.com/jingkaihe/todomaker/pkg/logger"
	"github.com/jingkaihe/todomaker/pkg/presenter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// GenerateConfig holds configuration for the generate command
type GenerateConfig struct {
	Dir         string
	Date        string
	Items       int
	Language    string
	Frontmatter bool
}

// NewGenerateConfig creates a GenerateConfig that reproduces the classic
// ten-item English checklist in the working directory.
func NewGenerateConfig() *GenerateConfig {
	return &GenerateConfig{
		Dir:         ".",
		Date:        "",
		Items:       checklist.DefaultItems,
		Language:    string(checklist.English),
		Frontmatter: false,
	}
}

// Validate validates the GenerateConfig and returns an error if invalid
func (c *GenerateConfig) Validate() error {
	if c.Dir == "" {
		return errors.New("output directory cannot be empty")
	}
	if c.Items < 1 || c.Items > checklist.MaxItems {
		return errors.Errorf("items must be between 1 and %d, got %d", checklist.MaxItems, c.Items)
	}
	if _, err := checklist.ParseLanguage(c.Language); err != nil {
		return err
	}
	if _, err := c.parseDate(); err != nil {
		return err
	}
	return nil
}

// parseDate returns the requested date, or the zero time when none was given.
func (c *GenerateConfig) parseDate() (time.Time, error) {
	if c.Date == "" {
		return time.Time{}, nil
	}
	date, err := time.ParseInLocation(checklist.DateLayout, c.Date, time.Local)
	if err != nil {
		return time.Time{}, errors.Errorf("invalid date %q, expected YYYY-MM-DD", c.Date)
	}
	return date, nil
}

func (c *GenerateConfig) options() ([]checklist.Option, error) {
	lang, err := checklist.ParseLanguage(c.Language)
	if err != nil {
		return nil, err
	}
	return []checklist.Option{
		checklist.WithItems(c.Items),
		checklist.WithLanguage(lang),
		checklist.WithFrontmatter(c.Frontmatter),
	}, nil
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write today's checklist file",
	Long: `Write todo_<YYYY-MM-DD>.md for today's date. An existing file with the same
name is overwritten without confirmation.`,
	Args: cobra.NoArgs,
	RunE: runGenerateCmd,
}

func init() {
	addGenerateFlags(generateCmd.Flags())
}

func addGenerateFlags(fs *pflag.FlagSet) {
	defaults := NewGenerateConfig()
	fs.IntP("items", "n", defaults.Items, "Number of empty checklist items")
	fs.StringP("lang", "l", defaults.Language, "Checklist wording (en, ko)")
	fs.Bool("frontmatter", defaults.Frontmatter, "Prepend YAML frontmatter with the date")
}

// getGenerateConfig extracts generate configuration from flags, environment and config file
func getGenerateConfig(v *viper.Viper) *GenerateConfig {
	config := NewGenerateConfig()

	if v.IsSet("dir") {
		config.Dir = v.GetString("dir")
	}
	if v.IsSet("date") {
		config.Date = v.GetString("date")
	}
	if v.IsSet("items") {
		config.Items = v.GetInt("items")
	}
	if v.IsSet("lang") {
		config.Language = v.GetString("lang")
	}
	if v.IsSet("frontmatter") {
		config.Frontmatter = v.GetBool("frontmatter")
	}

	return config
}

func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	config := getGenerateConfig(viper.GetViper())
	if err := config.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	g := checklist.NewGenerator(checklist.WithDir(config.Dir))
	path, err := runGenerate(cmd.Context(), config, g)
	if err != nil {
		return err
	}

	presenter.Success(fmt.Sprintf("Created markdown file %s", path))
	return nil
}

// runGenerate writes the configured checklist and returns its path.
func runGenerate(ctx context.Context, config *GenerateConfig, g *checklist.Generator) (string, error) {
	opts, err := config.options()
	if err != nil {
		return "", err
	}

	date, err := config.parseDate()
	if err != nil {
		return "", err
	}

	logger.G(ctx).WithField("dir", config.Dir).WithField("items", config.Items).Debug("generating checklist")

	if date.IsZero() {
		return g.Generate(ctx, opts...)
	}

	doc, err := checklist.New(date, opts...)
	if err != nil {
		return "", err
	}
	return g.Write(ctx, doc)
}
