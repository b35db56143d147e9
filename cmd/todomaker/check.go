package main

import (
	"context"
	"fmt"

	"github.com/jingkaihe/todomaker/pkg/checklist"
	"github.com/jingkaihe/todomaker/pkg/presenter"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var checkCmd = &cobra.Command{
	Use:   "check [pattern...]",
	Short: "Show progress of checklist files",
	Long: `Report how many items are done in checklist files. Without arguments the
checklist for today (or --date) is inspected. Arguments are glob patterns relative
to --dir and may use ** to match nested directories, e.g. "todo_2024-01-*.md".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := getGenerateConfig(viper.GetViper())
		if err := config.Validate(); err != nil {
			return errors.Wrap(err, "invalid configuration")
		}

		lines, err := runCheck(cmd.Context(), afero.NewOsFs(), config, args)
		for _, line := range lines {
			presenter.Info(line)
		}
		return err
	},
}

// runCheck inspects the files matching patterns and returns one report line per file.
func runCheck(ctx context.Context, fs afero.Fs, config *GenerateConfig, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		date, err := config.parseDate()
		if err != nil {
			return nil, err
		}
		if date.IsZero() {
			date = checklist.NewGenerator().Today()
		}
		patterns = []string{checklist.FileName(date.Format(checklist.DateLayout))}
	}

	inspector := checklist.NewInspector(fs, config.Dir)
	summaries, err := inspector.InspectPatterns(ctx, patterns...)

	lines := make([]string, 0, len(summaries))
	for _, s := range summaries {
		lines = append(lines, formatSummary(s))
	}
	return lines, err
}

func formatSummary(s *checklist.Summary) string {
	date := s.Date
	if date == "" {
		date = "unknown"
	}
	return fmt.Sprintf("%s: %d/%d done (date %s)", s.Path, s.Done, s.Total, date)
}
