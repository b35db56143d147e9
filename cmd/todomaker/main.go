package main

import (
	"context"
	"os"
	"strings"

	"github.com/jingkaihe/todomaker/pkg/logger"
	"github.com/jingkaihe/todomaker/pkg/presenter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Environment variables, e.g. TODOMAKER_DIR, TODOMAKER_LOG_LEVEL
	viper.SetEnvPrefix("TODOMAKER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("todomaker")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.todomaker")
	viper.AddConfigPath(".")

	// a missing config file is fine
	_ = viper.ReadInConfig()

	rootCmd.PersistentFlags().String("dir", ".", "Directory containing the checklist files")
	rootCmd.PersistentFlags().String("date", "", "Use this date (YYYY-MM-DD) instead of today")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress the confirmation output")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "fmt", "Log format (fmt, json)")
	addGenerateFlags(rootCmd.Flags())

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "todomaker",
	Short: "Create today's markdown checklist",
	Long: `todomaker writes todo_<YYYY-MM-DD>.md into the current directory containing
a dated heading and ten empty checklist items. Running it again on the same day
overwrites the file with a fresh checklist.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runGenerateCmd,
}

// setup binds the executing command's flags into viper, then configures
// logging and console output from the merged configuration.
func setup(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	if err := logger.Configure(viper.GetString("log-level"), viper.GetString("log-format")); err != nil {
		return err
	}
	presenter.SetQuiet(viper.GetBool("quiet"))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	log := logger.L.WithField("command", cmd.Name())
	if cfg := viper.ConfigFileUsed(); cfg != "" {
		log.WithField("config", cfg).Debug("loaded config file")
	}
	cmd.SetContext(logger.WithLogger(ctx, log))
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		presenter.Error(err, "")
		os.Exit(1)
	}
}
