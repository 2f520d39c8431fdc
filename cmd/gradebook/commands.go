package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"gradebook/internal/app"
	"gradebook/internal/config"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configFile string
	logLevel   string
	logFormat  string
	idColumn   string
	nameColumn string
	delimiter  string
	sheet      string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "gradebook",
		Short: "Rank students and summarise their exam marks",
		Long: `gradebook reads a roster of exam marks (CSV or Excel) with one row per student.
Non-numeric or missing marks count as zero. It can chart the marks as a stacked
bar per student, print per-student statistics, or print the ranking table.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "Configuration file (default is gradebook.yaml if present)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format: json or text")
	flags.StringVar(&opts.idColumn, "id-column", "", "Roster column holding the roll number")
	flags.StringVar(&opts.nameColumn, "name-column", "", "Roster column holding the student name")
	flags.StringVar(&opts.delimiter, "delimiter", "", "CSV field delimiter")
	flags.StringVar(&opts.sheet, "sheet", "", "Workbook sheet to read (default is the first sheet)")

	rootCmd.AddCommand(
		newChartCmd(opts),
		newStatsCmd(opts),
		newRankCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

func newChartCmd(opts *rootOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "chart [file]",
		Short: "Write the stacked bar chart of marks to an Excel workbook",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd, opts, func(ctx context.Context, a *app.Application) error {
				return a.RunChart(ctx, inputArg(args), out)
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Chart workbook path (default is the configured chart path)")
	return cmd
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	var csvOut string
	cmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "Print mean, median and standard deviation of each student's marks",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd, opts, func(ctx context.Context, a *app.Application) error {
				return a.RunStats(ctx, inputArg(args), csvOut)
			})
		},
	}
	cmd.Flags().StringVar(&csvOut, "csv", "", "Also export the statistics to this CSV file")
	return cmd
}

func newRankCmd(opts *rootOptions) *cobra.Command {
	var csvOut string
	cmd := &cobra.Command{
		Use:   "rank [file]",
		Short: "Print students ranked by total marks",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd, opts, func(ctx context.Context, a *app.Application) error {
				return a.RunRank(ctx, inputArg(args), csvOut)
			})
		},
	}
	cmd.Flags().StringVar(&csvOut, "csv", "", "Also export the ranking to this CSV file")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the gradebook version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (built %s)\n", app.AppName, app.VERSION, app.BuildTime)
		},
	}
}

func inputArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// withApplication loads configuration, applies flag overrides and runs fn
// against a fresh application that is closed afterwards.
func withApplication(cmd *cobra.Command, opts *rootOptions, fn func(context.Context, *app.Application) error) error {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return err
	}
	opts.apply(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := app.NewApplication(ctx, cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	runErr := fn(ctx, a)
	if err := a.Close(ctx); err != nil && runErr == nil {
		return err
	}
	return runErr
}

// apply copies explicitly set flags over the loaded configuration.
func (o *rootOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = o.logFormat
	}
	if flags.Changed("id-column") {
		cfg.Roster.IDColumn = o.idColumn
	}
	if flags.Changed("name-column") {
		cfg.Roster.NameColumn = o.nameColumn
	}
	if flags.Changed("delimiter") {
		cfg.Roster.Delimiter = o.delimiter
	}
	if flags.Changed("sheet") {
		cfg.Roster.Sheet = o.sheet
	}
}
