package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/finplan/projection-engine/internal/calculation"
	"github.com/finplan/projection-engine/internal/config"
	"github.com/finplan/projection-engine/internal/output"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	inputFile     string
	formatName    string
	outputFile    string
	realValues    bool
	throughFlag   string
	referenceDate string
	inflationCSV  string
	debugMode     bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "projection",
		Short: "Investment plan projection and progress calculator",
		Long: `Projects an investment plan month by month, amortizing goals and
events over their payment schedules, and measures progress toward the
retirement target.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&inputFile, "input", "i", "", "plan YAML file")
	root.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")

	root.AddCommand(newProjectCmd())
	root.AddCommand(newProgressCmd())
	root.AddCommand(newExampleCmd())
	return root
}

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Generate the month-by-month balance projection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProject()
		},
	}
	cmd.Flags().StringVarP(&formatName, "format", "f", "console", "output format (console, csv, json)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file ('auto' picks a timestamped name, default stdout)")
	cmd.Flags().BoolVar(&realValues, "real", false, "show inflation-adjusted amounts in today's money")
	cmd.Flags().StringVar(&throughFlag, "through", "limit-age", "projection horizon (retirement, limit-age)")
	cmd.Flags().StringVar(&inflationCSV, "inflation-data", "", "observed monthly inflation CSV (year,month,rate)")
	return cmd
}

func newProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Measure progress toward the retirement target",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgress()
		},
	}
	cmd.Flags().StringVarP(&formatName, "format", "f", "console", "output format (console, csv, json)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file ('auto' picks a timestamped name, default stdout)")
	cmd.Flags().StringVar(&referenceDate, "reference-date", "", "progress reference date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&inflationCSV, "inflation-data", "", "observed monthly inflation CSV (year,month,rate)")
	return cmd
}

func newExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example [filename]",
		Short: "Write an example plan file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := "plan.yaml"
			if len(args) > 0 {
				filename = args[0]
			}
			if err := config.CreateExamplePlanFile(filename); err != nil {
				return err
			}
			fmt.Printf("Example plan file created: %s\n", filename)
			return nil
		},
	}
}

func runProject() error {
	input, engine, err := loadPlan()
	if err != nil {
		return err
	}

	through, err := parseHorizon(throughFlag)
	if err != nil {
		return err
	}

	projection := engine.GenerateMonthlyProjection(projectionInput(input), calculation.ProjectionOptions{
		Through:        through,
		ShowRealValues: realValues,
	})
	if projection == nil {
		return fmt.Errorf("projection failed: plan is incomplete")
	}

	report := output.NewReport(input.Profile.Name, realValues)
	report.Projection = projection
	return emit(report)
}

func runProgress() error {
	input, engine, err := loadPlan()
	if err != nil {
		return err
	}

	ref := time.Now()
	if referenceDate != "" {
		parsed, err := time.Parse("2006-01-02", referenceDate)
		if err != nil {
			return fmt.Errorf("invalid reference date %q: %w", referenceDate, err)
		}
		ref = parsed
	}

	progress := engine.ComputeProgress(calculation.ProgressInput{
		ProjectionInput: projectionInput(input),
		ReferenceDate:   ref,
	})
	if progress == nil {
		return fmt.Errorf("progress calculation failed: plan or birth date is missing")
	}

	report := output.NewReport(input.Profile.Name, false)
	report.Progress = progress
	return emit(report)
}

func loadPlan() (*config.PlanInput, *calculation.Engine, error) {
	if inputFile == "" {
		return nil, nil, fmt.Errorf("input file is required (use --input)")
	}

	parser := config.NewInputParser()
	input, err := parser.LoadFromFile(inputFile)
	if err != nil {
		return nil, nil, err
	}

	engine := calculation.NewEngine()
	engine.Debug = debugMode
	engine.SetLogger(newZerologAdapter(debugMode))

	if inflationCSV != "" {
		series, err := calculation.LoadRateSeriesCSV(inflationCSV, "inflation")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load inflation data: %w", err)
		}
		engine.SetInflationSeries(series)
	}

	return input, engine, nil
}

func projectionInput(input *config.PlanInput) calculation.ProjectionInput {
	return calculation.ProjectionInput{
		Plan:       &input.Plan,
		MicroPlans: input.MicroPlans,
		Goals:      input.Goals,
		Events:     input.Events,
		Records:    input.Records,
		BirthDate:  input.Profile.BirthDate,
	}
}

func parseHorizon(name string) (calculation.Horizon, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "retirement":
		return calculation.HorizonRetirement, nil
	case "limit-age", "limit_age", "limit":
		return calculation.HorizonLimitAge, nil
	default:
		return 0, fmt.Errorf("unknown horizon %q (use 'retirement' or 'limit-age')", name)
	}
}

func emit(report *output.Report) error {
	formatter := output.GetFormatterByName(formatName)
	if formatter == nil {
		return fmt.Errorf("unknown format %q (available: %s)", formatName, strings.Join(output.AvailableFormatterNames(), ", "))
	}

	// "-o auto" picks a timestamped filename, "-o name" writes to that file,
	// no flag prints to stdout.
	if outputFile == "auto" {
		ext := formatter.Name()
		if ext == "console" {
			ext = "txt"
		}
		name, err := output.WriteFormatted(formatter, report, ext)
		if err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", name)
		return nil
	}

	data, err := formatter.Format(report)
	if err != nil {
		return err
	}
	if outputFile != "" {
		if err := os.WriteFile(outputFile, data, 0644); err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", outputFile)
		return nil
	}
	_, err = os.Stdout.Write(data)
	return err
}

// zerologAdapter bridges the engine's printf-style logger to zerolog.
type zerologAdapter struct {
	log zerolog.Logger
}

func newZerologAdapter(debug bool) zerologAdapter {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
	return zerologAdapter{log: logger}
}

func (z zerologAdapter) Debugf(format string, args ...any) {
	z.log.Debug().Msgf(format, args...)
}

func (z zerologAdapter) Infof(format string, args ...any) {
	z.log.Info().Msgf(format, args...)
}

func (z zerologAdapter) Warnf(format string, args ...any) {
	z.log.Warn().Msgf(format, args...)
}

func (z zerologAdapter) Errorf(format string, args ...any) {
	z.log.Error().Msgf(format, args...)
}
