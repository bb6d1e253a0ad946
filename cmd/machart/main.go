package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/raykavin/machart"
	"github.com/raykavin/machart/pkg/config"
	"github.com/raykavin/machart/pkg/feed"
	"github.com/raykavin/machart/pkg/indicator"
	"github.com/raykavin/machart/pkg/logger"
	"github.com/raykavin/machart/pkg/logger/zerolog"
	"github.com/raykavin/machart/pkg/optimizer"
	"github.com/spf13/cobra"
	"github.com/xhit/go-str2duration/v2"
)

// Command line flags
var (
	// Global flags
	configFile string
	envFile    string

	// Compute command flags
	inputFile  string
	column     string
	kindName   string
	periods    []int
	rows       int
	showHist   bool
	confidence float64

	// Export command flags
	outputDir string
	format    string
	steps     int
	animate   bool
	scenarios []string
	duration  string

	// Serve command flags
	port int

	// Optimize command flags
	kindNames   []string
	fastRange   []int
	slowRange   []int
	top         int
	parallelism int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "machart",
		Short:         "Moving average charts: indicators, frames and a chart server",
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "Environment file loaded before the environment")

	rootCmd.AddCommand(
		buildComputeCmd(),
		buildScenariosCmd(),
		buildExportCmd(),
		buildServeCmd(),
		buildOptimizeCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		machart.DefaultLog.WithError(err).Error("command failed")
		os.Exit(1)
	}
}

func buildComputeCmd() *cobra.Command {
	computeCmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute moving averages over a CSV price column",
		RunE:  runCompute,
	}

	computeCmd.Flags().StringVarP(&inputFile, "input", "i", "-", "CSV file, - for stdin")
	computeCmd.Flags().StringVar(&column, "column", "", "Column name or index (default close, or the last field without header)")
	computeCmd.Flags().StringVarP(&kindName, "kind", "k", "sma", "Average kind: sma, ema or wma")
	computeCmd.Flags().IntSliceVarP(&periods, "period", "p", []int{20}, "Periods, the first two are checked for crosses")
	computeCmd.Flags().IntVarP(&rows, "rows", "r", 20, "Number of trailing rows to print, 0 for all")
	computeCmd.Flags().BoolVar(&showHist, "hist", false, "Print the price deviation from the first average")
	computeCmd.Flags().Float64Var(&confidence, "confidence", 0.95, "Confidence of the deviation interval")

	return computeCmd
}

func runCompute(cmd *cobra.Command, _ []string) error {
	kind, err := indicator.ParseKind(kindName)
	if err != nil {
		return err
	}

	prices, err := feed.ReadFile(inputFile, column)
	if err != nil {
		return err
	}

	report, err := machart.Compute(prices, kind, periods...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := report.Table(out, rows); err != nil {
		return err
	}

	if showHist {
		fmt.Fprintln(out)
		return report.Deviation(out, confidence)
	}
	return nil
}

func buildScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the chart scenarios",
		RunE:  runScenarios,
	}
}

func runScenarios(cmd *cobra.Command, _ []string) error {
	app, _, err := initialize()
	if err != nil {
		return err
	}
	defer app.Close()

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Name", "Title", "Averages", "Duration"})

	builder := app.Builder()
	for _, name := range builder.Names() {
		s, err := builder.Scenario(name)
		if err != nil {
			return err
		}

		indicators, err := s.Indicators()
		if err != nil {
			return err
		}
		averages := make([]string, 0, len(indicators))
		for _, ind := range indicators {
			averages = append(averages, ind.Name())
		}

		d, err := app.Duration(name)
		if err != nil {
			return err
		}

		table.Append([]string{name, s.Title, strings.Join(averages, " "), d.String()})
	}

	table.Render()
	return nil
}

func buildExportCmd() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export animation frames of the scenarios",
		RunE:  runExport,
	}

	exportCmd.Flags().StringVarP(&outputDir, "output", "o", "./frames", "Output directory")
	exportCmd.Flags().StringVarP(&format, "format", "f", machart.FormatJSON, "Output format: json or yaml")
	exportCmd.Flags().IntVar(&steps, "steps", machart.DefaultSteps, "Frames per scenario")
	exportCmd.Flags().BoolVar(&animate, "animate", false, "Record frames in real time instead of fixed steps")
	exportCmd.Flags().StringVarP(&duration, "duration", "d", "", "Override the animation duration (e.g. 2s, 1500ms)")
	exportCmd.Flags().StringSliceVarP(&scenarios, "scenario", "s", nil, "Scenarios to export (default all)")

	return exportCmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	app, log, err := initializeWith(func(cfg *config.Config) error {
		if duration == "" {
			return nil
		}
		d, err := str2duration.ParseDuration(duration)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}
		cfg.Duration, cfg.SlowDuration = d, d
		return nil
	})
	if err != nil {
		return err
	}
	defer app.Close()

	paths, err := app.Export(cmd.Context(), machart.ExportOptions{
		Dir:       outputDir,
		Format:    format,
		Scenarios: scenarios,
		Steps:     steps,
		Animate:   animate,
		Progress:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	log.Infof("exported %d scenarios to %s", len(paths), outputDir)
	return nil
}

func buildServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve chart frames over HTTP",
		RunE:  runServe,
	}

	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP port (default from config)")

	return serveCmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	app, _, err := initializeWith(func(cfg *config.Config) error {
		if port > 0 {
			cfg.Port = port
		}
		return nil
	})
	if err != nil {
		return err
	}
	defer app.Close()

	return app.Serve(cmd.Context())
}

func buildOptimizeCmd() *cobra.Command {
	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "Search the best fast/slow crossover periods for a CSV price column",
		RunE:  runOptimize,
	}

	optimizeCmd.Flags().StringVarP(&inputFile, "input", "i", "-", "CSV file, - for stdin")
	optimizeCmd.Flags().StringVar(&column, "column", "", "Column name or index")
	optimizeCmd.Flags().StringSliceVarP(&kindNames, "kind", "k", []string{"sma"}, "Average kinds to try")
	optimizeCmd.Flags().IntSliceVar(&fastRange, "fast", []int{5, 20, 1}, "Fast periods as min,max,step")
	optimizeCmd.Flags().IntSliceVar(&slowRange, "slow", []int{20, 60, 5}, "Slow periods as min,max,step")
	optimizeCmd.Flags().IntVarP(&top, "top", "t", 10, "Number of results to print")
	optimizeCmd.Flags().IntVar(&parallelism, "parallelism", runtime.NumCPU(), "Parallel evaluations")

	return optimizeCmd
}

func runOptimize(cmd *cobra.Command, _ []string) error {
	kinds := make([]indicator.Kind, 0, len(kindNames))
	for _, name := range kindNames {
		kind, err := indicator.ParseKind(name)
		if err != nil {
			return err
		}
		kinds = append(kinds, kind)
	}

	fast, err := parseRange("fast", fastRange)
	if err != nil {
		return err
	}
	slow, err := parseRange("slow", slowRange)
	if err != nil {
		return err
	}

	prices, err := feed.ReadFile(inputFile, column)
	if err != nil {
		return err
	}

	grid, err := optimizer.NewGrid(optimizer.Config{
		Kinds:       kinds,
		Fast:        fast,
		Slow:        slow,
		Parallelism: parallelism,
		Logger:      machart.DefaultLog,
	})
	if err != nil {
		return err
	}

	results, err := grid.Optimize(cmd.Context(), prices)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Pair", "Trades", "Win", "% Win", "Profit"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for i, result := range results {
		if top > 0 && i >= top {
			break
		}
		table.Append([]string{
			result.Pair.String(),
			strconv.Itoa(result.Trades),
			strconv.Itoa(result.Wins),
			fmt.Sprintf("%.1f", result.WinRate()*100),
			fmt.Sprintf("%.2f%%", result.Profit),
		})
	}
	table.Render()
	return nil
}

func parseRange(name string, values []int) (optimizer.Range, error) {
	switch len(values) {
	case 2:
		return optimizer.Range{Min: values[0], Max: values[1], Step: 1}, nil
	case 3:
		return optimizer.Range{Min: values[0], Max: values[1], Step: values[2]}, nil
	}
	return optimizer.Range{}, fmt.Errorf("--%s wants min,max[,step], got %v", name, values)
}

func initialize() (*machart.Machart, logger.Logger, error) {
	return initializeWith(nil)
}

// initializeWith loads the configuration, lets the command adjust it, and
// builds the logger and the application
func initializeWith(adjust func(*config.Config) error) (*machart.Machart, logger.Logger, error) {
	cfg, err := config.Load(configFile, envFile)
	if err != nil {
		return nil, nil, err
	}

	if adjust != nil {
		if err := adjust(cfg); err != nil {
			return nil, nil, err
		}
	}

	log, err := zerolog.New(zerolog.Config{
		Level:      cfg.Log.Level,
		TimeFormat: cfg.Log.TimeFormat,
		Colored:    cfg.Log.Colored,
		JSON:       cfg.Log.JSON,
		Output:     os.Stderr,
	})
	if err != nil {
		return nil, nil, err
	}

	app, err := machart.New(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return app, log, nil
}
