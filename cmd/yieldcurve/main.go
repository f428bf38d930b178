package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"yieldcurve/internal/config"
	"yieldcurve/internal/domain"
	"yieldcurve/internal/render"
	"yieldcurve/internal/resolver"
	"yieldcurve/internal/service"
	"yieldcurve/internal/sources"
	"yieldcurve/internal/tenorfile"
	"yieldcurve/pkg/tracing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "yieldcurve"

// comparer is the slice of the compare service the CLI needs.
type comparer interface {
	Compare(ctx context.Context, rawTenors []string) (*service.Comparison, error)
}

var (
	loadEnvFunc     = godotenv.Load
	loadConfigFunc  = config.Load
	loadCatalogFunc = sources.Default
	initTracerFunc  = tracing.InitTracer
	newComparerFunc = func(tracer trace.Tracer, logger *log.Logger, cat *sources.Catalog, cfg *config.Config) comparer {
		settings := cfg.ProviderSettings()
		us := resolver.NewUS(tracer, logger, cat, cfg.FREDAPIKey, settings)
		ca := resolver.NewCA(tracer, logger, cat, settings)
		return service.NewCompareService(tracer, logger, us, ca)
	}
	exitFunc = os.Exit
)

func main() {
	_ = loadEnvFunc()
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		exitFunc(1)
	}
}

type compareOptions struct {
	tenorsFile string
	out        string
}

func newRootCommand() *cobra.Command {
	opts := &compareOptions{}
	root := &cobra.Command{
		Use:   "yieldcurve",
		Short: "Compare the US and Canada government yield curves",
		Long: `yieldcurve fetches the latest US Treasury and Government of Canada yields,
aligns them on the tenors both sides publish and plots the two curves.

Running it without a subcommand is the same as "yieldcurve compare".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, opts)
		},
	}
	addCompareFlags(root, opts)

	root.AddCommand(newCompareCommand())
	root.AddCommand(newTenorsCommand())
	return root
}

func newCompareCommand() *cobra.Command {
	opts := &compareOptions{}
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Fetch both curves, print diagnostics and write the chart",
		Example: `  yieldcurve compare
  yieldcurve compare --tenors-file ./Tenor.csv --out curve.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, opts)
		},
	}
	addCompareFlags(cmd, opts)
	return cmd
}

func addCompareFlags(cmd *cobra.Command, opts *compareOptions) {
	cmd.Flags().StringVar(&opts.tenorsFile, "tenors-file", "", "CSV with a 'tenor' column (default: Tenor.csv in TENOR_DIR)")
	cmd.Flags().StringVar(&opts.out, "out", "", "chart output path (default: CHART_PATH)")
}

func newTenorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tenors",
		Short: "List supported tenors and the series behind each one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalogFunc()
			if err != nil {
				return err
			}
			printTenors(cmd.OutOrStdout(), cat)
			return nil
		},
	}
}

func newLogger(cfg *config.Config) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:  cfg.LogLevel,
		Prefix: serviceName,
	})
}

// runCompare exits non-zero only for tenor and setup errors. A run with no
// common tenor prints its diagnostics and succeeds without a chart.
func runCompare(cmd *cobra.Command, opts *compareOptions) error {
	ctx := cmd.Context()
	cfg := loadConfigFunc()
	logger := newLogger(cfg)

	tp, tracer, err := initTracerFunc(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Warn("error shutting down tracer provider", "err", err)
		}
	}()

	tenorsFile := opts.tenorsFile
	if tenorsFile == "" {
		tenorsFile = cfg.TenorFile
	}
	labels, path, err := tenorfile.Resolve(tenorsFile, cfg.TenorDir)
	if err != nil {
		return err
	}
	if path == "" {
		logger.Info("Tenor.csv not found; using full default tenor set")
	} else {
		logger.Debug("tenor file loaded", "path", path, "labels", len(labels))
	}

	cat, err := loadCatalogFunc()
	if err != nil {
		return err
	}

	cmp, err := newComparerFunc(tracer, logger, cat, cfg).Compare(ctx, labels)
	if err != nil && !errors.Is(err, domain.ErrNoOverlap) {
		return err
	}

	report := render.NewReport(cmd.OutOrStdout())
	report.Write(cmp, err)
	if err != nil {
		return nil
	}

	out := opts.out
	if out == "" {
		out = cfg.ChartPath
	}
	if err := render.RenderFile(out, cmp.Aligned, render.DefaultChartOptions()); err != nil {
		return err
	}
	report.Saved(out)
	return nil
}

func printTenors(w io.Writer, cat *sources.Catalog) {
	r := lipgloss.NewRenderer(w)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Faint(true)).
		Headers("TENOR", "FRED", "FISCALDATA", "VALET")

	for _, tenor := range domain.CatalogTenors() {
		valet := "-"
		if group, ok := cat.Valet.GroupFor(tenor); ok {
			if ids := group.Series[tenor]; len(ids) > 0 {
				valet = strings.Join(ids, " | ")
				if _, sub := group.Substitutes[tenor]; sub {
					valet += " *"
				}
			}
		}
		t.Row(string(tenor), orDash(strings.Join(cat.FRED.Series[tenor], " | ")), orDash(cat.Treasury.Fields[tenor]), valet)
	}

	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, "* substituted series, see diagnostics")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
