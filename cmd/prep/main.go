package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"telcochurn/adapters/excel"
	"telcochurn/adapters/gota"
	"telcochurn/app"
	"telcochurn/domain/dataset"
	domain "telcochurn/domain/outlier"
	"telcochurn/internal"
	"telcochurn/internal/outlier"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type options struct {
	inputs     []string
	outDir     string
	format     string
	target     string
	idColumn   string
	fold       float64
	exceptions []string
	parallel   int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "prep [files...]",
		Short: "Clean churn datasets before training",
		Long: `Impute placeholder values, check every column and trim or cap numeric
outliers according to each feature's skewness.

Example: prep --in telco.csv --out clean/ --fold 1.5 --except SeniorCitizen`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.inputs = append(opts.inputs, args...)
			return run(cmd.Context(), cmd.OutOrStdout(), opts)
		},
		SilenceUsage: true,
	}

	f := cmd.Flags()
	f.StringSliceVar(&opts.inputs, "in", nil, "input files (.csv or .xlsx), comma separated")
	f.StringVar(&opts.outDir, "out", "", "output directory (default: next to each input)")
	f.StringVar(&opts.format, "format", "csv", "output format: csv or xlsx")
	f.StringVar(&opts.target, "target", "Churn", "target column kept aligned with the features; empty for none")
	f.StringVar(&opts.idColumn, "id", "customerID", "identifier column to drop")
	f.Float64Var(&opts.fold, "fold", domain.FoldModerate, "IQR multiplier for outlier accounting: 1.5 or 3")
	f.StringSliceVar(&opts.exceptions, "except", nil, "features never trimmed or capped, comma separated")
	f.IntVar(&opts.parallel, "parallel", 4, "files processed at once")

	return cmd
}

type fileResult struct {
	input  string
	output string
	result *app.PreparationResult
}

func run(ctx context.Context, out io.Writer, opts options) error {
	if len(opts.inputs) == 0 {
		return fmt.Errorf("no input files: use --in or pass paths as arguments")
	}
	if err := outlier.ValidateFold(opts.fold); err != nil {
		return err
	}
	if opts.format != "csv" && opts.format != "xlsx" {
		return fmt.Errorf("unsupported output format %q", opts.format)
	}
	if opts.outDir != "" {
		if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if opts.parallel < 1 {
		opts.parallel = 1
	}

	service := app.NewPreparationService(nil, internal.DefaultLogger)
	results := make([]fileResult, len(opts.inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.parallel)
	for i, input := range opts.inputs {
		i, input := i, input
		g.Go(func() error {
			res, err := prepareFile(gctx, service, input, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, res := range results {
		printSummary(out, res)
	}
	return nil
}

func prepareFile(ctx context.Context, service *app.PreparationService, input string, opts options) (fileResult, error) {
	table, err := loadTable(input)
	if err != nil {
		return fileResult{}, err
	}

	target := opts.target
	if target != "" && !table.HasColumn(target) {
		return fileResult{}, fmt.Errorf("target column %q not found", target)
	}

	result, err := service.Prepare(ctx, app.PreparationRequest{
		Source:     filepath.Base(input),
		Table:      table,
		Target:     target,
		IDColumn:   opts.idColumn,
		Fold:       opts.fold,
		Exceptions: opts.exceptions,
	})
	if err != nil {
		return fileResult{}, err
	}

	output := outputPath(input, opts.outDir, opts.format)
	if err := excel.WriteTable(output, result.Table, result.Target); err != nil {
		return fileResult{}, err
	}
	return fileResult{input: input, output: output, result: result}, nil
}

// loadTable reads CSV through gota and spreadsheets through excelize
func loadTable(path string) (*dataset.Table, error) {
	if excel.FileType(path) == "csv" {
		return gota.NewLoader(internal.DefaultLogger).LoadFile(path)
	}
	return excel.NewDataReader(path).ReadTable()
}

func outputPath(input, outDir, format string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, base+"_clean."+format)
}

func printSummary(out io.Writer, res fileResult) {
	report := res.result.Report
	fmt.Fprintf(out, "\n== %s -> %s (%d -> %d rows, run %s)\n",
		res.input, res.output, report.RowsBefore, report.RowsAfter, report.RunID)

	if len(report.Imputed) > 0 {
		fmt.Fprintf(out, "imputed: %s\n", strings.Join(report.Imputed, ", "))
	}

	if len(report.Missing) > 0 {
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "FEATURE\tMISSING\tPCT")
		for _, m := range report.Missing {
			fmt.Fprintf(tw, "%s\t%d\t%.2f%%\n", m.Feature, m.TotalMissing, m.TotalMissingPct)
		}
		tw.Flush()
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FEATURE\tSKEW\tCATEGORY\tOUTLIERS\tPCT\tACTION\tLOWER\tUPPER")
	for i, d := range report.Decisions {
		lower, upper := "-", "-"
		if d.Action != domain.ActionNone {
			lower, upper = formatBound(d.Applied.Lower), formatBound(d.Applied.Upper)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.2f%%\t%s\t%s\t%s\n",
			d.Feature, formatBound(report.Distribution[i].Skewness), d.Category,
			report.Outliers[i].TotalCount, d.TotalPct, actionLabel(d), lower, upper)
	}
	tw.Flush()
}

func actionLabel(d domain.Decision) string {
	if d.Excepted {
		return "excepted"
	}
	return string(d.Action)
}

func formatBound(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.4g", v)
}
