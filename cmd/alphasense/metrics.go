package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tikz/alphasense/alphafold"
	"github.com/tikz/alphasense/pdb"
)

// NA marks a metric that could not be computed for a variant.
const NA = "NA"

var requiredColumns = []string{"uniprot", "WT", "position"}

type metricsOptions struct {
	Radii      []float64
	Windows    []int
	QueryOnly  bool
	FromCenter bool
}

type metricsSummary struct {
	Variants   int
	Models     int
	Unresolved int
}

func runMetrics(cmd *cobra.Command, args []string) error {
	l, err := loader(cmd)
	if err != nil {
		return err
	}

	var opts metricsOptions
	if opts.Radii, err = cmd.Flags().GetFloat64Slice("radius"); err != nil {
		return err
	}
	if opts.Windows, err = cmd.Flags().GetIntSlice("plddt-window"); err != nil {
		return err
	}
	if opts.QueryOnly, err = cmd.Flags().GetBool("pae-query-only"); err != nil {
		return err
	}
	if opts.FromCenter, err = cmd.Flags().GetBool("from-center"); err != nil {
		return err
	}
	inputPath, err := cmd.Flags().GetString("input")
	if err != nil {
		return err
	}
	outputDir, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out := io.Writer(cmd.OutOrStdout())
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return err
		}
		base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		path := filepath.Join(outputDir, base+"_AFmetrics.tsv")
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
		slog.Info("writing metrics", slog.String("path", path))
	}

	summary, err := writeMetrics(cmd.Context(), l, in, out, opts)
	if err != nil {
		return err
	}
	slog.Info("done",
		slog.Int("variants", summary.Variants),
		slog.Int("models", summary.Models),
		slog.Int("unresolved", summary.Unresolved))
	return nil
}

func (o metricsOptions) validate() error {
	if len(o.Radii) == 0 {
		return fmt.Errorf("at least one radius is needed")
	}
	for _, r := range o.Radii {
		if r < 0 {
			return fmt.Errorf("radius %v: needs to be positive", r)
		}
	}
	for _, w := range o.Windows {
		if w <= 0 || w%2 == 0 {
			return fmt.Errorf("window %d: needs to be a positive odd integer", w)
		}
	}
	return nil
}

// columns returns the names of the metric columns, in output order.
func (o metricsOptions) columns() []string {
	var cols []string
	for _, r := range o.Radii {
		cols = append(cols, "pae_"+formatRadius(r)+"A")
		if len(o.Windows) == 0 {
			cols = append(cols, "plddt_"+formatRadius(r)+"A")
		}
	}
	for _, w := range o.Windows {
		cols = append(cols, fmt.Sprintf("plddt_%dres", w))
	}
	return cols
}

func formatRadius(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// writeMetrics reads the variants TSV from in and writes it to out with the
// metric columns appended. Every referenced model is loaded once.
func writeMetrics(ctx context.Context, l *alphafold.Loader, in io.Reader, out io.Writer, opts metricsOptions) (metricsSummary, error) {
	var summary metricsSummary
	if err := opts.validate(); err != nil {
		return summary, err
	}

	r := csv.NewReader(in)
	r.Comma = '\t'
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return summary, fmt.Errorf("read variants: %w", err)
	}
	if len(records) == 0 {
		return summary, fmt.Errorf("read variants: empty file")
	}

	header, rows := records[0], records[1:]
	col := make(map[string]int)
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return summary, fmt.Errorf("read variants: missing column %s", name)
		}
	}

	var accessions []string
	for _, row := range rows {
		accessions = append(accessions, strings.TrimSpace(row[col["uniprot"]]))
	}
	models, _, err := l.LoadAll(ctx, accessions)
	if err != nil {
		return summary, err
	}
	slog.Info("loaded models", slog.Int("models", len(models)), slog.Int("variants", len(rows)))

	w := csv.NewWriter(out)
	w.Comma = '\t'

	metricCols := opts.columns()
	if err := w.Write(append(append([]string{}, header...), metricCols...)); err != nil {
		return summary, err
	}

	for i, row := range rows {
		v := variant{
			line:      i + 2,
			accession: strings.TrimSpace(row[col["uniprot"]]),
			wt:        strings.TrimSpace(row[col["WT"]]),
			position:  strings.TrimSpace(row[col["position"]]),
		}

		values, err := v.metrics(models[v.accession], opts)
		if err != nil {
			slog.Warn("unresolved variant",
				slog.Int("line", v.line),
				slog.String("accession", v.accession),
				slog.String("position", v.position),
				slog.Any("err", err))
			summary.Unresolved++
			values = make([]string, len(metricCols))
			for j := range values {
				values[j] = NA
			}
		}

		if err := w.Write(append(append([]string{}, row...), values...)); err != nil {
			return summary, err
		}
	}

	w.Flush()
	summary.Variants = len(rows)
	summary.Models = len(models)
	return summary, w.Error()
}

type variant struct {
	line      int
	accession string
	wt        string
	position  string
}

func (v variant) metrics(m *alphafold.Model, opts metricsOptions) ([]string, error) {
	if m == nil {
		return nil, fmt.Errorf("no model for %s", v.accession)
	}

	pos, err := strconv.Atoi(v.position)
	if err != nil {
		return nil, fmt.Errorf("position %q is not an integer", v.position)
	}
	res, err := m.Structure().Residue(pos)
	if err != nil {
		return nil, err
	}
	if !sameResidue(v.wt, res) {
		return nil, fmt.Errorf("WT residue %s does not match %s in %s", v.wt, res.ID(), m)
	}

	var values []string
	for _, r := range opts.Radii {
		pae, err := m.LocalError(pos, r, opts.FromCenter, opts.QueryOnly)
		if err != nil {
			return nil, err
		}
		values = append(values, formatValue(pae))

		if len(opts.Windows) == 0 {
			plddt, err := m.LocalConfidence(pos, r, opts.FromCenter)
			if err != nil {
				return nil, err
			}
			values = append(values, formatValue(plddt))
		}
	}
	for _, w := range opts.Windows {
		plddt, _, err := m.PlddtWindow(pos, w, alphafold.DefaultThreshold)
		if err != nil {
			return nil, err
		}
		values = append(values, formatValue(plddt))
	}
	return values, nil
}

// sameResidue accepts the one letter, three letter or full amino acid name.
func sameResidue(wt string, res *pdb.Residue) bool {
	return strings.EqualFold(wt, res.Name1) || strings.EqualFold(wt, res.Name3) || strings.EqualFold(wt, res.Name)
}
