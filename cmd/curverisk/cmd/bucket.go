package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openquant/creditcurve/cmd/curverisk/internal/input"
	"github.com/openquant/creditcurve/internal/logging"
	"github.com/openquant/creditcurve/market"
	"github.com/openquant/creditcurve/risk"
	"github.com/openquant/creditcurve/sensitivity"
)

var flagReportCurrency string

var bucketCmd = &cobra.Command{
	Use:   "bucket <input.json>",
	Short: "Aggregate point sensitivities into per-curve buckets",
	Args:  cobra.ExactArgs(1),
	RunE:  runBucket,
}

// bucketResult is the JSON output shape, one entry per curve.
type bucketResult struct {
	Curve    string    `json:"curve"`
	Currency string    `json:"currency"`
	Buckets  []float64 `json:"buckets"`
	Total    float64   `json:"total"`
}

func runBucket(cmd *cobra.Command, args []string) error {
	f, err := input.Load(args[0])
	if err != nil {
		return err
	}
	resolver, err := f.BuildResolver()
	if err != nil {
		return err
	}
	points, err := f.Points()
	if err != nil {
		return err
	}
	logging.Debug("loaded input",
		zap.String("file", args[0]),
		zap.Int("curves", len(f.Curves)),
		zap.Int("points", len(points)))

	acc := sensitivity.NewMutable()
	acc.AddAll(points)

	if flagReportCurrency != "" {
		fx, err := f.FxMatrix(flagFx)
		if err != nil {
			return err
		}
		if err := acc.ConvertedTo(market.CurrencyOf(flagReportCurrency), fx); err != nil {
			return err
		}
	}

	out, err := risk.AggregateMutable(acc, resolver)
	if err != nil {
		return err
	}

	results := make([]bucketResult, 0, out.Size())
	for _, p := range out.List() {
		results = append(results, bucketResult{
			Curve:    p.CurveName().String(),
			Currency: p.Currency().String(),
			Buckets:  p.Sensitivities(),
			Total:    p.Total(),
		})
	}

	if flagFormat == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CURVE\tCCY\tBUCKET\tSENSITIVITY")
	for _, r := range results {
		for i, v := range r.Buckets {
			fmt.Fprintf(w, "%s\t%s\t%d\t%.8f\n", r.Curve, r.Currency, i, v)
		}
		fmt.Fprintf(w, "%s\t%s\ttotal\t%.8f\n", r.Curve, r.Currency, r.Total)
	}
	return w.Flush()
}

func init() {
	bucketCmd.Flags().StringVar(&flagReportCurrency, "report-currency", "", "convert all sensitivities to this currency before aggregating")
	rootCmd.AddCommand(bucketCmd)
}
