package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"returnbaselines/internal/calculator"
	"returnbaselines/internal/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

type reportOutput struct {
	RunID     uuid.UUID `json:"runId"`
	File      string    `json:"file"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	// NaN and infinite values are written as null
	Report *calculator.BaselineReport `json:"report"`
}

func newReportCmd(o *rootOptions) *cobra.Command {
	var picksFile string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Both baselines, optionally scoring a strategy's picks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := o.newContext()
			runID := uuid.New()
			log := logger.FromContext(ctx).With("runId", runID)
			ctx = logger.NewContext(ctx, log)
			defer log.Sync()

			m, err := loadMatrix(ctx, *o)
			if err != nil {
				return err
			}

			report, err := calculator.NewBaselineReport(m.Returns, o.aggregateOptions()...)
			if err != nil {
				return err
			}

			if picksFile != "" {
				symbols, err := readPicks(picksFile)
				if err != nil {
					return err
				}
				picks, err := m.PicksFromSymbols(symbols)
				if err != nil {
					return err
				}
				if err := report.Evaluate(m.Returns, picks); err != nil {
					return err
				}
			}

			log.Infow("computed baselines", "best", report.Best, "average", report.Average)

			return pprint(cmd.OutOrStdout(), reportOutput{
				RunID:     runID,
				File:      o.file,
				StartDate: m.Dates[0].Format(time.DateOnly),
				EndDate:   m.Dates[len(m.Dates)-1].Format(time.DateOnly),
				Report:    report,
			})
		},
	}
	cmd.Flags().StringVar(&picksFile, "picks", "", "file with one picked symbol per timestep, comma or newline separated (- for none)")

	return cmd
}

func newScalarCmd(o *rootOptions, use, short string, aggregate func(mat.Matrix, ...calculator.Option) (float64, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := o.newContext()
			m, err := loadMatrix(ctx, *o)
			if err != nil {
				return err
			}
			out, err := aggregate(m.Returns, o.aggregateOptions()...)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(out, 'g', -1, 64))
			return err
		},
	}
}

// readPicks splits on commas and newlines. an empty or blank
// field is kept and means no position that timestep
func readPicks(path string) ([]string, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read picks: %w", err)
	}
	content := strings.ReplaceAll(string(f), "\r\n", "\n")
	content = strings.TrimRight(content, "\n")
	fields := strings.Split(strings.ReplaceAll(content, "\n", ","), ",")
	for i, field := range fields {
		fields[i] = strings.TrimSpace(field)
	}
	return fields, nil
}
