package cmd

import (
	"os"

	"returnbaselines/internal/calculator"
	"returnbaselines/internal/logger"

	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	o := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "baselines",
		Short: "Non-compounding baseline returns for a matrix of percent returns",
		Long: `Computes the oracle (best company each timestep) and index average
returns of investing a fixed amount every timestep.

Input is a long-format csv of date,symbol,return rows, or
date,symbol,price rows with --prices.

Examples:
  baselines report --file returns.csv
  baselines report --file prices.csv --prices --skip 20 --picks picks.txt
  baselines best --file returns.csv --investment 1000`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&o.env, "env", os.Getenv(logger.EnvVar), "logging environment (dev|prod)")
	flags.StringVarP(&o.file, "file", "f", "", "csv file to load")
	flags.BoolVar(&o.prices, "prices", false, "file holds prices instead of returns")
	flags.Float64Var(&o.dailyInvestment, "investment", calculator.DefaultDailyInvestment, "amount invested every timestep")
	flags.IntVar(&o.skipSteps, "skip", calculator.DefaultSkipSteps, "leading timesteps to exclude")
	flags.IntVar(&o.workers, "workers", 1, "goroutines used for per-timestep reductions")

	rootCmd.AddCommand(
		newReportCmd(o),
		newScalarCmd(o, "best", "Return of always holding the best company", calculator.BestReturn),
		newScalarCmd(o, "average", "Return of holding the index average", calculator.AverageReturn),
	)

	return rootCmd
}

func Execute() error {
	return NewRootCmd().Execute()
}
