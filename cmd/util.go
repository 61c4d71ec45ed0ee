package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"returnbaselines/internal/calculator"
	"returnbaselines/internal/data"
	"returnbaselines/internal/domain"
	"returnbaselines/internal/logger"
)

// flags shared by every subcommand
type rootOptions struct {
	env             string
	file            string
	prices          bool
	dailyInvestment float64
	skipSteps       int
	workers         int
}

func (o rootOptions) aggregateOptions() []calculator.Option {
	return []calculator.Option{
		calculator.WithDailyInvestment(o.dailyInvestment),
		calculator.WithSkipSteps(o.skipSteps),
		calculator.WithWorkers(o.workers),
	}
}

func (o rootOptions) newContext() context.Context {
	return logger.NewContext(context.Background(), logger.NewForEnv(o.env))
}

func loadMatrix(ctx context.Context, o rootOptions) (*domain.ReturnMatrix, error) {
	if o.file == "" {
		return nil, fmt.Errorf("--file is required")
	}
	f, err := os.Open(o.file)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", o.file, err)
	}
	defer f.Close()

	var m *domain.ReturnMatrix
	if o.prices {
		m, err = data.LoadPricesCSV(ctx, f)
	} else {
		m, err = data.LoadReturnsCSV(ctx, f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", o.file, err)
	}

	if data.HasNonFinite(m) {
		logger.FromContext(ctx).Warnf("%s contains NaN or infinite returns; they propagate unless skipped", o.file)
	}

	return m, nil
}

func pprint(w io.Writer, i interface{}) error {
	bytes, err := json.MarshalIndent(i, "", "    ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(bytes))
	return err
}
