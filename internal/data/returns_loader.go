package data

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"returnbaselines/internal/domain"
	"returnbaselines/internal/logger"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/mat"
)

type returnRow struct {
	Date   string  `csv:"date"`
	Symbol string  `csv:"symbol"`
	Return float64 `csv:"return"`
}

type priceRow struct {
	Date   string `csv:"date"`
	Symbol string `csv:"symbol"`
	// kept as text so it parses straight into a decimal
	Price string `csv:"price"`
}

// LoadReturnsCSV reads long-format rows of date,symbol,return
// into a matrix of symbols x dates. every symbol needs a
// row for every date
func LoadReturnsCSV(ctx context.Context, r io.Reader) (*domain.ReturnMatrix, error) {
	rows := []returnRow{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse returns csv: %w", err)
	}

	returns := make([]domain.AssetReturn, 0, len(rows))
	for i, row := range rows {
		date, err := parseDate(row.Date)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		returns = append(returns, domain.AssetReturn{
			Symbol: strings.TrimSpace(row.Symbol),
			Return: row.Return,
			Date:   date,
		})
	}

	out, err := pivot(returns)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Infof("loaded returns for %d symbols over %d timesteps", out.NumCompanies(), out.NumTimesteps())
	return out, nil
}

// LoadPricesCSV reads long-format rows of date,symbol,price and
// converts each symbol's prices to percent changes between
// consecutive dates, so the first date has no return column
func LoadPricesCSV(ctx context.Context, r io.Reader) (*domain.ReturnMatrix, error) {
	rows := []priceRow{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse prices csv: %w", err)
	}

	pricesBySymbol := map[string][]domain.AssetPrice{}
	for i, row := range rows {
		date, err := parseDate(row.Date)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(row.Price))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid price %q: %w", i+1, row.Price, err)
		}
		symbol := strings.TrimSpace(row.Symbol)
		pricesBySymbol[symbol] = append(pricesBySymbol[symbol], domain.AssetPrice{
			Symbol: symbol,
			Price:  price,
			Date:   date,
		})
	}

	if err := requireEveryDate(pricesBySymbol); err != nil {
		return nil, err
	}

	returns := []domain.AssetReturn{}
	for symbol, prices := range pricesBySymbol {
		changes, err := PercentChanges(prices)
		if err != nil {
			return nil, fmt.Errorf("failed to compute returns for %s: %w", symbol, err)
		}
		// prices is sorted by PercentChanges
		for i, change := range changes {
			returns = append(returns, domain.AssetReturn{
				Symbol: symbol,
				Return: change,
				Date:   prices[i+1].Date,
			})
		}
	}

	out, err := pivot(returns)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Infof("loaded prices for %d symbols, %d return timesteps", out.NumCompanies(), out.NumTimesteps())
	return out, nil
}

// requireEveryDate fails unless every symbol has a price on every
// date seen in the file
func requireEveryDate(pricesBySymbol map[string][]domain.AssetPrice) error {
	dateSet := map[time.Time]struct{}{}
	for _, prices := range pricesBySymbol {
		for _, p := range prices {
			dateSet[p.Date] = struct{}{}
		}
	}
	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})

	symbols := make([]string, 0, len(pricesBySymbol))
	for symbol := range pricesBySymbol {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	for _, symbol := range symbols {
		held := map[time.Time]struct{}{}
		for _, p := range pricesBySymbol[symbol] {
			held[p.Date] = struct{}{}
		}
		for _, date := range dates {
			if _, ok := held[date]; !ok {
				return fmt.Errorf("missing price for %s on %s", symbol, date.Format(time.DateOnly))
			}
		}
	}

	return nil
}

// PercentChanges sorts prices by date and returns the fractional
// change from each price to the next
func PercentChanges(prices []domain.AssetPrice) ([]float64, error) {
	if len(prices) < 2 {
		return nil, fmt.Errorf("need at least 2 prices to compute a return, got %d", len(prices))
	}
	sort.Slice(prices, func(i, j int) bool {
		return prices[i].Date.Before(prices[j].Date)
	})

	out := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		last := prices[i-1]
		if last.Date.Equal(prices[i].Date) {
			return nil, fmt.Errorf("duplicate price on %s", last.Date.Format(time.DateOnly))
		}
		if last.Price.IsZero() {
			return nil, fmt.Errorf("cannot compute return from zero price on %s", last.Date.Format(time.DateOnly))
		}
		out = append(out, prices[i].Price.Sub(last.Price).Div(last.Price).InexactFloat64())
	}

	return out, nil
}

type cellKey struct {
	symbol string
	date   time.Time
}

// pivot lays returns out as symbols (ascending) x dates (ascending)
func pivot(returns []domain.AssetReturn) (*domain.ReturnMatrix, error) {
	if len(returns) == 0 {
		return nil, fmt.Errorf("no returns found")
	}

	cells := map[cellKey]float64{}
	symbolSet := map[string]struct{}{}
	dateSet := map[time.Time]struct{}{}
	for _, r := range returns {
		key := cellKey{symbol: r.Symbol, date: r.Date}
		if _, ok := cells[key]; ok {
			return nil, fmt.Errorf("duplicate return for %s on %s", r.Symbol, r.Date.Format(time.DateOnly))
		}
		cells[key] = r.Return
		symbolSet[r.Symbol] = struct{}{}
		dateSet[r.Date] = struct{}{}
	}

	symbols := make([]string, 0, len(symbolSet))
	for s := range symbolSet {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})

	grid := mat.NewDense(len(symbols), len(dates), nil)
	for i, symbol := range symbols {
		for t, date := range dates {
			value, ok := cells[cellKey{symbol: symbol, date: date}]
			if !ok {
				return nil, fmt.Errorf("missing return for %s on %s", symbol, date.Format(time.DateOnly))
			}
			grid.Set(i, t, value)
		}
	}

	return &domain.ReturnMatrix{
		Symbols: symbols,
		Dates:   dates,
		Returns: grid,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	date, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return date, nil
}

// HasNonFinite reports whether any loaded return is NaN or infinite
func HasNonFinite(m *domain.ReturnMatrix) bool {
	rows, cols := m.Returns.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := m.Returns.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return true
			}
		}
	}
	return false
}
