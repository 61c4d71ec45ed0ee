package domain

import (
	"fmt"
	"strings"
	"time"

	"gonum.org/v1/gonum/mat"
)

// NoPick marks a timestep where a strategy holds nothing,
// typically one that is skipped anyway
const NoPick = "-"

// ReturnMatrix is a labelled grid of fractional returns. row i
// belongs to Symbols[i] and column t to Dates[t]
type ReturnMatrix struct {
	Symbols []string
	Dates   []time.Time
	Returns *mat.Dense
}

func (r ReturnMatrix) NumCompanies() int {
	return len(r.Symbols)
}

func (r ReturnMatrix) NumTimesteps() int {
	return len(r.Dates)
}

func (r ReturnMatrix) SymbolIndex(symbol string) (int, error) {
	for i, s := range r.Symbols {
		if s == symbol {
			return i, nil
		}
	}
	return -1, fmt.Errorf("symbol %s not in return matrix", symbol)
}

// PicksFromSymbols converts one symbol per timestep into row
// indices. NoPick or an empty string becomes -1
func (r ReturnMatrix) PicksFromSymbols(symbols []string) ([]int, error) {
	if len(symbols) != r.NumTimesteps() {
		return nil, fmt.Errorf("expected %d picks, got %d", r.NumTimesteps(), len(symbols))
	}
	picks := make([]int, len(symbols))
	for t, symbol := range symbols {
		symbol = strings.TrimSpace(symbol)
		if symbol == "" || symbol == NoPick {
			picks[t] = -1
			continue
		}
		i, err := r.SymbolIndex(symbol)
		if err != nil {
			return nil, fmt.Errorf("invalid pick on %s: %w", r.Dates[t].Format(time.DateOnly), err)
		}
		picks[t] = i
	}
	return picks, nil
}
