package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AssetPrice struct {
	Symbol string
	Price  decimal.Decimal
	Date   time.Time
}

type AssetReturn struct {
	Symbol string
	Return float64
	Date   time.Time
}
