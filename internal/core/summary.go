package core

import "github.com/shopspring/decimal"

// Summary holds the three totals shown at the top of the page. It is
// recomputed from the full deal set on every render and never stored.
type Summary struct {
	Assets      decimal.Decimal
	Liabilities decimal.Decimal // always <= 0
	Net         decimal.Decimal
}

// Summarize partitions deals by sign and sums each bucket.
func Summarize(deals []Deal) Summary {
	assets := decimal.Zero
	liabilities := decimal.Zero
	for _, d := range deals {
		if d.IsAsset() {
			assets = assets.Add(d.Value)
		} else {
			liabilities = liabilities.Add(d.Value)
		}
	}
	return Summary{
		Assets:      assets,
		Liabilities: liabilities,
		Net:         assets.Add(liabilities),
	}
}

// NetNegative reports whether net worth is below zero.
func (s Summary) NetNegative() bool {
	return s.Net.IsNegative()
}
