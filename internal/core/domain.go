package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Deal is a single recorded transaction. Non-negative values are assets,
// negative values are liabilities.
type Deal struct {
	ID       int64
	Date     string
	Value    decimal.Decimal
	Category string
	Comment  string
}

// Categories is the closed set of labels offered by the add form, in display order.
var Categories = []string{
	"Clothing",
	"Donation",
	"Education",
	"Food",
	"Healthcare",
	"Housing",
	"Income",
	"Insurance",
	"Loans",
	"Others",
	"Personals",
	"Recreation",
	"Retirement",
	"Supplies",
	"Transportation",
	"Utilities",
}

var (
	ErrEmptyAmount     = errors.New("empty amount")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidID       = errors.New("invalid id")
)

// IsCategory reports whether name is one of Categories. Matching is exact after trimming.
func IsCategory(name string) bool {
	name = strings.TrimSpace(name)
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// IsAsset reports whether the deal counts towards assets.
func (d Deal) IsAsset() bool {
	return !d.Value.IsNegative()
}

// Validate checks the fields the UI boundary enforces. Stores never call it.
func (d Deal) Validate() error {
	if !IsCategory(d.Category) {
		return ErrUnknownCategory
	}
	return nil
}
