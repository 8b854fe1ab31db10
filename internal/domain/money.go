package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FormatMinorUnits renders a minor-unit amount as the platform's two-decimal money string
func FormatMinorUnits(amount int64) string {
	return decimal.New(amount, -2).StringFixed(2)
}

// ParseMinorUnits converts a money string such as "20.50" into minor units
func ParseMinorUnits(amount string) (int64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return d.Shift(2).Round(0).IntPart(), nil
}
