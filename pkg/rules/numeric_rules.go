package rules

import (
	"math"
	"strconv"
)

// Positive fails for zero, negative and NaN amounts.
func Positive(amount float64) error {
	if !(amount > 0) {
		return violation("positive", ErrOutOfRange, "must be greater than zero",
			map[string]any{"value": amount})
	}
	return nil
}

// NonNegative fails for negative and NaN amounts.
func NonNegative(amount float64) error {
	if !(amount >= 0) {
		return violation("non_negative", ErrOutOfRange, "must not be negative",
			map[string]any{"value": amount})
	}
	return nil
}

// InRange checks min <= value <= max.
func InRange(value, minValue, maxValue float64) error {
	if !(value >= minValue && value <= maxValue) {
		return violation("in_range", ErrOutOfRange,
			"must be between "+formatFloat(minValue)+" and "+formatFloat(maxValue),
			map[string]any{"value": value, "min": minValue, "max": maxValue})
	}
	return nil
}

// DecimalPrecision fails when value has more than decimals fractional digits.
func DecimalPrecision(value float64, decimals int) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return violation("decimal_precision", ErrInvalidValue, "must be a finite number",
			map[string]any{"value": value})
	}
	scaled := value * math.Pow10(decimals)
	if math.Abs(scaled-math.Round(scaled)) > 1e-9*math.Max(1, math.Abs(scaled)) {
		return violation("decimal_precision", ErrInvalidFormat, "has too many decimal places",
			map[string]any{"value": value, "decimals": decimals})
	}
	return nil
}

// Percentage checks 0 <= value <= 100.
func Percentage(value float64) error {
	if !(value >= 0 && value <= 100) {
		return violation("percentage", ErrOutOfRange, "must be between 0 and 100",
			map[string]any{"value": value})
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
