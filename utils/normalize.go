package utils

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"nft-market/internal/types"
)

// numberCleaner drops characters that carry no magnitude. The "<" and ">"
// qualifiers are discarded, so "<0.01" reads as 0.01.
var numberCleaner = strings.NewReplacer(
	",", "",
	"<", "",
	">", "",
	"$", "",
	"◎", "",
)

// suffixExpander rewrites magnitude suffixes as an explicit multiplication
var suffixExpander = strings.NewReplacer(
	"k", "*1000",
	"K", "*1000",
	"m", "*1000000",
	"M", "*1000000",
	"B", "*1000000000",
)

var (
	errEmptyNumber    = errors.New("empty numeric expression")
	errTooManyFactors = errors.New("at most one multiplication is allowed")
	errNotFinite      = errors.New("value is not finite")
	errOutOfRange     = errors.New("value out of integer range")
)

// ParseFloat converts human-formatted numeric text such as "$1,234.5K" into a float64
func ParseFloat(text string) (float64, error) {
	cleaned := suffixExpander.Replace(numberCleaner.Replace(strings.TrimSpace(text)))

	value, err := evalProduct(cleaned)
	if err != nil {
		return 0, &types.ParseError{Input: text, Cleaned: cleaned, Err: err}
	}
	return value, nil
}

// ParseInt is ParseFloat truncated toward zero
func ParseInt(text string) (int64, error) {
	f, err := ParseFloat(text)
	if err != nil {
		return 0, err
	}

	t := math.Trunc(f)
	if t >= math.MaxInt64 || t < math.MinInt64 {
		return 0, &types.ParseError{Input: text, Cleaned: strconv.FormatFloat(f, 'f', -1, 64), Err: errOutOfRange}
	}
	return int64(t), nil
}

// evalProduct evaluates "literal" or "literal*literal" and nothing else
func evalProduct(expr string) (float64, error) {
	factors := strings.Split(expr, "*")
	if len(factors) > 2 {
		return 0, errTooManyFactors
	}

	product := 1.0
	for _, factor := range factors {
		factor = strings.TrimSpace(factor)
		if factor == "" {
			return 0, errEmptyNumber
		}

		f, err := strconv.ParseFloat(factor, 64)
		if err != nil {
			return 0, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, errNotFinite
		}
		product *= f
	}

	if math.IsInf(product, 0) {
		return 0, errNotFinite
	}
	return product, nil
}
