package util

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// RateDecimals is the fixed-point scale of exchange rates.
const RateDecimals = 18

var (
	ErrorInvalidNumber  = fmt.Errorf("not a valid decimal number")
	ErrorNegativeNumber = fmt.Errorf("negative numbers are not acceptable")
	ErrorTooPrecise     = fmt.Errorf("more fractional digits than the token supports")
)

// ParseAmount converts a human amount like "1,250.75" into token base units.
func ParseAmount(value string, decimals uint8) (*big.Int, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(value), ",", "")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return nil, ErrorInvalidNumber
	}
	if d.IsNegative() {
		return nil, ErrorNegativeNumber
	}

	shifted := d.Shift(int32(decimals))
	if !shifted.IsInteger() {
		return nil, ErrorTooPrecise
	}

	return shifted.BigInt(), nil
}

// ParseRate converts a human exchange rate like "1.05" into its fixed-point
// representation.
func ParseRate(value string) (*big.Int, error) {
	return ParseAmount(value, RateDecimals)
}

func FormatAmount(amount *big.Int, decimals uint8) string {
	if amount == nil {
		amount = new(big.Int)
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)

	value := new(big.Float).SetPrec(256).SetInt(amount)
	value.Quo(value, new(big.Float).SetPrec(256).SetInt(scale))

	return humanize.BigCommaf(value)
}

func FormatRate(rate *big.Int) string {
	if rate == nil {
		rate = new(big.Int)
	}
	return decimal.NewFromBigInt(rate, -RateDecimals).String()
}

func AmountString(amount *big.Int, decimals uint8, symbol string) string {
	return fmt.Sprintf("%v %v", FormatAmount(amount, decimals), symbol)
}
