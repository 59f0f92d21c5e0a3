package domain

import (
	"math/big"
	"time"
)

const (
	// BasisPointDivisor converts basis points into a fraction.
	BasisPointDivisor = 10_000

	// RateScale is the fixed-point scale of the exchange rate: the rate is
	// the number of settlement base units paid per one whole principal
	// token, multiplied by 10^18.
	RateScale = 1e18
)

var (
	secondsPerYear = big.NewInt(365 * 24 * 60 * 60)
	bpsDivisor     = big.NewInt(BasisPointDivisor)
	rateScale      = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
)

// Interest accrues linear interest in principal base units, rounding down.
//
//	interest = principal * apy * elapsed / (365 days * 10000)
//
// There is no compounding; accrual stops at the plan duration, which the
// caller expresses through elapsed.
func Interest(principal *big.Int, apyBps uint32, elapsed time.Duration) *big.Int {
	interest := new(big.Int).Mul(principal, big.NewInt(int64(apyBps)))
	interest.Mul(interest, big.NewInt(int64(elapsed/time.Second)))
	interest.Quo(interest, secondsPerYear)
	return interest.Quo(interest, bpsDivisor)
}

// Convert scales a principal-currency amount into settlement base units.
// The rate is the number of whole settlement units per one whole principal
// token, fixed-point scaled by 10^18, so both currencies' decimals adjust:
//
//	settlement = amount * rate * 10^settlementDecimals / (10^principalDecimals * 10^18)
//
// A zero rate is rejected with ErrorInvalidRate.
func Convert(amount, rate *big.Int, principalDecimals, settlementDecimals uint8) (*big.Int, error) {
	if rate == nil || rate.Sign() == 0 {
		return nil, ErrorInvalidRate
	}
	out := new(big.Int).Mul(amount, rate)
	out.Mul(out, Pow10(settlementDecimals))
	out.Quo(out, Pow10(principalDecimals))
	return out.Quo(out, rateScale), nil
}

// Pow10 returns 10^decimals as a big integer.
func Pow10(decimals uint8) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
}
