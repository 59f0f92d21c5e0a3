package domain

import (
	"math/big"
	"time"
)

// Distribution is one administrator-funded dividend round. The eligible
// snapshot is captured once at creation and never changes afterwards; the
// record itself only moves ClaimedAmount forward. A recovered distribution
// keeps its row for history but has Exists cleared and accepts no claims.
type Distribution struct {
	ID            uint64    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	TotalAmount   *big.Int  `json:"total_amount"`
	EligibleTotal *big.Int  `json:"eligible_total"`
	ClaimedAmount *big.Int  `json:"claimed_amount"`
	Exists        bool      `json:"exists"`
}

// Share computes the pro-rata share for an eligible amount, rounding down.
// The sum of all floored shares never exceeds TotalAmount; the rounding
// remainder stays in the reserve until it is recovered.
func (d *Distribution) Share(eligible *big.Int) *big.Int {
	if d.EligibleTotal.Sign() == 0 {
		return new(big.Int)
	}
	share := new(big.Int).Mul(eligible, d.TotalAmount)
	return share.Quo(share, d.EligibleTotal)
}

// Undistributed returns the amount still claimable or recoverable.
func (d *Distribution) Undistributed() *big.Int {
	return new(big.Int).Sub(d.TotalAmount, d.ClaimedAmount)
}

// RecoverableAt reports whether the mandatory waiting period after creation
// has elapsed, so the administrator may reclaim the remainder.
func (d *Distribution) RecoverableAt(now time.Time, wait time.Duration) bool {
	return !now.Before(d.CreatedAt.Add(wait))
}
