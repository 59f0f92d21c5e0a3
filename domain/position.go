package domain

import (
	"math/big"
	"time"
)

const (
	PlanCount = 4
)

// Plan is one of the four configurable staking plans. APY is expressed in
// basis points and the duration is fixed at stake-open time.
type Plan struct {
	APY      uint32        `json:"apy"`
	Duration time.Duration `json:"duration"`
}

// StakePosition is a single stake owned by one address. Positions are
// append-only: once withdrawn they stay in the list for history but are
// excluded from every eligibility and interest calculation.
type StakePosition struct {
	Principal *big.Int      `json:"principal"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
	APY       uint32        `json:"apy"`
	Interest  *big.Int      `json:"interest"`
	Withdrawn bool          `json:"withdrawn"`
}

// MaturesAt is the first moment the position may be closed.
func (p *StakePosition) MaturesAt() time.Time {
	return p.StartTime.Add(p.Duration)
}

// IsMature reports whether the position may be closed at the given time.
// Closing exactly at start+duration is allowed.
func (p *StakePosition) IsMature(now time.Time) bool {
	return !now.Before(p.MaturesAt())
}

// ElapsedAt returns the accrual time used by the live interest preview:
// seconds since start, capped at the plan duration.
func (p *StakePosition) ElapsedAt(now time.Time) time.Duration {
	if now.Before(p.StartTime) {
		return 0
	}
	elapsed := now.Sub(p.StartTime)
	if elapsed > p.Duration {
		return p.Duration
	}
	return elapsed
}

// IsEligible reports whether the position counts toward a dividend
// distribution created at the given time. The maturity floor is a fixed
// minimum age, independent of the position's own plan duration.
func (p *StakePosition) IsEligible(now time.Time, dividendLock time.Duration) bool {
	if p.Withdrawn {
		return false
	}
	return !now.Before(p.StartTime.Add(dividendLock))
}
