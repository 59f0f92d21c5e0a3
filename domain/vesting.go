package domain

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// VestingSchedule is a linear vesting grant of the principal token with a
// cliff. One schedule per beneficiary; the granted amount sits in the
// vesting escrow book until released.
type VestingSchedule struct {
	Beneficiary common.Address `json:"beneficiary"`
	Total       *big.Int       `json:"total"`
	Released    *big.Int       `json:"released"`
	StartTime   time.Time      `json:"start_time"`
	Cliff       time.Duration  `json:"cliff"`
	Duration    time.Duration  `json:"duration"`
}

// VestedAt returns the amount vested by the given time: zero before the
// cliff, then linear in elapsed time, the full total after the duration.
func (s *VestingSchedule) VestedAt(now time.Time) *big.Int {
	if now.Before(s.StartTime.Add(s.Cliff)) {
		return new(big.Int)
	}
	elapsed := now.Sub(s.StartTime)
	if elapsed >= s.Duration {
		return new(big.Int).Set(s.Total)
	}
	vested := new(big.Int).Mul(s.Total, big.NewInt(elapsed.Nanoseconds()))
	return vested.Quo(vested, big.NewInt(s.Duration.Nanoseconds()))
}

// ReleasableAt returns the vested amount not yet paid out.
func (s *VestingSchedule) ReleasableAt(now time.Time) *big.Int {
	releasable := s.VestedAt(now)
	releasable.Sub(releasable, s.Released)
	if releasable.Sign() < 0 {
		return new(big.Int)
	}
	return releasable
}

// Locked returns the granted amount still held in escrow.
func (s *VestingSchedule) Locked() *big.Int {
	return new(big.Int).Sub(s.Total, s.Released)
}
