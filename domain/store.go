package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Store runs ledger transactions. Execute is the only mutating entry point:
// either every write inside fn lands, or none does. View runs read-only.
//
// The postgres store maps Execute onto one serializable database
// transaction; the in-memory store mutates a copy of the state and swaps it
// in on commit. Either way an operation never observes, or leaves behind, a
// partially applied effect.
type Store interface {
	Execute(fn func(Tx) error) error
	View(fn func(Tx) error) error
}

// Tx exposes the ledger's books for the duration of one transaction.
type Tx interface {
	Positions() PositionBook
	Registry() RegistryBook
	Distributions() DistributionBook
	Accounts() AccountBook
	Params() ParamBook
	Vesting() VestingBook
	Journal() JournalBook
}

// PositionBook keeps the append-only per-user stake lists.
type PositionBook interface {
	// Append adds a position to the user's list and returns its index.
	Append(user common.Address, position *StakePosition) (int, error)
	// Get fails with ErrorInvalidIndex when the index is out of range.
	Get(user common.Address, index int) (*StakePosition, error)
	ListOf(user common.Address) ([]*StakePosition, error)
	// MarkWithdrawn flips the withdrawn flag, the single mutation a
	// position ever receives.
	MarkWithdrawn(user common.Address, index int) error
	// ActivePrincipalOf sums the user's non-withdrawn principals.
	ActivePrincipalOf(user common.Address) (*big.Int, error)
}

// RegistryBook is the active-staker set: an address is a member iff its
// aggregate non-withdrawn principal is above zero. Membership is maintained
// by the stake operations, not by the book itself. Removal is
// swap-with-last so the set stays dense and O(1).
type RegistryBook interface {
	Add(user common.Address) error
	Remove(user common.Address) error
	Contains(user common.Address) (bool, error)
	Count() (int, error)
	// List returns the members in slot order.
	List() ([]common.Address, error)
}

// DistributionBook keeps dividend rounds, their immutable per-user eligible
// snapshots and the write-once claimed flags.
type DistributionBook interface {
	// NextID advances the monotonic 1-based distribution counter.
	NextID() (uint64, error)
	Insert(d *Distribution) error
	// Get returns nil for an id that was never created.
	Get(id uint64) (*Distribution, error)
	Update(d *Distribution) error
	List() ([]*Distribution, error)
	SetEligible(id uint64, user common.Address, amount *big.Int) error
	// EligibleOf returns zero for a user without a snapshot entry.
	EligibleOf(id uint64, user common.Address) (*big.Int, error)
	MarkClaimed(id uint64, user common.Address) error
	HasClaimed(id uint64, user common.Address) (bool, error)
}

// AccountBook keeps the custodial balance books, one per currency. Credit
// and Debit move value across the custody boundary; Transfer moves it
// between accounts inside it.
type AccountBook interface {
	BalanceOf(currency Currency, account common.Address) (*big.Int, error)
	// Transfer fails with ErrorInsufficientFunds when the source balance
	// does not cover the amount.
	Transfer(currency Currency, from, to common.Address, amount *big.Int) error
	Credit(currency Currency, account common.Address, amount *big.Int) error
	// Debit fails with ErrorInsufficientFunds when the balance does not
	// cover the amount.
	Debit(currency Currency, account common.Address, amount *big.Int) error
}

// ParamBook keeps the configurable parameters and the global accounting
// counters. The counters are the quantities the conservation checks read;
// the Add* methods are their only write path.
type ParamBook interface {
	Rate() (*big.Int, error)
	SetRate(rate *big.Int) error
	MinimumStake() (*big.Int, error)
	SetMinimumStake(amount *big.Int) error
	// Plan fails with ErrorInvalidPlan for an id outside 1..PlanCount.
	Plan(id uint8) (*Plan, error)
	SetPlan(id uint8, plan *Plan) error

	TotalStaked() (*big.Int, error)
	AddTotalStaked(delta *big.Int) error
	InterestReserve() (*big.Int, error)
	AddInterestReserve(delta *big.Int) error
	DistributionReserve() (*big.Int, error)
	AddDistributionReserve(delta *big.Int) error
}

// VestingBook keeps one linear vesting schedule per beneficiary.
type VestingBook interface {
	// Get returns nil for a beneficiary without a schedule.
	Get(beneficiary common.Address) (*VestingSchedule, error)
	Insert(s *VestingSchedule) error
	Update(s *VestingSchedule) error
	List() ([]*VestingSchedule, error)
}

// JournalBook is the append-only operation log.
type JournalBook interface {
	Append(e *JournalEntry) error
	// Recent returns the newest entries, newest first.
	Recent(limit int) ([]*JournalEntry, error)
}
