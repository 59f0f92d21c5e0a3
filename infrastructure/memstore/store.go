package memstore

import (
	"math/big"
	"sync"

	"staking/domain"

	"github.com/ethereum/go-ethereum/common"
)

// Store is the in-memory ledger store, used as the embedded storage mode and
// as the test double. Execute clones the whole state, runs the transaction
// against the clone and swaps it in only when the transaction returns nil,
// so a failed operation leaves no partial effect behind.
type Store struct {
	mu    sync.RWMutex
	state *state
}

func New() *Store {
	return &Store{state: newState()}
}

func (store *Store) Execute(fn func(tx domain.Tx) error) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	next := store.state.clone()
	if err := fn(&Ledger{state: next}); err != nil {
		return err
	}

	store.state = next
	return nil
}

func (store *Store) View(fn func(tx domain.Tx) error) error {
	store.mu.RLock()
	snapshot := store.state.clone()
	store.mu.RUnlock()

	return fn(&Ledger{state: snapshot})
}

// Bootstrap seeds the configured parameter defaults once. Later calls are
// no-ops so restarts never overwrite parameters an administrator adjusted.
func (store *Store) Bootstrap(rate *big.Int, minimumStake *big.Int, plans [domain.PlanCount]domain.Plan) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.state.bootstrapped {
		return nil
	}

	next := store.state.clone()
	next.rate = cloneBig(rate)
	next.minimumStake = cloneBig(minimumStake)
	for i := range plans {
		plan := plans[i]
		next.plans[i] = &plan
	}
	next.bootstrapped = true

	store.state = next
	return nil
}

// Ledger exposes the ledger's books bound to one transaction's state clone.
type Ledger struct {
	state *state
}

func (ledger *Ledger) Positions() domain.PositionBook {
	return &PositionBook{state: ledger.state}
}

func (ledger *Ledger) Registry() domain.RegistryBook {
	return &RegistryBook{state: ledger.state}
}

func (ledger *Ledger) Distributions() domain.DistributionBook {
	return &DistributionBook{state: ledger.state}
}

func (ledger *Ledger) Accounts() domain.AccountBook {
	return &AccountBook{state: ledger.state}
}

func (ledger *Ledger) Params() domain.ParamBook {
	return &ParamBook{state: ledger.state}
}

func (ledger *Ledger) Vesting() domain.VestingBook {
	return &VestingBook{state: ledger.state}
}

func (ledger *Ledger) Journal() domain.JournalBook {
	return &JournalBook{state: ledger.state}
}

type state struct {
	positions map[common.Address][]*domain.StakePosition

	members []common.Address
	slots   map[common.Address]int

	distributions map[uint64]*domain.Distribution
	snapshots     map[uint64]map[common.Address]*big.Int
	claims        map[uint64]map[common.Address]bool
	counter       uint64

	balances map[domain.Currency]map[common.Address]*big.Int

	rate                *big.Int
	minimumStake        *big.Int
	plans               [domain.PlanCount]*domain.Plan
	totalStaked         *big.Int
	interestReserve     *big.Int
	distributionReserve *big.Int
	bootstrapped        bool

	vestings map[common.Address]*domain.VestingSchedule

	journal   []*domain.JournalEntry
	journalID uint64
}

func newState() *state {
	return &state{
		positions:           make(map[common.Address][]*domain.StakePosition),
		members:             make([]common.Address, 0),
		slots:               make(map[common.Address]int),
		distributions:       make(map[uint64]*domain.Distribution),
		snapshots:           make(map[uint64]map[common.Address]*big.Int),
		claims:              make(map[uint64]map[common.Address]bool),
		balances:            make(map[domain.Currency]map[common.Address]*big.Int),
		rate:                new(big.Int),
		minimumStake:        new(big.Int),
		totalStaked:         new(big.Int),
		interestReserve:     new(big.Int),
		distributionReserve: new(big.Int),
		vestings:            make(map[common.Address]*domain.VestingSchedule),
		journal:             make([]*domain.JournalEntry, 0),
	}
}

func (s *state) clone() *state {
	next := &state{
		positions:           make(map[common.Address][]*domain.StakePosition, len(s.positions)),
		members:             append(make([]common.Address, 0, len(s.members)), s.members...),
		slots:               make(map[common.Address]int, len(s.slots)),
		distributions:       make(map[uint64]*domain.Distribution, len(s.distributions)),
		snapshots:           make(map[uint64]map[common.Address]*big.Int, len(s.snapshots)),
		claims:              make(map[uint64]map[common.Address]bool, len(s.claims)),
		counter:             s.counter,
		balances:            make(map[domain.Currency]map[common.Address]*big.Int, len(s.balances)),
		rate:                cloneBig(s.rate),
		minimumStake:        cloneBig(s.minimumStake),
		totalStaked:         cloneBig(s.totalStaked),
		interestReserve:     cloneBig(s.interestReserve),
		distributionReserve: cloneBig(s.distributionReserve),
		bootstrapped:        s.bootstrapped,
		vestings:            make(map[common.Address]*domain.VestingSchedule, len(s.vestings)),
		journal:             append(make([]*domain.JournalEntry, 0, len(s.journal)), s.journal...),
		journalID:           s.journalID,
	}

	for user, list := range s.positions {
		copied := make([]*domain.StakePosition, len(list))
		for i, position := range list {
			copied[i] = clonePosition(position)
		}
		next.positions[user] = copied
	}

	for user, slot := range s.slots {
		next.slots[user] = slot
	}

	for id, d := range s.distributions {
		next.distributions[id] = cloneDistribution(d)
	}
	for id, snapshot := range s.snapshots {
		copied := make(map[common.Address]*big.Int, len(snapshot))
		for user, eligible := range snapshot {
			copied[user] = cloneBig(eligible)
		}
		next.snapshots[id] = copied
	}
	for id, flags := range s.claims {
		copied := make(map[common.Address]bool, len(flags))
		for user, claimed := range flags {
			copied[user] = claimed
		}
		next.claims[id] = copied
	}

	for currency, book := range s.balances {
		copied := make(map[common.Address]*big.Int, len(book))
		for account, balance := range book {
			copied[account] = cloneBig(balance)
		}
		next.balances[currency] = copied
	}

	for i, plan := range s.plans {
		if plan != nil {
			copied := *plan
			next.plans[i] = &copied
		}
	}

	for beneficiary, schedule := range s.vestings {
		next.vestings[beneficiary] = cloneVesting(schedule)
	}

	return next
}

func cloneBig(value *big.Int) *big.Int {
	if value == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(value)
}

func clonePosition(position *domain.StakePosition) *domain.StakePosition {
	return &domain.StakePosition{
		Principal: cloneBig(position.Principal),
		StartTime: position.StartTime,
		Duration:  position.Duration,
		APY:       position.APY,
		Interest:  cloneBig(position.Interest),
		Withdrawn: position.Withdrawn,
	}
}

func cloneDistribution(d *domain.Distribution) *domain.Distribution {
	return &domain.Distribution{
		ID:            d.ID,
		CreatedAt:     d.CreatedAt,
		TotalAmount:   cloneBig(d.TotalAmount),
		EligibleTotal: cloneBig(d.EligibleTotal),
		ClaimedAmount: cloneBig(d.ClaimedAmount),
		Exists:        d.Exists,
	}
}

func cloneVesting(schedule *domain.VestingSchedule) *domain.VestingSchedule {
	return &domain.VestingSchedule{
		Beneficiary: schedule.Beneficiary,
		Total:       cloneBig(schedule.Total),
		Released:    cloneBig(schedule.Released),
		StartTime:   schedule.StartTime,
		Cliff:       schedule.Cliff,
		Duration:    schedule.Duration,
	}
}
