package usecase

import (
	"math/big"
	"os"
	"testing"
	"time"

	"staking/domain"
	"staking/domain/util"
	"staking/infrastructure/memstore"
	"staking/interface/exporter"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	exporter.Init()
	os.Exit(m.Run())
}

var (
	adminAddr    = common.HexToAddress("0x00000000000000000000000000000000000000Aa")
	treasuryAddr = common.HexToAddress("0x00000000000000000000000000000000000000bB")
	alice        = common.HexToAddress("0x0000000000000000000000000000000000000a11")
	bob          = common.HexToAddress("0x0000000000000000000000000000000000000B22")
	carol        = common.HexToAddress("0x0000000000000000000000000000000000000C33")
)

const (
	testDividendLock = 30 * 24 * time.Hour
	testRecoveryWait = 60 * 24 * time.Hour
)

func tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), domain.Pow10(18))
}

func parseRate(t *testing.T, value string) *big.Int {
	t.Helper()
	rate, err := util.ParseRate(value)
	require.NoError(t, err)
	return rate
}

func testPlans() [domain.PlanCount]domain.Plan {
	return [domain.PlanCount]domain.Plan{
		{APY: 497, Duration: 30 * 24 * time.Hour},
		{APY: 697, Duration: 60 * 24 * time.Hour},
		{APY: 897, Duration: 90 * 24 * time.Hour},
		{APY: 1097, Duration: 180 * 24 * time.Hour},
	}
}

// fixture wires every interactor against a bootstrapped in-memory store
// with a controllable clock.
type fixture struct {
	store *memstore.Store
	now   time.Time

	stake        *StakeInteractor
	distribution *DistributionInteractor
	treasury     *TreasuryInteractor
	admin        *AdminInteractor
	vesting      *VestingInteractor
	governance   *GovernanceInteractor
	statistic    *StatisticInteractor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New()
	err := store.Bootstrap(parseRate(t, "1.0"), tokens(1), testPlans())
	require.NoError(t, err)

	fix := &fixture{
		store: store,
		now:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return fix.now }

	guard := NewGuard()
	fix.stake = NewStakeInteractor(store, guard, treasuryAddr, 18, 18)
	fix.stake.clock = clock
	fix.distribution = NewDistributionInteractor(store, guard, adminAddr, treasuryAddr,
		testDividendLock, testRecoveryWait)
	fix.distribution.clock = clock
	fix.treasury = NewTreasuryInteractor(store, guard, adminAddr, treasuryAddr, nil, nil)
	fix.treasury.clock = clock
	fix.admin = NewAdminInteractor(store, guard, adminAddr)
	fix.admin.clock = clock
	fix.vesting = NewVestingInteractor(store, guard, adminAddr, treasuryAddr)
	fix.vesting.clock = clock
	fix.governance = NewGovernanceInteractor(store, tokens(500))
	fix.statistic = NewStatisticInteractor(store, treasuryAddr)

	return fix
}

func (fix *fixture) advance(d time.Duration) {
	fix.now = fix.now.Add(d)
}

func (fix *fixture) fund(t *testing.T, currency domain.Currency, account common.Address, amount *big.Int) {
	t.Helper()
	err := fix.store.Execute(func(tx domain.Tx) error {
		return tx.Accounts().Credit(currency, account, amount)
	})
	require.NoError(t, err)
}

func (fix *fixture) balance(t *testing.T, currency domain.Currency, account common.Address) *big.Int {
	t.Helper()
	var balance *big.Int
	err := fix.store.View(func(tx domain.Tx) error {
		var err error
		balance, err = tx.Accounts().BalanceOf(currency, account)
		return err
	})
	require.NoError(t, err)
	return balance
}

func (fix *fixture) counters(t *testing.T) (staked, interestReserve, distributionReserve *big.Int) {
	t.Helper()
	err := fix.store.View(func(tx domain.Tx) error {
		var err error
		if staked, err = tx.Params().TotalStaked(); err != nil {
			return err
		}
		if interestReserve, err = tx.Params().InterestReserve(); err != nil {
			return err
		}
		distributionReserve, err = tx.Params().DistributionReserve()
		return err
	})
	require.NoError(t, err)
	return staked, interestReserve, distributionReserve
}

func (fix *fixture) isRegistered(t *testing.T, user common.Address) bool {
	t.Helper()
	var registered bool
	err := fix.store.View(func(tx domain.Tx) error {
		var err error
		registered, err = tx.Registry().Contains(user)
		return err
	})
	require.NoError(t, err)
	return registered
}

// assertAmount compares big integers by value, so a zero produced by
// arithmetic matches a fresh zero.
func assertAmount(t *testing.T, expected, actual *big.Int) {
	t.Helper()
	require.NotNil(t, actual)
	assert.Zero(t, expected.Cmp(actual), "expected %v, got %v", expected.String(), actual.String())
}
