package repository

import (
	"database/sql"
	"fmt"
	"math/big"
	"time"

	"staking/domain"

	"github.com/behrang/sqlbatch"
)

const (
	paramExchangeRate        = "exchange_rate"
	paramMinimumStake        = "minimum_stake"
	paramTotalStaked         = "total_staked"
	paramInterestReserve     = "interest_reserve"
	paramDistributionReserve = "distribution_reserve"
	paramDistributionCounter = "distribution_counter"
	paramBootstrapTime       = "bootstrap_time"
)

const (
	sqlParamUpsert = `
	insert into params as c (
			key, value
		)
		values (
			$1, $2
		)
	on conflict (key) do
		update set
			value = $2
`

	sqlParamAdd = `
	insert into params as c (
			key, value
		)
		values (
			$1, $2
		)
	on conflict (key) do
		update set
			value = ((c.value)::numeric + ($2)::numeric)::text
`

	sqlParamFind = `
	select
		value
	from params
	where key = $1
`
)

func planAPYKey(id int) string {
	return fmt.Sprintf("plan_%d_apy", id)
}

func planDurationKey(id int) string {
	return fmt.Sprintf("plan_%d_duration_seconds", id)
}

func upsertParam(key string, value string) sqlbatch.Command {
	return sqlbatch.Command{
		Query:  sqlParamUpsert,
		Args:   []interface{}{key, value},
		Affect: 1,
	}
}

func readAllValues(memo interface{}, scan func(...interface{}) error) (interface{}, error) {
	var value string
	err := scan(&value)

	list := memo.([]string)
	if err != nil {
		return list, err
	}
	return append(list, value), nil
}

// ParamBook keeps the configurable parameters and the global accounting
// counters as key/value rows.
type ParamBook struct {
	tx *sql.Tx
}

// value returns the raw stored value, or an empty string for a missing key.
func (book *ParamBook) value(key string) (string, error) {
	results, err := sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query:   sqlParamFind,
			Args:    []interface{}{key},
			Init:    make([]string, 0),
			ReadAll: readAllValues,
		},
	})
	if err != nil {
		return "", err
	}

	list, _ := results[0].([]string)
	if len(list) == 0 {
		return "", nil
	}
	return list[0], nil
}

func (book *ParamBook) number(key string) (*big.Int, error) {
	value, err := book.value(key)
	if err != nil {
		return nil, err
	}
	return bigFromString(value), nil
}

func (book *ParamBook) set(key string, value string) error {
	_, err := sqlbatch.Batch(book.tx, []sqlbatch.Command{upsertParam(key, value)})
	return err
}

func (book *ParamBook) add(key string, delta *big.Int) error {
	if delta == nil || delta.Sign() == 0 {
		return nil
	}
	_, err := sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query:  sqlParamAdd,
			Args:   []interface{}{key, delta.String()},
			Affect: 1,
		},
	})
	return err
}

func (book *ParamBook) Rate() (*big.Int, error) {
	return book.number(paramExchangeRate)
}

func (book *ParamBook) SetRate(rate *big.Int) error {
	return book.set(paramExchangeRate, rate.String())
}

func (book *ParamBook) MinimumStake() (*big.Int, error) {
	return book.number(paramMinimumStake)
}

func (book *ParamBook) SetMinimumStake(amount *big.Int) error {
	return book.set(paramMinimumStake, amount.String())
}

func (book *ParamBook) Plan(id uint8) (*domain.Plan, error) {
	if id < 1 || id > domain.PlanCount {
		return nil, domain.ErrorInvalidPlan
	}

	apy, err := book.value(planAPYKey(int(id)))
	if err != nil {
		return nil, err
	}
	seconds, err := book.value(planDurationKey(int(id)))
	if err != nil {
		return nil, err
	}
	if apy == "" || seconds == "" {
		return nil, domain.ErrorInvalidPlan
	}

	return &domain.Plan{
		APY:      uint32(bigFromString(apy).Uint64()),
		Duration: time.Duration(bigFromString(seconds).Int64()) * time.Second,
	}, nil
}

func (book *ParamBook) SetPlan(id uint8, plan *domain.Plan) error {
	if id < 1 || id > domain.PlanCount {
		return domain.ErrorInvalidPlan
	}

	_, err := sqlbatch.Batch(book.tx, []sqlbatch.Command{
		upsertParam(planAPYKey(int(id)), new(big.Int).SetUint64(uint64(plan.APY)).String()),
		upsertParam(planDurationKey(int(id)), new(big.Int).SetInt64(int64(plan.Duration/time.Second)).String()),
	})
	return err
}

func (book *ParamBook) TotalStaked() (*big.Int, error) {
	return book.number(paramTotalStaked)
}

func (book *ParamBook) AddTotalStaked(delta *big.Int) error {
	return book.add(paramTotalStaked, delta)
}

func (book *ParamBook) InterestReserve() (*big.Int, error) {
	return book.number(paramInterestReserve)
}

func (book *ParamBook) AddInterestReserve(delta *big.Int) error {
	return book.add(paramInterestReserve, delta)
}

func (book *ParamBook) DistributionReserve() (*big.Int, error) {
	return book.number(paramDistributionReserve)
}

func (book *ParamBook) AddDistributionReserve(delta *big.Int) error {
	return book.add(paramDistributionReserve, delta)
}
