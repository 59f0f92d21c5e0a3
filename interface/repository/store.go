package repository

import (
	"database/sql"
	"math/big"
	"time"

	"staking/domain"

	"github.com/behrang/sqlbatch"
)

// Store is the PostgreSQL ledger store. Execute maps a ledger transaction
// onto one serializable database transaction, so the retry loop in the
// handler is what resolves concurrent operations.
type Store struct {
	handler RunHandler
}

func NewStore(db RunHandler) *Store {
	return &Store{handler: db}
}

func (store *Store) Execute(fn func(tx domain.Tx) error) error {
	return store.handler.Run(&BatchOptionSerializable, func(tx *sql.Tx) error {
		return fn(&Ledger{tx: tx})
	})
}

func (store *Store) View(fn func(tx domain.Tx) error) error {
	return store.handler.Run(&BatchOptionSerializableReadOnly, func(tx *sql.Tx) error {
		return fn(&Ledger{tx: tx})
	})
}

// Ledger exposes the ledger's books bound to one open transaction.
type Ledger struct {
	tx *sql.Tx
}

func (ledger *Ledger) Positions() domain.PositionBook {
	return &PositionBook{tx: ledger.tx}
}

func (ledger *Ledger) Registry() domain.RegistryBook {
	return &RegistryBook{tx: ledger.tx}
}

func (ledger *Ledger) Distributions() domain.DistributionBook {
	return &DistributionBook{tx: ledger.tx}
}

func (ledger *Ledger) Accounts() domain.AccountBook {
	return &AccountBook{tx: ledger.tx}
}

func (ledger *Ledger) Params() domain.ParamBook {
	return &ParamBook{tx: ledger.tx}
}

func (ledger *Ledger) Vesting() domain.VestingBook {
	return &VestingBook{tx: ledger.tx}
}

func (ledger *Ledger) Journal() domain.JournalBook {
	return &JournalBook{tx: ledger.tx}
}

var schemaStatements = []string{
	`
	create table if not exists positions (
		address text not null,
		idx integer not null,
		principal numeric(78,0) not null,
		start_time timestamptz not null,
		duration_seconds bigint not null,
		apy integer not null,
		interest numeric(78,0) not null,
		withdrawn boolean not null default false,
		primary key (address, idx)
	)
`,
	`
	create table if not exists registry (
		slot integer primary key,
		address text not null unique
	)
`,
	`
	create table if not exists distributions (
		id bigint primary key,
		created_at timestamptz not null,
		total_amount numeric(78,0) not null,
		eligible_total numeric(78,0) not null,
		claimed_amount numeric(78,0) not null,
		present boolean not null default true
	)
`,
	`
	create table if not exists distribution_snapshots (
		distribution_id bigint not null,
		address text not null,
		eligible numeric(78,0) not null,
		claimed boolean not null default false,
		primary key (distribution_id, address)
	)
`,
	`
	create table if not exists accounts (
		currency text not null,
		address text not null,
		balance numeric(78,0) not null,
		primary key (currency, address)
	)
`,
	`
	create table if not exists params (
		key text primary key,
		value text not null
	)
`,
	`
	create table if not exists vestings (
		beneficiary text primary key,
		total numeric(78,0) not null,
		released numeric(78,0) not null,
		start_time timestamptz not null,
		cliff_nanos bigint not null,
		duration_nanos bigint not null
	)
`,
	`
	create table if not exists journal (
		id bigserial primary key,
		op text not null,
		actor text not null,
		reference text not null,
		amount numeric(78,0) not null,
		note text not null,
		created_at timestamptz not null
	)
`,
}

// Bootstrap creates the schema and seeds the configured parameter defaults.
// Seeding happens once; a bootstrap marker written with the first seed keeps
// later starts from overwriting parameters an administrator has adjusted.
func (store *Store) Bootstrap(rate *big.Int, minimumStake *big.Int, plans [domain.PlanCount]domain.Plan) error {

	err := store.handler.Run(&BatchOptionNormal, func(tx *sql.Tx) error {
		for _, statement := range schemaStatements {
			if _, err := tx.Exec(statement); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return store.handler.Run(&BatchOptionSerializable, func(tx *sql.Tx) error {
		book := &ParamBook{tx: tx}

		bootstrapped, err := book.value(paramBootstrapTime)
		if err != nil {
			return err
		}
		if bootstrapped != "" {
			return nil
		}

		commands := []sqlbatch.Command{
			upsertParam(paramExchangeRate, rate.String()),
			upsertParam(paramMinimumStake, minimumStake.String()),
			upsertParam(paramTotalStaked, "0"),
			upsertParam(paramInterestReserve, "0"),
			upsertParam(paramDistributionReserve, "0"),
			upsertParam(paramDistributionCounter, "0"),
			upsertParam(paramBootstrapTime, time.Now().UTC().Format(time.RFC3339)),
		}
		for id := 1; id <= domain.PlanCount; id++ {
			plan := plans[id-1]
			commands = append(commands,
				upsertParam(planAPYKey(id), new(big.Int).SetUint64(uint64(plan.APY)).String()),
				upsertParam(planDurationKey(id), new(big.Int).SetInt64(int64(plan.Duration/time.Second)).String()),
			)
		}

		_, err = sqlbatch.Batch(tx, commands)
		return err
	})
}

func bigFromString(value string) *big.Int {
	number, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return new(big.Int)
	}
	return number
}
