package repository

import (
	"database/sql"
	"math/big"

	"staking/domain"

	"github.com/behrang/sqlbatch"
	"github.com/ethereum/go-ethereum/common"
)

const (
	sqlAccountFind = `
	select
		balance
	from accounts
	where currency = $1 and address = $2
`

	sqlAccountCredit = `
	insert into accounts as c (
			currency, address, balance
		)
		values (
			$1, $2, $3::numeric
		)
	on conflict (currency, address) do
		update set
			balance = c.balance + excluded.balance
`

	sqlAccountDebit = `
	update accounts
		set balance = balance - $3::numeric
	where currency = $1 and address = $2
`
)

// AccountBook keeps the custodial balance books, one row per currency and
// address.
type AccountBook struct {
	tx *sql.Tx
}

func (book *AccountBook) BalanceOf(currency domain.Currency, account common.Address) (*big.Int, error) {
	results, err := sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query:   sqlAccountFind,
			Args:    []interface{}{string(currency), account.Hex()},
			Init:    make([]string, 0),
			ReadAll: readAllValues,
		},
	})
	if err != nil {
		return nil, err
	}

	list, _ := results[0].([]string)
	if len(list) == 0 {
		return new(big.Int), nil
	}
	return bigFromString(list[0]), nil
}

func (book *AccountBook) Transfer(currency domain.Currency, from common.Address, to common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() == 0 {
		return nil
	}

	balance, err := book.BalanceOf(currency, from)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return domain.ErrorInsufficientFunds
	}

	_, err = sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query:  sqlAccountDebit,
			Args:   []interface{}{string(currency), from.Hex(), amount.String()},
			Affect: 1,
		},
		{
			Query:  sqlAccountCredit,
			Args:   []interface{}{string(currency), to.Hex(), amount.String()},
			Affect: 1,
		},
	})
	return err
}

func (book *AccountBook) Credit(currency domain.Currency, account common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() == 0 {
		return nil
	}

	_, err := sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query:  sqlAccountCredit,
			Args:   []interface{}{string(currency), account.Hex(), amount.String()},
			Affect: 1,
		},
	})
	return err
}

func (book *AccountBook) Debit(currency domain.Currency, account common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() == 0 {
		return nil
	}

	balance, err := book.BalanceOf(currency, account)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return domain.ErrorInsufficientFunds
	}

	_, err = sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query:  sqlAccountDebit,
			Args:   []interface{}{string(currency), account.Hex(), amount.String()},
			Affect: 1,
		},
	})
	return err
}
