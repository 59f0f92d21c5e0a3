package memstore

import (
	"math/big"

	"staking/domain"

	"github.com/ethereum/go-ethereum/common"
)

// AccountBook keeps the custodial balance books, one per currency.
type AccountBook struct {
	state *state
}

func (book *AccountBook) balance(currency domain.Currency, account common.Address) *big.Int {
	balances, present := book.state.balances[currency]
	if !present {
		balances = make(map[common.Address]*big.Int)
		book.state.balances[currency] = balances
	}

	balance, present := balances[account]
	if !present {
		balance = new(big.Int)
		balances[account] = balance
	}
	return balance
}

func (book *AccountBook) BalanceOf(currency domain.Currency, account common.Address) (*big.Int, error) {
	return cloneBig(book.balance(currency, account)), nil
}

func (book *AccountBook) Transfer(currency domain.Currency, from common.Address, to common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() == 0 {
		return nil
	}

	source := book.balance(currency, from)
	if source.Cmp(amount) < 0 {
		return domain.ErrorInsufficientFunds
	}

	source.Sub(source, amount)
	target := book.balance(currency, to)
	target.Add(target, amount)
	return nil
}

func (book *AccountBook) Credit(currency domain.Currency, account common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() == 0 {
		return nil
	}

	balance := book.balance(currency, account)
	balance.Add(balance, amount)
	return nil
}

func (book *AccountBook) Debit(currency domain.Currency, account common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() == 0 {
		return nil
	}

	balance := book.balance(currency, account)
	if balance.Cmp(amount) < 0 {
		return domain.ErrorInsufficientFunds
	}

	balance.Sub(balance, amount)
	return nil
}
