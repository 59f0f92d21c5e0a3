package usecase

import (
	"context"
	"log"
	"math/big"
	"time"

	"staking/domain"
	"staking/infrastructure/chain"
	"staking/interface/exporter"

	"github.com/ethereum/go-ethereum/common"
)

// TreasuryInteractor moves funds in and out of the treasury book and keeps
// the book honest against the obligations and, optionally, the chain.
type TreasuryInteractor struct {
	store           domain.Store
	guard           *Guard
	admin           common.Address
	treasury        common.Address
	principalToken  *chain.Token
	settlementToken *chain.Token
	clock           func() time.Time
}

// ReconcileReport compares the treasury book of one currency against the
// token balance read from the chain.
type ReconcileReport struct {
	Currency domain.Currency
	Book     *big.Int
	Chain    *big.Int
	Short    bool
}

func NewTreasuryInteractor(store domain.Store,
	guard *Guard,
	admin common.Address,
	treasury common.Address,
	principalToken *chain.Token,
	settlementToken *chain.Token) *TreasuryInteractor {
	interactor := &TreasuryInteractor{
		store:           store,
		guard:           guard,
		admin:           admin,
		treasury:        treasury,
		principalToken:  principalToken,
		settlementToken: settlementToken,
		clock:           time.Now,
	}

	return interactor
}

// Deposit credits tokens confirmed as received into an account's book
// balance. Crediting the treasury itself funds the reserves.
func (interactor *TreasuryInteractor) Deposit(caller common.Address, currency domain.Currency, account common.Address, amount *big.Int) error {
	err := interactor.guard.Do(func() error {
		return interactor.store.Execute(func(tx domain.Tx) error {
			now := interactor.clock()

			if caller != interactor.admin {
				return domain.ErrorUnauthorized
			}
			if account == domain.ZeroAddress {
				return domain.ErrorZeroAddress
			}
			if amount == nil || amount.Sign() <= 0 {
				return domain.ErrorZeroAmount
			}

			if err := tx.Accounts().Credit(currency, account, amount); err != nil {
				return err
			}

			return tx.Journal().Append(&domain.JournalEntry{
				Op:        domain.OpDeposit,
				Actor:     caller,
				Reference: string(currency),
				Amount:    new(big.Int).Set(amount),
				Note:      account.Hex(),
				CreatedAt: now,
			})
		})
	})
	if err != nil {
		exporter.IncErrorCount()
		log.Printf("🔴 depositing funds - %v\n", err.Error())
		return err
	}

	exporter.IncOperationCount()
	return nil
}

// Withdraw removes treasury funds from the books, recording that tokens
// left custody. The part of the balance backing obligations can never be
// withdrawn: staked principal for the principal book, the interest and
// distribution reserves for the settlement book.
func (interactor *TreasuryInteractor) Withdraw(caller common.Address, currency domain.Currency, to common.Address, amount *big.Int) error {
	err := interactor.guard.Do(func() error {
		return interactor.store.Execute(func(tx domain.Tx) error {
			now := interactor.clock()

			if caller != interactor.admin {
				return domain.ErrorUnauthorized
			}
			if to == domain.ZeroAddress {
				return domain.ErrorZeroAddress
			}
			if amount == nil || amount.Sign() <= 0 {
				return domain.ErrorZeroAmount
			}

			balance, err := tx.Accounts().BalanceOf(currency, interactor.treasury)
			if err != nil {
				return err
			}
			after := new(big.Int).Sub(balance, amount)

			obligation, err := interactor.obligationOf(tx, currency)
			if err != nil {
				return err
			}
			if after.Cmp(obligation) < 0 {
				return domain.ErrorInsufficientReserve
			}

			if err = tx.Accounts().Debit(currency, interactor.treasury, amount); err != nil {
				return err
			}

			return tx.Journal().Append(&domain.JournalEntry{
				Op:        domain.OpWithdraw,
				Actor:     caller,
				Reference: string(currency),
				Amount:    new(big.Int).Set(amount),
				Note:      to.Hex(),
				CreatedAt: now,
			})
		})
	})
	if err != nil {
		exporter.IncErrorCount()
		log.Printf("🔴 withdrawing funds - %v\n", err.Error())
		return err
	}

	exporter.IncOperationCount()
	return nil
}

// Payout debits a user's own book balance, recording that their tokens
// were sent back out to them on chain.
func (interactor *TreasuryInteractor) Payout(caller common.Address, currency domain.Currency, account common.Address, amount *big.Int) error {
	err := interactor.guard.Do(func() error {
		return interactor.store.Execute(func(tx domain.Tx) error {
			now := interactor.clock()

			if caller != interactor.admin {
				return domain.ErrorUnauthorized
			}
			if account == domain.ZeroAddress {
				return domain.ErrorZeroAddress
			}
			if amount == nil || amount.Sign() <= 0 {
				return domain.ErrorZeroAmount
			}

			if err := tx.Accounts().Debit(currency, account, amount); err != nil {
				return err
			}

			return tx.Journal().Append(&domain.JournalEntry{
				Op:        domain.OpPayout,
				Actor:     caller,
				Reference: string(currency),
				Amount:    new(big.Int).Set(amount),
				Note:      account.Hex(),
				CreatedAt: now,
			})
		})
	})
	if err != nil {
		exporter.IncErrorCount()
		log.Printf("🔴 paying out funds - %v\n", err.Error())
		return err
	}

	exporter.IncOperationCount()
	return nil
}

func (interactor *TreasuryInteractor) BalanceOf(currency domain.Currency, account common.Address) (*big.Int, error) {
	var balance *big.Int

	err := interactor.store.View(func(tx domain.Tx) error {
		var err error
		balance, err = tx.Accounts().BalanceOf(currency, account)
		return err
	})
	if err != nil {
		return nil, err
	}

	return balance, nil
}

// Available reports the treasury balance of a currency net of its
// obligations, the amount Withdraw would allow right now.
func (interactor *TreasuryInteractor) Available(currency domain.Currency) (*big.Int, error) {
	var available *big.Int

	err := interactor.store.View(func(tx domain.Tx) error {
		balance, err := tx.Accounts().BalanceOf(currency, interactor.treasury)
		if err != nil {
			return err
		}
		obligation, err := interactor.obligationOf(tx, currency)
		if err != nil {
			return err
		}
		available = new(big.Int).Sub(balance, obligation)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return available, nil
}

// Reconcile reads the treasury's token balances from the chain and compares
// them against the books. A chain balance below the book means tokens left
// custody without being recorded.
func (interactor *TreasuryInteractor) Reconcile(ctx context.Context) ([]ReconcileReport, error) {
	if interactor.principalToken == nil && interactor.settlementToken == nil {
		log.Printf("🔵 no chain client configured, skipping reconcile\n")
		return nil, nil
	}

	tokens := map[domain.Currency]*chain.Token{
		domain.CurrencyPrincipal:  interactor.principalToken,
		domain.CurrencySettlement: interactor.settlementToken,
	}

	var reports []ReconcileReport
	for _, currency := range []domain.Currency{domain.CurrencyPrincipal, domain.CurrencySettlement} {
		token := tokens[currency]
		if token == nil {
			continue
		}

		book, err := interactor.BalanceOf(currency, interactor.treasury)
		if err != nil {
			return nil, err
		}

		onchain, err := token.BalanceOf(ctx, interactor.treasury)
		if err != nil {
			exporter.IncErrorCount()
			log.Printf("🔴 reading %v balance of treasury - %v\n", currency, err.Error())
			return nil, err
		}

		report := ReconcileReport{
			Currency: currency,
			Book:     book,
			Chain:    onchain,
			Short:    onchain.Cmp(book) < 0,
		}
		if report.Short {
			exporter.IncErrorCount()
			log.Printf("🔴 treasury %v balance on chain is %v, book says %v\n",
				currency, onchain.String(), book.String())
		}
		reports = append(reports, report)
	}

	return reports, nil
}

func (interactor *TreasuryInteractor) obligationOf(tx domain.Tx, currency domain.Currency) (*big.Int, error) {
	switch currency {
	case domain.CurrencyPrincipal:
		return tx.Params().TotalStaked()
	case domain.CurrencySettlement:
		interestReserve, err := tx.Params().InterestReserve()
		if err != nil {
			return nil, err
		}
		distributionReserve, err := tx.Params().DistributionReserve()
		if err != nil {
			return nil, err
		}
		return new(big.Int).Add(interestReserve, distributionReserve), nil
	default:
		return nil, domain.ErrorInvalidCurrency
	}
}
