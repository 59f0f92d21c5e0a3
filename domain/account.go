package domain

import "github.com/ethereum/go-ethereum/common"

// Currency names one of the two custodial books kept by the ledger.
type Currency string

const (
	// CurrencyPrincipal is the token that is staked and returned at maturity.
	CurrencyPrincipal = Currency("principal")
	// CurrencySettlement is the currency interest and dividends are paid in.
	CurrencySettlement = Currency("settlement")
)

// VestingEscrowAccount holds granted-but-unreleased vesting funds. It is an
// internal book account, not an on-chain address.
var VestingEscrowAccount = common.BytesToAddress([]byte("vesting-escrow"))

// ZeroAddress is the rejected empty identity.
var ZeroAddress = common.Address{}
