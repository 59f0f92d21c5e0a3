package domain

import "math/big"

// Overview is the aggregate ledger snapshot consumed by the status command
// and the metrics exporter.
type Overview struct {
	ActiveStakers       int             `json:"active_stakers"`
	TotalStaked         *big.Int        `json:"total_staked"`
	InterestReserve     *big.Int        `json:"interest_reserve"`
	DistributionReserve *big.Int        `json:"distribution_reserve"`
	PrincipalBalance    *big.Int        `json:"principal_balance"`
	SettlementBalance   *big.Int        `json:"settlement_balance"`
	AvailablePrincipal  *big.Int        `json:"available_principal"`
	AvailableSettlement *big.Int        `json:"available_settlement"`
	ExchangeRate        *big.Int        `json:"exchange_rate"`
	MinimumStake        *big.Int        `json:"minimum_stake"`
	Distributions       int             `json:"distributions"`
	Plans               [PlanCount]Plan `json:"plans"`
}

// VotingPower is one row of the governance read surface: the current staked
// balance plus the unreleased vesting balance of an address.
type VotingPower struct {
	Staked *big.Int `json:"staked"`
	Vested *big.Int `json:"vested"`
	Total  *big.Int `json:"total"`
}
