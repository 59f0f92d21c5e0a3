package domain

import "fmt"

// Validation errors: the caller can fix these by adjusting the input.
var (
	ErrorZeroAmount      = fmt.Errorf("amount must be greater than zero")
	ErrorBelowMinimum    = fmt.Errorf("amount is below the minimum stake")
	ErrorInvalidPlan     = fmt.Errorf("plan id must be 1, 2, 3 or 4")
	ErrorInvalidIndex    = fmt.Errorf("position index is out of range")
	ErrorInvalidLimit    = fmt.Errorf("limit must be greater than zero")
	ErrorInvalidRate     = fmt.Errorf("exchange rate must be greater than zero")
	ErrorInvalidCurrency = fmt.Errorf("currency must be principal or settlement")
	ErrorZeroAddress     = fmt.Errorf("address must not be the zero address")
	ErrorUnauthorized    = fmt.Errorf("caller is not the administrator")
	ErrorInvalidSchedule = fmt.Errorf("vesting cliff and duration are inconsistent")
)

// State errors: the caller must wait or cannot proceed at all.
var (
	ErrorAlreadyWithdrawn     = fmt.Errorf("position is already withdrawn")
	ErrorStillLocked          = fmt.Errorf("position has not matured yet")
	ErrorAlreadyClaimed       = fmt.Errorf("distribution share is already claimed")
	ErrorDistributionNotFound = fmt.Errorf("distribution does not exist")
	ErrorNoEligibleSnapshot   = fmt.Errorf("no eligible amount was snapshotted for this address")
	ErrorNoEligibleStakers    = fmt.Errorf("no staker is eligible for a distribution")
	ErrorRecoveryWindowOpen   = fmt.Errorf("distribution recovery window is still open")
	ErrorNothingToRecover     = fmt.Errorf("distribution is fully claimed")
	ErrorReentrantCall        = fmt.Errorf("reentrant ledger operation rejected")
	ErrorScheduleExists       = fmt.Errorf("beneficiary already has a vesting schedule")
	ErrorScheduleNotFound     = fmt.Errorf("beneficiary has no vesting schedule")
	ErrorNothingVested        = fmt.Errorf("no vested amount is releasable yet")
)

// Solvency errors: only an administrator deposit resolves these. They must
// never be downgraded to a silent no-op.
var (
	ErrorInsufficientReserve = fmt.Errorf("settlement balance does not cover the reserves")
	ErrorInsufficientFunds   = fmt.Errorf("balance does not cover the requested amount")
)
