package domain

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Operation names recorded in the journal.
const (
	OpOpenStake          = "open-stake"
	OpCloseStake         = "close-stake"
	OpCreateDistribution = "create-distribution"
	OpClaim              = "claim"
	OpRecover            = "recover-undistributed"
	OpDeposit            = "deposit"
	OpWithdraw           = "withdraw"
	OpPayout             = "payout"
	OpSetRate            = "set-rate"
	OpSetMinimumStake    = "set-minimum-stake"
	OpSetPlan            = "set-plan"
	OpGrantVesting       = "grant-vesting"
	OpReleaseVesting     = "release-vesting"
)

// JournalEntry is one line of the append-only operation log. Every
// successful mutating operation writes exactly one entry in the same
// transaction that commits its effects.
type JournalEntry struct {
	ID        uint64         `json:"id"`
	Op        string         `json:"op"`
	Actor     common.Address `json:"actor"`
	Reference string         `json:"reference"`
	Amount    *big.Int       `json:"amount"`
	Note      string         `json:"note"`
	CreatedAt time.Time      `json:"created_at"`
}
