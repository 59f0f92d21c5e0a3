/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"strconv"

	"staking/domain/config"
	"staking/domain/util"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Shows the aggregate ledger state",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()

		overview, err := statisticInteractor.Overview()
		if err != nil {
			fmt.Printf("❌ No status is collected due to error: %v\n", err.Error())
			return
		}

		pDec := config.GetPrincipalDecimals()
		sDec := config.GetSettlementDecimals()

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Metric", "Value"})
		table.Append([]string{"Active stakers", strconv.Itoa(overview.ActiveStakers)})
		table.Append([]string{"Total staked", util.AmountString(overview.TotalStaked, pDec, "principal")})
		table.Append([]string{"Principal balance", util.AmountString(overview.PrincipalBalance, pDec, "principal")})
		table.Append([]string{"Available principal", util.AmountString(overview.AvailablePrincipal, pDec, "principal")})
		table.Append([]string{"Settlement balance", util.AmountString(overview.SettlementBalance, sDec, "settlement")})
		table.Append([]string{"Interest reserve", util.AmountString(overview.InterestReserve, sDec, "settlement")})
		table.Append([]string{"Distribution reserve", util.AmountString(overview.DistributionReserve, sDec, "settlement")})
		table.Append([]string{"Available settlement", util.AmountString(overview.AvailableSettlement, sDec, "settlement")})
		table.Append([]string{"Exchange rate", util.FormatRate(overview.ExchangeRate)})
		table.Append([]string{"Minimum stake", util.AmountString(overview.MinimumStake, pDec, "principal")})
		table.Append([]string{"Distributions", strconv.Itoa(overview.Distributions)})
		table.Render()

		plans := tablewriter.NewWriter(os.Stdout)
		plans.SetHeader([]string{"Plan", "APY (bps)", "Duration"})
		for i, plan := range overview.Plans {
			plans.Append([]string{
				strconv.Itoa(i + 1),
				strconv.FormatUint(uint64(plan.APY), 10),
				plan.Duration.String(),
			})
		}
		plans.Render()
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
