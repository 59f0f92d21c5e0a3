/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strconv"
	"time"

	"staking/domain"
	"staking/domain/config"
	"staking/domain/util"

	"github.com/spf13/cobra"
)

// adminCmd represents the admin command
var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Updates the ledger parameters",
}

var adminSetRateCmd = &cobra.Command{
	Use:   "set-rate <rate>",
	Short: "Sets the principal-to-settlement exchange rate",
	Long: `Sets the exchange rate used by future stake opens and previews. The rate
is the settlement amount paid per whole principal token, e.g. '1.25'.
Interest already snapshotted in open positions does not change.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()

		rate, err := util.ParseRate(args[0])
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}

		err = adminInteractor.SetRate(config.GetAdminAddress(), rate)
		if err != nil {
			fmt.Printf("❌ No rate is set due to error: %v\n", err.Error())
			return
		}

		fmt.Printf("Exchange rate set to %v\n", util.FormatRate(rate))
	},
}

var adminSetMinimumCmd = &cobra.Command{
	Use:   "set-minimum <amount>",
	Short: "Sets the minimum stake amount",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()

		minimum, err := util.ParseAmount(args[0], config.GetPrincipalDecimals())
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}

		err = adminInteractor.SetMinimumStake(config.GetAdminAddress(), minimum)
		if err != nil {
			fmt.Printf("❌ No minimum is set due to error: %v\n", err.Error())
			return
		}

		fmt.Printf("Minimum stake set to %v\n",
			util.AmountString(minimum, config.GetPrincipalDecimals(), "principal"))
	},
}

var adminSetPlanCmd = &cobra.Command{
	Use:   "set-plan <id> <apy-bps> <duration>",
	Short: "Rewrites one staking plan for future opens",
	Long: `Rewrites one of the four staking plans. APY is given in basis points and
the duration in Go notation, e.g. '720h' for thirty days. Open positions
keep the terms they were opened with.`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()

		id, err := parsePlan(args[0])
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}
		apy, err := parseAPY(args[1])
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}
		duration, err := time.ParseDuration(args[2])
		if err != nil {
			fmt.Printf("❌ '%v' is not a valid duration\n", args[2])
			return
		}

		err = adminInteractor.SetPlan(config.GetAdminAddress(), id, apy, duration)
		if err != nil {
			fmt.Printf("❌ No plan is set due to error: %v\n", err.Error())
			return
		}

		fmt.Printf("Plan %d set to %d bps over %v\n", id, apy, duration)
	},
}

func parseAPY(value string) (uint32, error) {
	apy, err := strconv.ParseUint(value, 10, 32)
	if err != nil || apy == 0 || apy > domain.BasisPointDivisor {
		return 0, fmt.Errorf("'%v' is not a valid apy in basis points", value)
	}
	return uint32(apy), nil
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminSetRateCmd)
	adminCmd.AddCommand(adminSetMinimumCmd)
	adminCmd.AddCommand(adminSetPlanCmd)
}
