/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"staking/domain/config"
	"staking/domain/util"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// governanceCmd represents the governance command
var governanceCmd = &cobra.Command{
	Use:   "governance",
	Short: "Reads voting weight derived from stakes and vesting",
}

var governancePowerCmd = &cobra.Command{
	Use:   "power <address>",
	Short: "Shows an address's voting weight breakdown",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()

		user, err := parseAddress(args[0])
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}

		power, err := governanceInteractor.VotingPowerOf(user)
		if err != nil {
			fmt.Printf("❌ No voting power is computed due to error: %v\n", err.Error())
			return
		}

		decimals := config.GetPrincipalDecimals()
		fmt.Printf("Staked: %v\n", util.FormatAmount(power.Staked, decimals))
		fmt.Printf("Vested: %v\n", util.FormatAmount(power.Vested, decimals))
		fmt.Printf("Total:  %v\n", util.FormatAmount(power.Total, decimals))

		ok, err := governanceInteractor.CanPropose(user)
		if err != nil {
			fmt.Printf("❌ No proposal threshold is checked due to error: %v\n", err.Error())
			return
		}
		fmt.Printf("Can propose: %v\n", ok)
	},
}

var governanceSnapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Lists the voting weight of every participant",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()

		entries, err := governanceInteractor.Snapshot()
		if err != nil {
			fmt.Printf("❌ No snapshot is produced due to error: %v\n", err.Error())
			return
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Address", "Power"})
		for _, entry := range entries {
			table.Append([]string{
				entry.Address.Hex(),
				util.FormatAmount(entry.Power, config.GetPrincipalDecimals()),
			})
		}
		table.Render()
	},
}

func init() {
	rootCmd.AddCommand(governanceCmd)
	governanceCmd.AddCommand(governancePowerCmd)
	governanceCmd.AddCommand(governanceSnapshotCmd)
}
