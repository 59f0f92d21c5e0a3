/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"staking/domain"
	"staking/domain/config"
	"staking/domain/util"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// distributionCmd represents the distribution command
var distributionCmd = &cobra.Command{
	Use:   "distribution",
	Short: "Creates, claims and recovers dividend distributions",
}

var distributionCreateCmd = &cobra.Command{
	Use:   "create <total>",
	Short: "Opens a dividend round over the currently eligible stakers",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()

		total, err := util.ParseAmount(args[0], config.GetSettlementDecimals())
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}

		id, err := distributionInteractor.Create(config.GetAdminAddress(), total)
		if err != nil {
			fmt.Printf("❌ No distribution is created due to error: %v\n", err.Error())
			return
		}

		fmt.Printf("Created distribution #%d of %v\n",
			id, util.AmountString(total, config.GetSettlementDecimals(), "settlement"))
	},
}

var distributionClaimCmd = &cobra.Command{
	Use:   "claim <address> <id>",
	Short: "Claims an address's share of a distribution",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()

		caller, err := parseAddress(args[0])
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}
		id, err := parseDistributionID(args[1])
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}

		share, err := distributionInteractor.Claim(caller, id)
		if err != nil {
			fmt.Printf("❌ No share is claimed due to error: %v\n", err.Error())
			return
		}

		fmt.Printf("Claimed %v from distribution #%d\n",
			util.AmountString(share, config.GetSettlementDecimals(), "settlement"), id)
	},
}

var distributionRecoverCmd = &cobra.Command{
	Use:   "recover <id> <to>",
	Short: "Recovers the unclaimed remainder after the recovery wait",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()

		id, err := parseDistributionID(args[0])
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}
		to, err := parseAddress(args[1])
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}

		recovered, err := distributionInteractor.Recover(config.GetAdminAddress(), id, to)
		if err != nil {
			fmt.Printf("❌ Nothing is recovered due to error: %v\n", err.Error())
			return
		}

		fmt.Printf("Recovered %v from distribution #%d to %v\n",
			util.AmountString(recovered, config.GetSettlementDecimals(), "settlement"), id, to.Hex())
	},
}

var distributionListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists every distribution round",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()

		distributions, err := distributionInteractor.List()
		if err != nil {
			fmt.Printf("❌ No distribution is listed due to error: %v\n", err.Error())
			return
		}

		printOutDistributions(distributions)
	},
}

var distributionSnapshotCmd = &cobra.Command{
	Use:   "snapshot <id> <address>",
	Short: "Shows an address's snapshotted stake and claim state in a round",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()

		id, err := parseDistributionID(args[0])
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}
		user, err := parseAddress(args[1])
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}

		eligible, claimed, err := distributionInteractor.SnapshotOf(id, user)
		if err != nil {
			fmt.Printf("❌ No snapshot is read due to error: %v\n", err.Error())
			return
		}

		fmt.Printf("Eligible stake: %v\nClaimed: %v\n",
			util.AmountString(eligible, config.GetPrincipalDecimals(), "principal"), claimed)
	},
}

func printOutDistributions(distributions []*domain.Distribution) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Total", "Eligible Stake", "Claimed", "Created", "State"})

	for _, distribution := range distributions {
		state := "open"
		if !distribution.Exists {
			state = "recovered"
		}
		table.Append([]string{
			strconv.FormatUint(distribution.ID, 10),
			util.FormatAmount(distribution.TotalAmount, config.GetSettlementDecimals()),
			util.FormatAmount(distribution.EligibleTotal, config.GetPrincipalDecimals()),
			util.FormatAmount(distribution.ClaimedAmount, config.GetSettlementDecimals()),
			distribution.CreatedAt.Format(time.RFC3339),
			state,
		})
	}
	table.Render()
}

func parseDistributionID(value string) (uint64, error) {
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("'%v' is not a valid distribution id", value)
	}
	return id, nil
}

func init() {
	rootCmd.AddCommand(distributionCmd)
	distributionCmd.AddCommand(distributionCreateCmd)
	distributionCmd.AddCommand(distributionClaimCmd)
	distributionCmd.AddCommand(distributionRecoverCmd)
	distributionCmd.AddCommand(distributionListCmd)
	distributionCmd.AddCommand(distributionSnapshotCmd)
}
