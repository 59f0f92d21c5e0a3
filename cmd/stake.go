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

	"github.com/ethereum/go-ethereum/common"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// stakeCmd represents the stake command
var stakeCmd = &cobra.Command{
	Use:   "stake",
	Short: "Opens, closes and inspects stake positions",
}

var stakeOpenCmd = &cobra.Command{
	Use:   "open <address> <amount> <plan>",
	Short: "Opens a stake position under one of the four plans",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()

		caller, err := parseAddress(args[0])
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}
		amount, err := util.ParseAmount(args[1], config.GetPrincipalDecimals())
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}
		plan, err := parsePlan(args[2])
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}

		index, err := stakeInteractor.Open(caller, amount, plan)
		if err != nil {
			fmt.Printf("❌ No position is opened due to error: %v\n", err.Error())
			return
		}

		fmt.Printf("Opened position #%d of %v for %v\n",
			index, util.AmountString(amount, config.GetPrincipalDecimals(), "principal"), caller.Hex())
	},
}

var stakeCloseCmd = &cobra.Command{
	Use:   "close <address> <index>",
	Short: "Closes a matured position, paying principal and interest",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()

		caller, err := parseAddress(args[0])
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}
		index, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Printf("❌ '%v' is not a valid position index\n", args[1])
			return
		}

		position, err := stakeInteractor.Close(caller, index)
		if err != nil {
			fmt.Printf("❌ No position is closed due to error: %v\n", err.Error())
			return
		}

		fmt.Printf("Closed position #%d: returned %v, paid %v interest\n",
			index,
			util.AmountString(position.Principal, config.GetPrincipalDecimals(), "principal"),
			util.AmountString(position.Interest, config.GetSettlementDecimals(), "settlement"))
	},
}

var stakeListCmd = &cobra.Command{
	Use:   "list <address>",
	Short: "Lists every position of an address",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()

		user, err := parseAddress(args[0])
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}

		positions, err := stakeInteractor.PositionsOf(user)
		if err != nil {
			fmt.Printf("❌ No position is listed due to error: %v\n", err.Error())
			return
		}

		printOutPositions(positions)
	},
}

var stakePendingCmd = &cobra.Command{
	Use:   "pending <address>",
	Short: "Shows the interest accrued so far at the current rate",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()

		user, err := parseAddress(args[0])
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}

		pending, err := stakeInteractor.PendingInterest(user)
		if err != nil {
			fmt.Printf("❌ No pending interest is computed due to error: %v\n", err.Error())
			return
		}

		fmt.Printf("Pending interest: %v\n",
			util.AmountString(pending, config.GetSettlementDecimals(), "settlement"))
	},
}

var stakePreviewCmd = &cobra.Command{
	Use:   "preview <amount> <plan>",
	Short: "Previews the full-term interest a stake would earn",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		defaultDependencyInject()

		amount, err := util.ParseAmount(args[0], config.GetPrincipalDecimals())
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}
		plan, err := parsePlan(args[1])
		if err != nil {
			fmt.Printf("❌ %v\n", err.Error())
			return
		}

		interest, err := stakeInteractor.PreviewInterest(amount, plan)
		if err != nil {
			fmt.Printf("❌ No interest is previewed due to error: %v\n", err.Error())
			return
		}

		fmt.Printf("Full-term interest: %v\n",
			util.AmountString(interest, config.GetSettlementDecimals(), "settlement"))
	},
}

func printOutPositions(positions []*domain.StakePosition) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Principal", "APY (bps)", "Start", "Matures", "Interest", "State"})

	for i, position := range positions {
		state := "open"
		if position.Withdrawn {
			state = "withdrawn"
		}
		table.Append([]string{
			strconv.Itoa(i),
			util.FormatAmount(position.Principal, config.GetPrincipalDecimals()),
			strconv.FormatUint(uint64(position.APY), 10),
			position.StartTime.Format(time.RFC3339),
			position.MaturesAt().Format(time.RFC3339),
			util.FormatAmount(position.Interest, config.GetSettlementDecimals()),
			state,
		})
	}
	table.Render()
}

func parseAddress(value string) (common.Address, error) {
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("'%v' is not a valid address", value)
	}
	return common.HexToAddress(value), nil
}

func parsePlan(value string) (uint8, error) {
	id, err := strconv.ParseUint(value, 10, 8)
	if err != nil || id < 1 || id > domain.PlanCount {
		return 0, fmt.Errorf("'%v' is not a valid plan id", value)
	}
	return uint8(id), nil
}

func init() {
	rootCmd.AddCommand(stakeCmd)
	stakeCmd.AddCommand(stakeOpenCmd)
	stakeCmd.AddCommand(stakeCloseCmd)
	stakeCmd.AddCommand(stakeListCmd)
	stakeCmd.AddCommand(stakePendingCmd)
	stakeCmd.AddCommand(stakePreviewCmd)
}
